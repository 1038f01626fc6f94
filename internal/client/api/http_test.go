package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flfe/adminctl/internal/client/models"
	"github.com/flfe/adminctl/internal/common"
	"github.com/flfe/adminctl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	token string
}

func (f *fakeStore) Save(_ context.Context, token string) error { f.token = token; return nil }
func (f *fakeStore) Load(context.Context) (string, bool, error) {
	return f.token, f.token != "", nil
}
func (f *fakeStore) Clear(context.Context) error { f.token = ""; return nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newClient(t *testing.T, store *fakeStore, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, time.Second, store, testLogger())
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func TestListUsers_RequestAndResponse(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	store := &fakeStore{token: "aaa.bbb.ccc"}

	c := newClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, map[string]any{
			"content":    []map[string]any{{"id": 1, "name": "Ann", "email": "ann@b.com"}},
			"totalPages": 2,
			"number":     0,
		})
	})

	page, err := c.ListUsers(context.Background(), 0, 5, models.SortByName)
	require.NoError(t, err)

	assert.Equal(t, "/api/users", gotPath)
	assert.Contains(t, gotQuery, "page=0")
	assert.Contains(t, gotQuery, "size=5")
	assert.Contains(t, gotQuery, "sort=name")
	assert.Equal(t, "Bearer aaa.bbb.ccc", gotAuth)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ann", page.Items[0].Name)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 0, page.Number)
}

func TestAuthHeader_ReadAtSendTime(t *testing.T) {
	var auths []string
	store := &fakeStore{}

	c := newClient(t, store, func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		writeEnvelope(t, w, map[string]any{"content": []any{}, "totalPages": 1, "number": 0})
	})

	ctx := context.Background()
	_, err := c.ListUsers(ctx, 0, 5, models.SortByID)
	require.NoError(t, err)

	store.token = "fresh.token.sig"
	_, err = c.ListUsers(ctx, 0, 5, models.SortByID)
	require.NoError(t, err)

	require.Len(t, auths, 2)
	assert.Empty(t, auths[0], "no header before login")
	assert.Equal(t, "Bearer fresh.token.sig", auths[1], "header reflects latest token")
}

func TestSearchUsers_NoSortParameter(t *testing.T) {
	var gotQuery string
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/users/search", r.URL.Path)
		writeEnvelope(t, w, map[string]any{"content": []any{}, "totalPages": 1, "number": 0})
	})

	_, err := c.SearchUsers(context.Background(), "ann", 0, 5)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "query=ann")
	assert.NotContains(t, gotQuery, "sort=")
}

func TestEmptyResultStillReportsOnePage(t *testing.T) {
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]any{"content": []any{}, "totalPages": 0, "number": 0})
	})

	page, err := c.ListUsers(context.Background(), 0, 5, models.SortByID)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrAdminRequired},
		{"not found", http.StatusNotFound, common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.ListUsers(context.Background(), 0, 5, models.SortByID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrorEnvelopeMessageSurfacedVerbatim(t *testing.T) {
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"email already taken"}`))
	})

	_, err := c.CreateUser(context.Background(), models.CreateUserRequest{Name: "a", Email: "a@b.com", Password: "x"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email already taken", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestMissingEnvelopeFallsBackToGenericMessage(t *testing.T) {
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := c.ListUsers(context.Background(), 0, 5, models.SortByID)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "failed to fetch users", apiErr.Message)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(srv.URL, time.Second, &fakeStore{}, testLogger())
	_, err := c.ListUsers(context.Background(), 0, 5, models.SortByID)
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestCreateUser_SendsBodyAndParsesRecord(t *testing.T) {
	var gotBody models.CreateUserRequest
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":42,"name":"Ann","email":"ann@b.com"}`))
	})

	user, err := c.CreateUser(context.Background(), models.CreateUserRequest{
		Name: "Ann", Email: "ann@b.com", Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", gotBody.Name)
	assert.Equal(t, "secret", gotBody.Password)
	assert.Equal(t, int64(42), user.ID)
}

func TestUpdateUser_OmitsEmptyOptionalFields(t *testing.T) {
	var raw map[string]any
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"id":7,"name":"Bob","email":"bob@b.com"}`))
	})

	_, err := c.UpdateUser(context.Background(), 7, models.UpdateUserRequest{Name: "Bob", Email: "bob@b.com"})
	require.NoError(t, err)

	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "picture")
}

func TestDeleteUser(t *testing.T) {
	var gotMethod, gotPath string
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DeleteUser(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/users/9", gotPath)
}

func TestAdminStats(t *testing.T) {
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/stats", r.URL.Path)
		writeEnvelope(t, w, map[string]any{
			"totalUsers":    120,
			"activeUsers":   37,
			"monthlyGrowth": []int64{5, 9, 14, 22, 31, 40, 58},
		})
	})

	stats, err := c.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalUsers)
	assert.Len(t, stats.MonthlyGrowth, 7)
}

func TestUploadFile(t *testing.T) {
	c := newClient(t, &fakeStore{token: "up.load.tok"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/upload", r.URL.Path)
		assert.Equal(t, "Bearer up.load.tok", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "picture-bytes", string(content))

		writeEnvelope(t, w, map[string]any{"url": "https://cdn.example/avatar.png"})
	})

	url, err := c.UploadFile(context.Background(), "avatar.png", strings.NewReader("picture-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatar.png", url)
}

func TestUploadFile_Forbidden(t *testing.T) {
	c := newClient(t, &fakeStore{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.UploadFile(context.Background(), "avatar.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, common.ErrAdminRequired)
}
