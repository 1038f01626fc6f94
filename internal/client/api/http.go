package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flfe/adminctl/internal/client/creds"
	"github.com/flfe/adminctl/internal/client/models"
	"github.com/flfe/adminctl/internal/common"
	"github.com/flfe/adminctl/internal/logging"
)

// DefaultTimeout bounds every backend call. There is no retry: a timed-out
// operation is reported and the operator re-triggers it.
const DefaultTimeout = 5 * time.Second

// envelope is the backend's standard response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// pageDTO is the wire shape of a paginated result.
type pageDTO struct {
	Content    []models.UserRecord `json:"content"`
	TotalPages int                 `json:"totalPages"`
	Number     int                 `json:"number"`
}

func (p pageDTO) toPage() models.Page {
	totalPages := p.TotalPages
	if totalPages < 1 {
		// An empty result set still reports at least one page.
		totalPages = 1
	}
	return models.Page{Items: p.Content, Number: p.Number, TotalPages: totalPages}
}

// HTTPClient talks to the backend's REST API under {baseURL}/api.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   creds.Store
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, store creds.Store, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log.With("component", "api"),
	}
}

// authorize reads the credential store and attaches the bearer header when
// a token is present. Reading at send time (not a cached value) keeps the
// header consistent with the latest login/logout.
func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) {
	token, ok, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read stored token", "err", err)
		return
	}
	if ok {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}
}

// do issues one JSON request and returns the raw response body for 2xx
// statuses. Non-2xx statuses are mapped to the error taxonomy; fallback is
// the generic message used when the backend sends no envelope.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, fallback string) ([]byte, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	return nil, c.mapError(resp.StatusCode, respBody, fallback)
}

// mapError converts a non-2xx response into the client error taxonomy.
func (c *HTTPClient) mapError(status int, body []byte, fallback string) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrAdminRequired
	case http.StatusNotFound:
		return common.ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &Error{Status: status, Message: env.Message}
	}
	return &Error{Status: status, Message: fallback}
}

// unwrap parses the standard envelope and returns its data member.
func unwrap(body []byte, fallback string) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Data == nil {
		return nil, &Error{Status: http.StatusOK, Message: fallback}
	}
	return env.Data, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, page, size int, sort models.SortField) (models.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sort", string(sort))

	const fallback = "failed to fetch users"
	body, err := c.do(ctx, http.MethodGet, "/users", query, nil, fallback)
	if err != nil {
		return models.Page{}, err
	}
	return decodePage(body, fallback)
}

func (c *HTTPClient) SearchUsers(ctx context.Context, q string, page, size int) (models.Page, error) {
	query := url.Values{}
	query.Set("query", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	const fallback = "search failed"
	body, err := c.do(ctx, http.MethodGet, "/users/search", query, nil, fallback)
	if err != nil {
		return models.Page{}, err
	}
	return decodePage(body, fallback)
}

func decodePage(body []byte, fallback string) (models.Page, error) {
	data, err := unwrap(body, fallback)
	if err != nil {
		return models.Page{}, err
	}
	var dto pageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.Page{}, &Error{Status: http.StatusOK, Message: fallback}
	}
	return dto.toPage(), nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (models.UserRecord, error) {
	const fallback = "user not found"
	body, err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil, fallback)
	if err != nil {
		return models.UserRecord{}, err
	}

	data, err := unwrap(body, fallback)
	if err != nil {
		return models.UserRecord{}, err
	}
	var user models.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return models.UserRecord{}, &Error{Status: http.StatusOK, Message: fallback}
	}
	return user, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserRecord, error) {
	const fallback = "failed to create user"
	body, err := c.do(ctx, http.MethodPost, "/users", nil, req, fallback)
	if err != nil {
		return models.UserRecord{}, err
	}

	// Create and update return the record directly, without the envelope.
	var user models.UserRecord
	if err := json.Unmarshal(body, &user); err != nil {
		return models.UserRecord{}, &Error{Status: http.StatusOK, Message: fallback}
	}
	return user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.UserRecord, error) {
	const fallback = "failed to update user"
	body, err := c.do(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), nil, req, fallback)
	if err != nil {
		return models.UserRecord{}, err
	}

	var user models.UserRecord
	if err := json.Unmarshal(body, &user); err != nil {
		return models.UserRecord{}, &Error{Status: http.StatusOK, Message: fallback}
	}
	return user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil, "failed to delete user")
	return err
}

func (c *HTTPClient) AdminStats(ctx context.Context) (models.Stats, error) {
	const fallback = "failed to fetch admin stats"
	body, err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, fallback)
	if err != nil {
		return models.Stats{}, err
	}

	data, err := unwrap(body, fallback)
	if err != nil {
		return models.Stats{}, err
	}
	var stats models.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return models.Stats{}, &Error{Status: http.StatusOK, Message: fallback}
	}
	return stats, nil
}
