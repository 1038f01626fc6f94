package list

import (
	"context"
	"io"
	"testing"

	"github.com/flfe/adminctl/internal/client/models"
	"github.com/flfe/adminctl/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and replies with canned pages.
type fakeAPI struct {
	listCalls   []Request
	searchCalls []Request

	page models.Page
	err  error
}

func (f *fakeAPI) ListUsers(_ context.Context, page, size int, sort models.SortField) (models.Page, error) {
	f.listCalls = append(f.listCalls, Request{Page: page, Size: size, Sort: sort})
	return f.page, f.err
}

func (f *fakeAPI) SearchUsers(_ context.Context, query string, page, size int) (models.Page, error) {
	f.searchCalls = append(f.searchCalls, Request{Query: query, Page: page, Size: size})
	return f.page, f.err
}

func (f *fakeAPI) GetUser(context.Context, int64) (models.UserRecord, error) {
	return models.UserRecord{}, nil
}
func (f *fakeAPI) CreateUser(context.Context, models.CreateUserRequest) (models.UserRecord, error) {
	return models.UserRecord{}, nil
}
func (f *fakeAPI) UpdateUser(context.Context, int64, models.UpdateUserRequest) (models.UserRecord, error) {
	return models.UserRecord{}, nil
}
func (f *fakeAPI) DeleteUser(context.Context, int64) error   { return nil }
func (f *fakeAPI) AdminStats(context.Context) (models.Stats, error) {
	return models.Stats{}, nil
}
func (f *fakeAPI) UploadFile(context.Context, string, io.Reader) (string, error) {
	return "", nil
}

func usersPage(number, totalPages int, names ...string) models.Page {
	items := make([]models.UserRecord, len(names))
	for i, n := range names {
		items[i] = models.UserRecord{ID: int64(i + 1), Name: n}
	}
	return models.Page{Items: items, Number: number, TotalPages: totalPages}
}

func TestBlankQueryUsesListingEndpoint(t *testing.T) {
	f := &fakeAPI{page: usersPage(0, 1)}
	c := NewController(f, 5)

	res := c.Do(context.Background(), c.Reload())
	_, err := c.Apply(res)
	require.NoError(t, err)

	require.Len(t, f.listCalls, 1)
	assert.Empty(t, f.searchCalls)
	assert.Equal(t, models.SortByID, f.listCalls[0].Sort)
	assert.Equal(t, 5, f.listCalls[0].Size)
}

func TestWhitespaceQueryIsBlank(t *testing.T) {
	f := &fakeAPI{page: usersPage(0, 1)}
	c := NewController(f, 5)

	gen := c.SetQuery("   ")
	req, ok := c.DebounceFired(gen)
	require.True(t, ok)

	c.Do(context.Background(), req)
	require.Len(t, f.listCalls, 1)
	assert.Empty(t, f.searchCalls)
}

func TestNonBlankQueryUsesSearchEndpoint(t *testing.T) {
	f := &fakeAPI{page: usersPage(0, 1)}
	c := NewController(f, 5)

	gen := c.SetQuery("ann")
	req, ok := c.DebounceFired(gen)
	require.True(t, ok)

	c.Do(context.Background(), req)

	require.Len(t, f.searchCalls, 1)
	assert.Empty(t, f.listCalls)
	assert.Equal(t, "ann", f.searchCalls[0].Query)
	assert.Equal(t, 0, f.searchCalls[0].Page, "search restarts from page zero")
}

func TestDebounceCoalescesRapidInput(t *testing.T) {
	f := &fakeAPI{page: usersPage(0, 1)}
	c := NewController(f, 5)

	// Three input changes before any timer fires: only the last
	// generation is allowed to load.
	gen1 := c.SetQuery("a")
	gen2 := c.SetQuery("an")
	gen3 := c.SetQuery("ann")

	_, ok := c.DebounceFired(gen1)
	assert.False(t, ok)
	_, ok = c.DebounceFired(gen2)
	assert.False(t, ok)

	req, ok := c.DebounceFired(gen3)
	require.True(t, ok)
	c.Do(context.Background(), req)

	require.Len(t, f.searchCalls, 1)
	assert.Equal(t, "ann", f.searchCalls[0].Query)
}

func TestStaleResultIsDiscarded(t *testing.T) {
	f := &fakeAPI{}
	c := NewController(f, 5)

	oldReq := c.Reload()
	newReq := c.Reload()

	// The newer response lands first.
	stale, err := c.Apply(Result{Seq: newReq.Seq, Page: usersPage(0, 2, "fresh")})
	require.NoError(t, err)
	require.False(t, stale)

	// The older response must not overwrite it.
	stale, err = c.Apply(Result{Seq: oldReq.Seq, Page: usersPage(0, 9, "stale")})
	require.NoError(t, err)
	assert.True(t, stale)

	require.Len(t, c.Items(), 1)
	assert.Equal(t, "fresh", c.Items()[0].Name)
	assert.Equal(t, 2, c.TotalPages())
}

func TestServerPageNumberIsAuthoritative(t *testing.T) {
	f := &fakeAPI{}
	c := NewController(f, 5)

	req := c.Reload()
	// Requested page 0, server reports page 1 of 2 (e.g. after a
	// concurrent delete shrank the listing).
	_, err := c.Apply(Result{Seq: req.Seq, Page: usersPage(1, 2, "a", "b")})
	require.NoError(t, err)

	assert.Equal(t, 1, c.PageIndex())
	assert.Equal(t, 2, c.TotalPages())
}

func TestPaginationBounds(t *testing.T) {
	f := &fakeAPI{}
	c := NewController(f, 5)

	req := c.Reload()
	_, err := c.Apply(Result{Seq: req.Seq, Page: usersPage(0, 2, "a")})
	require.NoError(t, err)

	// Page 1 of 2: Previous disabled, Next enabled.
	assert.False(t, c.CanPrev())
	assert.True(t, c.CanNext())

	nextReq, ok := c.NextPage()
	require.True(t, ok)
	assert.Equal(t, 1, nextReq.Page)
	_, err = c.Apply(Result{Seq: nextReq.Seq, Page: usersPage(1, 2, "b")})
	require.NoError(t, err)

	// Last page: Next disabled.
	assert.True(t, c.CanPrev())
	assert.False(t, c.CanNext())
	_, ok = c.NextPage()
	assert.False(t, ok)

	prevReq, ok := c.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 0, prevReq.Page)
}

func TestSinglePageDisablesBoth(t *testing.T) {
	c := NewController(&fakeAPI{}, 5)
	req := c.Reload()
	_, err := c.Apply(Result{Seq: req.Seq, Page: usersPage(0, 1, "only")})
	require.NoError(t, err)

	assert.False(t, c.CanPrev())
	assert.False(t, c.CanNext())
}

func TestCycleSortRefetches(t *testing.T) {
	f := &fakeAPI{page: usersPage(0, 1)}
	c := NewController(f, 5)

	req := c.CycleSort()
	assert.Equal(t, models.SortByName, req.Sort)
	c.Do(context.Background(), req)

	require.Len(t, f.listCalls, 1)
	assert.Equal(t, models.SortByName, f.listCalls[0].Sort)
}

func TestApplyError(t *testing.T) {
	c := NewController(&fakeAPI{}, 5)

	req := c.Reload()
	assert.True(t, c.Loading())

	stale, err := c.Apply(Result{Seq: req.Seq, Err: common.ErrAdminRequired})
	require.False(t, stale)
	assert.ErrorIs(t, err, common.ErrAdminRequired)
	assert.False(t, c.Loading())
}

func TestReset(t *testing.T) {
	c := NewController(&fakeAPI{}, 5)
	gen := c.SetQuery("ann")
	req, _ := c.DebounceFired(gen)
	_, err := c.Apply(Result{Seq: req.Seq, Page: usersPage(1, 3, "a")})
	require.NoError(t, err)

	c.Reset()

	assert.Empty(t, c.Query())
	assert.Equal(t, 0, c.PageIndex())
	assert.Equal(t, 1, c.TotalPages())
	assert.Empty(t, c.Items())

	// In-flight results from before the reset are stale.
	stale, _ := c.Apply(Result{Seq: req.Seq, Page: usersPage(0, 1, "late")})
	assert.True(t, stale)
}
