// Package list orchestrates paginated, sorted and searched fetches of user
// records.
//
// The controller is deliberately free of timers and event loops: the view
// layer schedules the debounce tick and runs Do in the background, while the
// controller decides what to fetch and which results are still current.
package list

import (
	"context"
	"strings"

	"github.com/flfe/adminctl/internal/client/api"
	"github.com/flfe/adminctl/internal/client/models"
)

// DefaultPageSize matches the backend listing the views were built around.
const DefaultPageSize = 5

// Request is a snapshot of one fetch to perform. Seq orders requests so a
// slow response can be recognized as stale when it arrives.
type Request struct {
	Seq   uint64
	Query string
	Page  int
	Size  int
	Sort  models.SortField
}

// Result carries a completed fetch back to the controller.
type Result struct {
	Seq  uint64
	Page models.Page
	Err  error
}

// Controller holds the list view's fetch state. Not safe for concurrent
// use; all calls happen on the UI event loop.
type Controller struct {
	api      api.Client
	pageSize int

	query string
	page  int
	sort  models.SortField

	items      []models.UserRecord
	totalPages int
	loading    bool

	// pendingQuery is the search input as typed; it becomes the effective
	// query only when its debounce generation fires.
	pendingQuery string
	generation   uint64

	// seq is the newest issued request. Results with an older seq are
	// discarded, so reordered responses cannot overwrite fresher state.
	seq uint64
}

func NewController(client api.Client, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		api:        client,
		pageSize:   pageSize,
		sort:       models.SortByID,
		totalPages: 1,
	}
}

// Reload issues an immediate fetch of the current query/page/sort. Used for
// the initial load and for page or sort changes.
func (c *Controller) Reload() Request {
	c.seq++
	c.loading = true
	return Request{
		Seq:   c.seq,
		Query: c.query,
		Page:  c.page,
		Size:  c.pageSize,
		Sort:  c.sort,
	}
}

// SetQuery records a search input change and returns the debounce
// generation for it. The caller schedules a timer and calls DebounceFired
// with the generation once the quiet period elapses; any newer input change
// invalidates older generations, so rapid keystrokes coalesce into one
// fetch.
func (c *Controller) SetQuery(query string) uint64 {
	c.pendingQuery = query
	c.generation++
	return c.generation
}

// DebounceFired commits the pending query if generation is still the
// newest one. A committed query restarts from page zero.
func (c *Controller) DebounceFired(generation uint64) (Request, bool) {
	if generation != c.generation {
		return Request{}, false
	}
	c.query = c.pendingQuery
	c.page = 0
	return c.Reload(), true
}

// NextPage advances one page if there is one.
func (c *Controller) NextPage() (Request, bool) {
	if !c.CanNext() {
		return Request{}, false
	}
	c.page++
	return c.Reload(), true
}

// PrevPage goes back one page if there is one.
func (c *Controller) PrevPage() (Request, bool) {
	if !c.CanPrev() {
		return Request{}, false
	}
	c.page--
	return c.Reload(), true
}

// CycleSort switches to the next sort field and refetches. Sort only
// affects the listing endpoint; during a search it is carried but unused.
func (c *Controller) CycleSort() Request {
	c.sort = c.sort.Next()
	return c.Reload()
}

// Do executes a request. A blank query falls back to the paginated, sorted
// listing; anything else hits the search endpoint, which has no sort
// parameter. Runs off the UI loop; the result is fed back through Apply.
func (c *Controller) Do(ctx context.Context, req Request) Result {
	var (
		page models.Page
		err  error
	)
	if strings.TrimSpace(req.Query) == "" {
		page, err = c.api.ListUsers(ctx, req.Page, req.Size, req.Sort)
	} else {
		page, err = c.api.SearchUsers(ctx, req.Query, req.Page, req.Size)
	}
	return Result{Seq: req.Seq, Page: page, Err: err}
}

// Apply reconciles a completed fetch with the controller state. Stale
// results (an older request finishing after a newer one was issued) are
// dropped entirely. On success the server's page metadata is authoritative,
// including the returned page number.
func (c *Controller) Apply(res Result) (stale bool, err error) {
	if res.Seq != c.seq {
		return true, nil
	}
	c.loading = false
	if res.Err != nil {
		return false, res.Err
	}

	c.items = res.Page.Items
	c.totalPages = res.Page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.page = res.Page.Number
	return false, nil
}

// Reset drops all fetch state, e.g. after a logout.
func (c *Controller) Reset() {
	c.query = ""
	c.pendingQuery = ""
	c.page = 0
	c.sort = models.SortByID
	c.items = nil
	c.totalPages = 1
	c.loading = false
	c.generation++
	c.seq++
}

func (c *Controller) Items() []models.UserRecord { return c.items }
func (c *Controller) PageIndex() int             { return c.page }
func (c *Controller) TotalPages() int            { return c.totalPages }
func (c *Controller) Query() string              { return c.query }
func (c *Controller) PendingQuery() string       { return c.pendingQuery }
func (c *Controller) Sort() models.SortField     { return c.sort }
func (c *Controller) Loading() bool              { return c.loading }

// CanPrev reports whether a previous page exists.
func (c *Controller) CanPrev() bool { return c.page > 0 }

// CanNext reports whether a next page exists.
func (c *Controller) CanNext() bool { return c.page < c.totalPages-1 }
