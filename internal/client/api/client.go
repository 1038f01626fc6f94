// Package api is the HTTP request layer for the user-management backend.
//
// Every call attaches the bearer token read from the credential store at
// send time, so the header always reflects the latest login or logout.
// Transport failures surface as common.ErrUnavailable, authorization
// denials as common.ErrUnauthorized / common.ErrAdminRequired, and
// application errors carry the backend's message verbatim.
package api

import (
	"context"
	"fmt"
	"io"

	"github.com/flfe/adminctl/internal/client/models"
)

// Client is the backend operation surface consumed by the views.
type Client interface {
	// ListUsers fetches one page of the sorted user listing.
	ListUsers(ctx context.Context, page, size int, sort models.SortField) (models.Page, error)
	// SearchUsers fetches one page of free-text search results. The search
	// endpoint has no sort parameter.
	SearchUsers(ctx context.Context, query string, page, size int) (models.Page, error)
	// GetUser fetches a single record.
	GetUser(ctx context.Context, id int64) (models.UserRecord, error)
	// CreateUser creates a record and returns it as the backend stored it.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserRecord, error)
	// UpdateUser replaces name/email and optionally password/picture.
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.UserRecord, error)
	// DeleteUser removes a record. The backend answers 403 for non-admins.
	DeleteUser(ctx context.Context, id int64) error
	// AdminStats fetches the dashboard totals.
	AdminStats(ctx context.Context) (models.Stats, error)
	// UploadFile posts a file as multipart form data and returns the URL the
	// backend stored it under.
	UploadFile(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Error is an application-level failure reported by the backend with an
// explicit message envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
