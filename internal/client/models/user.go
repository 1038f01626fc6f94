// Package models defines the record types exchanged with the user-management
// backend. Instances are ephemeral, possibly stale copies of backend state;
// nothing here is cached across views.
package models

import "time"

// UserRecord is one user row as the backend reports it.
type UserRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Page is one page of user records. The backend's page metadata is
// authoritative: Number and TotalPages come from the response, never from
// the request that produced it.
//
// Invariant: TotalPages >= 1 even for an empty result set, and
// Number < TotalPages.
type Page struct {
	Items      []UserRecord
	Number     int
	TotalPages int
}

// Stats is the admin dashboard payload.
type Stats struct {
	TotalUsers    int64   `json:"totalUsers"`
	ActiveUsers   int64   `json:"activeUsers"`
	MonthlyGrowth []int64 `json:"monthlyGrowth"`
}

// CreateUserRequest is the body for creating a user. All fields are
// required; blank checks happen in the form before submit and again in
// the backend.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body for updating a user. Password and Picture
// are optional: empty values are omitted so the backend keeps the current
// ones.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Picture  string `json:"picture,omitempty"`
}
