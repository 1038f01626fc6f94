// Package session derives the operator's identity from a bearer token and
// owns the process-wide auth state.
//
// The token's claims are decoded without signature verification: the role
// claim is an advisory hint for UI gating only, never a security boundary.
// The backend re-validates the token on every API call.
package session

import (
	"fmt"

	"github.com/flfe/adminctl/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Role is the role claim carried in the token.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Claims is the token payload the backend issues after the OAuth flow.
type Claims struct {
	Role    string `json:"role"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Session is the decoded identity of the current operator. Exactly one
// session exists at a time, owned by the Manager.
type Session struct {
	SubjectID string
	Role      Role
	Picture   string
	RawToken  string
}

// IsAdmin reports whether the session's role claim is ADMIN.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Decode extracts the claims from a three-segment bearer token without
// verifying its signature. Any malformed segment, invalid base64 or
// unparseable payload yields common.ErrInvalidToken; callers must treat
// that the same as "no session".
func Decode(token string) (Session, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %s", common.ErrInvalidToken, err)
	}

	return Session{
		SubjectID: claims.Subject,
		Role:      Role(claims.Role),
		Picture:   claims.Picture,
		RawToken:  token,
	}, nil
}
