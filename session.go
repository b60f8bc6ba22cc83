package hcprofile

import (
	"context"
	"time"
)

// Session holds the UI state of one browser: the last scraped raw content
// and the last extracted profile. Each is kept until overwritten by the
// next scrape or extraction.
type Session struct {
	ID         string    `json:"id"`
	URLs       string    `json:"urls"`
	RawContent string    `json:"rawContent"`
	PageCount  int       `json:"pageCount"`
	Profile    *Profile  `json:"profile,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SessionService represents a service for managing UI sessions.
type SessionService interface {
	// CreateSession creates a new, empty session and assigns its ID.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// UpdateSession updates an existing session.
	// Returns ENOTFOUND if the session does not exist.
	UpdateSession(ctx context.Context, id string, upd SessionUpdate) (*Session, error)

	// DeleteSession permanently removes a session.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}

// SessionUpdate represents fields that can be updated on a session.
// Nil fields are left unchanged.
type SessionUpdate struct {
	URLs       *string  `json:"urls"`
	RawContent *string  `json:"rawContent"`
	PageCount  *int     `json:"pageCount"`
	Profile    *Profile `json:"profile"`
}

// DocumentWriter stores a formatted profile document.
type DocumentWriter interface {
	// WriteDocument writes content under name and returns where it was written.
	WriteDocument(ctx context.Context, name, content string) (string, error)
}
