package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/hcprofile"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hcprofile.SessionService = (*SessionService)(nil)

// SessionService implements hcprofile.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession inserts session with a fresh ID.
func (s *SessionService) CreateSession(ctx context.Context, session *hcprofile.Session) error {
	profile, err := encodeProfile(session.Profile)
	if err != nil {
		return err
	}

	session.ID = uuid.New().String()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, urls, raw_content, page_count, profile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.URLs, session.RawContent, session.PageCount, profile,
		formatTime(session.CreatedAt), formatTime(session.UpdatedAt))

	return err
}

// FindSessionByID retrieves a session by ID.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*hcprofile.Session, error) {
	var session hcprofile.Session
	var profile sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, urls, raw_content, page_count, profile, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &session.URLs, &session.RawContent, &session.PageCount, &profile,
		&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, hcprofile.Errorf(hcprofile.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	if session.Profile, err = decodeProfile(profile); err != nil {
		return nil, err
	}
	if session.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &session, nil
}

// UpdateSession applies upd to an existing session.
func (s *SessionService) UpdateSession(ctx context.Context, id string, upd hcprofile.SessionUpdate) (*hcprofile.Session, error) {
	session, err := s.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.URLs != nil {
		session.URLs = *upd.URLs
	}
	if upd.RawContent != nil {
		session.RawContent = *upd.RawContent
	}
	if upd.PageCount != nil {
		session.PageCount = *upd.PageCount
	}
	if upd.Profile != nil {
		session.Profile = upd.Profile
	}

	profile, err := encodeProfile(session.Profile)
	if err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sessions
		SET urls = ?, raw_content = ?, page_count = ?, profile = ?, updated_at = ?
		WHERE id = ?
	`, session.URLs, session.RawContent, session.PageCount, profile,
		formatTime(session.UpdatedAt), id)

	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession permanently removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return hcprofile.Errorf(hcprofile.ENOTFOUND, "session not found")
	}

	return nil
}

// DeleteSessionsBefore removes sessions not updated since t and returns
// how many were removed.
func (s *SessionService) DeleteSessionsBefore(ctx context.Context, t time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", formatTime(t))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
