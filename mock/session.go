package mock

import (
	"context"

	"github.com/fwojciec/hcprofile"
)

var _ hcprofile.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of hcprofile.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *hcprofile.Session) error
	FindSessionByIDFn func(ctx context.Context, id string) (*hcprofile.Session, error)
	UpdateSessionFn   func(ctx context.Context, id string, upd hcprofile.SessionUpdate) (*hcprofile.Session, error)
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *hcprofile.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*hcprofile.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) UpdateSession(ctx context.Context, id string, upd hcprofile.SessionUpdate) (*hcprofile.Session, error) {
	return s.UpdateSessionFn(ctx, id, upd)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
