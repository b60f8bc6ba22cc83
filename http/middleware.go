package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/hcprofile"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName names the cookie carrying the session ID.
const SessionCookieName = "hcprofile_session"

// sessionKey stores the current *hcprofile.Session in the gin context.
const sessionKey = "session"

type loggingConfig struct {
	logger     *slog.Logger
	ignorePath []string

	defaultLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

// LoggingOption configures the request logging middleware.
type LoggingOption func(*loggingConfig)

// WithIgnorePath disables logging for the given paths.
func WithIgnorePath(paths []string) LoggingOption {
	return func(c *loggingConfig) {
		c.ignorePath = paths
	}
}

// NewLogging returns a middleware logging one line per request. Client
// errors are logged at warn level and server errors at error level.
func NewLogging(logger *slog.Logger, options ...LoggingOption) gin.HandlerFunc {
	l := &loggingConfig{
		logger:           logger,
		defaultLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}
	for _, option := range options {
		option(l)
	}

	ignore := make(map[string]struct{}, len(l.ignorePath))
	for _, path := range l.ignorePath {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := ignore[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := l.defaultLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = l.serverErrorLevel
		case status >= http.StatusBadRequest:
			level = l.clientErrorLevel
		}

		attrs := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", time.Since(start).Milliseconds()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("data_length", max(c.Writer.Size(), 0)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}
		l.logger.LogAttrs(c.Request.Context(), level, fmt.Sprintf("%s %s", c.Request.Method, path), attrs...)
	}
}

// loadSession attaches the caller's session to the request, starting a new
// one when the cookie is missing or names an unknown session.
func (s *Server) loadSession(c *gin.Context) {
	ctx := c.Request.Context()

	if id, err := c.Cookie(SessionCookieName); err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			session, err := s.SessionService.FindSessionByID(ctx, id)
			if err == nil {
				c.Set(sessionKey, session)
				c.Next()
				return
			} else if hcprofile.ErrorCode(err) != hcprofile.ENOTFOUND {
				s.abortWithError(c, err)
				return
			}
		}
	}

	session := &hcprofile.Session{}
	if err := s.SessionService.CreateSession(ctx, session); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.ID, 0, "/", "", s.SecureCookie, true)
	c.Set(sessionKey, session)
	c.Next()
}

// currentSession returns the session attached by loadSession.
func currentSession(c *gin.Context) *hcprofile.Session {
	return c.MustGet(sessionKey).(*hcprofile.Session)
}

// abortWithError records err and stops the request with a plain-text error.
// Internal error details are logged but not shown.
func (s *Server) abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()

	msg := hcprofile.ErrorMessage(err)
	if hcprofile.ErrorCode(err) == hcprofile.EINTERNAL {
		msg = "Internal error."
	}
	c.String(ErrorStatusCode(err), msg)
}
