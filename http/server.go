package http

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/hcprofile"
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is shut down.
const ShutdownTimeout = 5 * time.Second

// MaxFormBytes caps the size of a submitted form.
const MaxFormBytes = 64 << 10

//go:embed templates/*.html
var templateFS embed.FS

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server serves the profile extractor UI.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// Addr is the bind address, e.g. ":8501".
	Addr string

	// SecureCookie marks the session cookie Secure. Enable behind TLS.
	SecureCookie bool

	Scraper          hcprofile.Scraper
	ProfileExtractor hcprofile.ProfileExtractor
	SessionService   hcprofile.SessionService
}

// NewServer creates a Server with its routes registered. Services must be
// set before the server handles requests.
func NewServer(logger *slog.Logger) *Server {
	s := &Server{
		router: gin.New(),
		logger: logger,
	}
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))
	s.router.Use(gin.Recovery())
	s.router.Use(NewLogging(logger, WithIgnorePath([]string{"/healthz"})))

	s.router.GET("/healthz", handleHealthz)

	ui := s.router.Group("/", s.loadSession)
	ui.GET("/", s.handleIndex)
	ui.POST("/scrape", limits.RequestSizeLimiter(MaxFormBytes), s.handleScrape)
	ui.POST("/extract", limits.RequestSizeLimiter(MaxFormBytes), s.handleExtract)
	ui.GET("/download", s.handleDownload)

	return s
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

func handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
