package http

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hcprofile"
	"github.com/gin-gonic/gin"
)

// Message kinds shown in the UI.
const (
	messageSuccess = "success"
	messageWarning = "warning"
	messageError   = "error"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	hcprofile.ECONFLICT:     http.StatusConflict,
	hcprofile.EINVALID:      http.StatusBadRequest,
	hcprofile.ENOTFOUND:     http.StatusNotFound,
	hcprofile.EUNAUTHORIZED: http.StatusUnauthorized,
	hcprofile.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for err. Undecodable model
// replies map to 502 Bad Gateway.
func ErrorStatusCode(err error) int {
	var perr *hcprofile.ParseError
	if errors.As(err, &perr) {
		return http.StatusBadGateway
	}
	if code, ok := codes[hcprofile.ErrorCode(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// message is a status line shown in the sidebar or the main panel.
type message struct {
	Kind string
	Text string
}

// page is the data rendered by index.html.
type page struct {
	URLs           string
	SidebarMessage *message
	MainMessage    *message
	PageCount      int
	Characters     int
	HasContent     bool
	Document       string
	RawResponse    string
	FileName       string
}

// newPage builds the view of session.
func newPage(session *hcprofile.Session) *page {
	p := &page{
		URLs:      session.URLs,
		PageCount: session.PageCount,
		FileName:  hcprofile.DocumentFileName,
	}
	if session.RawContent != "" {
		p.HasContent = true
		p.Characters = utf8.RuneCountInString(session.RawContent)
	}
	if session.Profile != nil {
		p.Document = hcprofile.FormatProfile(session.Profile)
	}
	return p
}

func (s *Server) render(c *gin.Context, status int, p *page) {
	c.HTML(status, "index.html", p)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.render(c, http.StatusOK, newPage(currentSession(c)))
}

func (s *Server) handleScrape(c *gin.Context) {
	ctx := c.Request.Context()
	session := currentSession(c)

	input := c.PostForm("urls")
	urls := hcprofile.ParseURLList(input)
	if len(urls) == 0 {
		p := newPage(session)
		p.URLs = input
		p.SidebarMessage = &message{Kind: messageWarning, Text: "Please enter at least one URL"}
		s.render(c, http.StatusBadRequest, p)
		return
	}

	result, err := s.Scraper.Scrape(ctx, urls)
	if err != nil {
		_ = c.Error(err)
		p := newPage(session)
		p.URLs = input
		p.SidebarMessage = &message{Kind: messageError, Text: "Error scraping URLs: " + hcprofile.ErrorMessage(err)}
		s.render(c, ErrorStatusCode(err), p)
		return
	}

	pageCount := len(result.Pages)
	session, err = s.SessionService.UpdateSession(ctx, session.ID, hcprofile.SessionUpdate{
		URLs:       &input,
		RawContent: &result.Content,
		PageCount:  &pageCount,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	p := newPage(session)
	p.SidebarMessage = &message{Kind: messageSuccess, Text: result.Summary()}
	s.render(c, http.StatusOK, p)
}

func (s *Server) handleExtract(c *gin.Context) {
	ctx := c.Request.Context()
	session := currentSession(c)

	x, err := s.ProfileExtractor.ExtractProfile(ctx, session.RawContent)
	if err != nil {
		_ = c.Error(err)
		p := newPage(session)
		p.MainMessage = extractErrorMessage(err)

		var perr *hcprofile.ParseError
		if errors.As(err, &perr) {
			p.RawResponse = perr.Raw
		}
		s.render(c, ErrorStatusCode(err), p)
		return
	}

	session, err = s.SessionService.UpdateSession(ctx, session.ID, hcprofile.SessionUpdate{Profile: x.Profile})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	s.render(c, http.StatusOK, newPage(session))
}

// extractErrorMessage words an extraction failure for display.
func extractErrorMessage(err error) *message {
	var perr *hcprofile.ParseError
	switch {
	case errors.As(err, &perr):
		return &message{Kind: messageError, Text: "Parsing error: " + perr.Err.Error()}
	case hcprofile.ErrorCode(err) == hcprofile.EINVALID, hcprofile.ErrorCode(err) == hcprofile.EUNAUTHORIZED:
		return &message{Kind: messageError, Text: hcprofile.ErrorMessage(err)}
	default:
		return &message{Kind: messageError, Text: "Error extracting information: " + hcprofile.ErrorMessage(err)}
	}
}

func (s *Server) handleDownload(c *gin.Context) {
	session := currentSession(c)
	if session.Profile == nil {
		c.String(http.StatusNotFound, "No profile has been extracted yet.")
		return
	}

	body := hcprofile.FormatProfile(session.Profile)
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64String(body))
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, hcprofile.DocumentFileName))
	c.Data(http.StatusOK, hcprofile.DocumentMIMEType+"; charset=utf-8", []byte(body))
}
