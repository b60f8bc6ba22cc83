package main

import (
	"fmt"
	"time"

	hchttp "github.com/fwojciec/hcprofile/http"
)

// pruneInterval is how often idle sessions are removed.
const pruneInterval = time.Hour

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := hchttp.NewServer(deps.Logger)
	s.Addr = c.Addr
	s.Scraper = deps.Scraper
	s.ProfileExtractor = deps.ProfileExtractor
	s.SessionService = deps.Sessions

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to listen on %s: %s\n", c.Addr, err)
		return err
	}
	defer s.Close()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	var tick <-chan time.Time
	if c.SessionTTL > 0 && deps.PruneSessions != nil {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		tick = ticker.C
		c.prune(deps)
	}

	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case <-tick:
			c.prune(deps)
		}
	}
}

// prune deletes sessions idle for longer than SessionTTL.
func (c *ServeCmd) prune(deps *Dependencies) {
	n, err := deps.PruneSessions(deps.Ctx, time.Now().Add(-c.SessionTTL))
	if err != nil {
		deps.Logger.Warn("prune sessions", "err", err)
		return
	}
	if n > 0 {
		deps.Logger.Info("prune sessions", "deleted", n)
	}
}
