package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/hcprofile"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages served by one browser process
// before it is replaced.
const DefaultMaxPages = 50

// instance is one launched Chrome process and the tabs leased on it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	// leases counts tabs handed out and not yet released.
	leases int

	// retired is set once a newer instance has taken over. A retired
	// instance is shut down when its last lease is released.
	retired bool
}

// BrowserManager owns the Chrome processes used by Fetcher. A long-running
// server keeps scraping profile pages for many sessions and Chrome memory
// only grows, so a fresh browser takes over after a fixed number of pages.
// Tabs still loading on the old browser finish before it is shut down.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	served   int64
	maxPages int64
	closed   bool

	launch   func() (*instance, error)
	shutdown func(*instance) error
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser. Close must be called
// when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	return newBrowserManager(launchChrome, shutdownChrome, opts...)
}

func newBrowserManager(launch func() (*instance, error), shutdown func(*instance) error, opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		launch:   launch,
		shutdown: shutdown,
	}
	for _, opt := range opts {
		opt(bm)
	}
	if bm.maxPages <= 0 {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "max pages must be positive, got %d", bm.maxPages)
	}

	inst, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = inst
	return bm, nil
}

// Acquire leases the browser a new tab should be opened on, replacing the
// browser first once it has served maxPages pages. The returned release
// func must be called after the tab is closed; extra calls are ignored.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, hcprofile.Errorf(hcprofile.EINVALID, "browser manager is closed")
	}
	if bm.served >= bm.maxPages {
		bm.recycle()
	}

	inst := bm.current
	inst.leases++
	bm.served++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(inst) })
	}
	return inst.browser, release, nil
}

// release ends one lease on inst and shuts inst down if it was retired
// and this was its last tab.
func (bm *BrowserManager) release(inst *instance) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	inst.leases--
	if inst.retired && inst.leases == 0 {
		_ = bm.shutdown(inst)
	}
}

// recycle hands over to a freshly launched browser. The old one keeps
// serving when the launch fails and is retried on the next Acquire.
// Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := bm.launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	bm.served = 0

	old.retired = true
	if old.leases == 0 {
		_ = bm.shutdown(old)
	}
}

// Close shuts down the current browser, including tabs still open on it.
// Retired browsers are shut down as their last tab is released.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	inst := bm.current
	inst.retired = true
	return bm.shutdown(inst)
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// launchChrome starts Chrome without background throttling so that tabs
// opened concurrently keep rendering.
func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

// shutdownChrome closes the browser connection and kills its process.
func shutdownChrome(inst *instance) error {
	var err error
	if inst.browser != nil {
		err = inst.browser.Close()
		inst.browser = nil
	}
	if inst.launcher != nil {
		inst.launcher.Kill()
		inst.launcher = nil
	}
	return err
}
