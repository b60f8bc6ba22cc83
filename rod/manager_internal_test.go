package rod

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChrome records launches and shutdowns without starting a browser.
type fakeChrome struct {
	mu        sync.Mutex
	launched  []*instance
	shutdown  []*instance
	launchErr error
}

func (f *fakeChrome) launch() (*instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	inst := &instance{}
	f.launched = append(f.launched, inst)
	return inst, nil
}

func (f *fakeChrome) close(inst *instance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdown = append(f.shutdown, inst)
	return nil
}

func (f *fakeChrome) isShutdown(inst *instance) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shutdown {
		if s == inst {
			return true
		}
	}
	return false
}

func newFakeManager(t *testing.T, maxPages int64) (*BrowserManager, *fakeChrome) {
	t.Helper()
	chrome := &fakeChrome{}
	bm, err := newBrowserManager(chrome.launch, chrome.close, WithMaxPages(maxPages))
	require.NoError(t, err)
	return bm, chrome
}

func TestBrowserManager_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("keeps the old browser alive until its tabs are released", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 2)
		first := chrome.launched[0]

		_, releaseA, err := bm.Acquire()
		require.NoError(t, err)
		_, releaseB, err := bm.Acquire()
		require.NoError(t, err)

		// Third tab goes to a new browser while A and B are still loading.
		_, releaseC, err := bm.Acquire()
		require.NoError(t, err)
		require.Len(t, chrome.launched, 2)
		assert.Same(t, chrome.launched[1], bm.current)
		assert.False(t, chrome.isShutdown(first))

		releaseA()
		assert.False(t, chrome.isShutdown(first))

		releaseB()
		assert.True(t, chrome.isShutdown(first))

		releaseC()
		assert.False(t, chrome.isShutdown(chrome.launched[1]))
	})

	t.Run("shuts an idle browser down on recycle", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 1)

		_, release, err := bm.Acquire()
		require.NoError(t, err)
		release()
		assert.False(t, chrome.isShutdown(chrome.launched[0]))

		_, release, err = bm.Acquire()
		require.NoError(t, err)
		defer release()
		assert.True(t, chrome.isShutdown(chrome.launched[0]))
	})

	t.Run("ignores repeated release", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 1)
		first := chrome.launched[0]

		_, releaseA, err := bm.Acquire()
		require.NoError(t, err)
		releaseA()
		releaseA()
		assert.Equal(t, 0, first.leases)

		_, releaseB, err := bm.Acquire()
		require.NoError(t, err)
		defer releaseB()
		assert.Equal(t, 1, bm.current.leases)
	})

	t.Run("keeps serving when a new browser cannot launch", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 1)
		first := chrome.launched[0]

		_, release, err := bm.Acquire()
		require.NoError(t, err)
		release()

		chrome.mu.Lock()
		chrome.launchErr = errors.New("chrome not found")
		chrome.mu.Unlock()

		_, release, err = bm.Acquire()
		require.NoError(t, err)
		defer release()
		assert.Same(t, first, bm.current)
		assert.False(t, chrome.isShutdown(first))
	})

	t.Run("concurrent tabs across a recycle are never shut down early", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 3)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, release, err := bm.Acquire()
				if !assert.NoError(t, err) {
					return
				}
				bm.mu.Lock()
				for _, inst := range chrome.launched {
					if inst.leases > 0 {
						assert.False(t, chrome.isShutdown(inst))
					}
				}
				bm.mu.Unlock()
				release()
			}()
		}
		wg.Wait()

		bm.mu.Lock()
		defer bm.mu.Unlock()
		for _, inst := range chrome.launched {
			assert.Equal(t, 0, inst.leases)
			if inst != bm.current {
				assert.True(t, chrome.isShutdown(inst))
			}
		}
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		bm, chrome := newFakeManager(t, 5)

		require.NoError(t, bm.Close())
		require.NoError(t, bm.Close())
		assert.True(t, chrome.isShutdown(chrome.launched[0]))
		assert.Len(t, chrome.shutdown, 1)

		_, _, err := bm.Acquire()
		require.Error(t, err)
		assert.Equal(t, 0, bm.LauncherPID())
	})
}
