package browser

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
	"xpath-finder/internal/config"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// fakeLoader counts driver navigations without touching a real browser.
type fakeLoader struct {
	liveCalls     int
	snapshotCalls int
	lastSnapshot  string
	liveHTML      string
	liveErr       error
}

func (f *fakeLoader) LoadSnapshot(ctx context.Context, page playwright.Page, html string) error {
	f.snapshotCalls++
	f.lastSnapshot = html

	return nil
}

func (f *fakeLoader) LoadLive(ctx context.Context, page playwright.Page, url string) (string, error) {
	f.liveCalls++

	return f.liveHTML, f.liveErr
}

func newTestManager(t *testing.T, loader pageLoader) *Manager {
	t.Helper()

	conf := &config.Config{
		AppConfig:     &config.AppConfig{},
		BrowserConfig: &config.BrowserConfig{CacheDir: t.TempDir(), CacheTTL: 3600},
		FinderConfig:  &config.FinderConfig{},
	}

	return &Manager{
		config:   conf,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer("browser.manager.test"),
		cache:    NewSnapshotCache(conf.BrowserConfig.CacheDir, time.Duration(conf.BrowserConfig.CacheTTL)*time.Second),
		loader:   loader,
		newPage:  func() (playwright.Page, error) { return nil, nil },
		sessions: make(map[string]*Session),
		ready:    true,
	}
}

func TestGetPageRequiresLaunch(t *testing.T) {
	m := newTestManager(t, &fakeLoader{})
	m.ready = false

	_, err := m.GetSession(context.Background(), "https://example.com")
	assert.Error(t, err)
}

func TestGetPageLiveLoadPersistsSnapshot(t *testing.T) {
	loader := &fakeLoader{liveHTML: "<html><body>hi</body></html>"}
	m := newTestManager(t, loader)

	s, err := m.GetSession(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.False(t, s.FromCache)
	assert.Equal(t, 1, loader.liveCalls)

	html, ok := m.cache.Read("https://example.com")
	require.True(t, ok)
	assert.Equal(t, loader.liveHTML, html)
}

func TestGetPageReusesLiveSession(t *testing.T) {
	loader := &fakeLoader{liveHTML: "<html></html>"}
	m := newTestManager(t, loader)

	first, err := m.GetSession(context.Background(), "https://example.com")
	require.NoError(t, err)

	second, err := m.GetSession(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.liveCalls, "second request must not re-fetch")
}

func TestGetPageFreshSnapshotSkipsNavigation(t *testing.T) {
	loader := &fakeLoader{}
	m := newTestManager(t, loader)

	require.NoError(t, m.cache.Write("https://example.com", "<html><head></head><body>cached</body></html>"))

	s, err := m.GetSession(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.True(t, s.FromCache)
	assert.Equal(t, 0, loader.liveCalls, "fresh snapshot must not trigger navigation")
	assert.Equal(t, 1, loader.snapshotCalls)
	assert.Contains(t, loader.lastSnapshot, `<base href="https://example.com">`)
}

func TestGetPageExpiredSnapshotNavigates(t *testing.T) {
	loader := &fakeLoader{liveHTML: "<html></html>"}
	m := newTestManager(t, loader)

	require.NoError(t, m.cache.Write("https://example.com", "<html></html>"))

	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(m.cache.Path("https://example.com"), stale, stale))

	s, err := m.GetSession(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, s.FromCache)
	assert.Equal(t, 1, loader.liveCalls)
	assert.Equal(t, 0, loader.snapshotCalls)
}

func TestGetPageNavigationFailureStillRegisters(t *testing.T) {
	loader := &fakeLoader{liveErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	m := newTestManager(t, loader)

	s, err := m.GetSession(context.Background(), "https://bad.invalid")
	require.NoError(t, err, "navigation failure is swallowed")
	require.NotNil(t, s)

	_, cached := m.cache.Read("https://bad.invalid")
	assert.False(t, cached, "failed load must not be snapshotted")

	infos := m.Sessions()
	require.Len(t, infos, 1)
	assert.Equal(t, "https://bad.invalid", infos[0].URL)
}
