package browser

import (
	"context"
	"sync"
	"time"
	"xpath-finder/internal/config"
	"xpath-finder/internal/entity"
	"xpath-finder/pkg/apperr"
	"xpath-finder/pkg/logg"
	"xpath-finder/pkg/tracing"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sessionManagerName = "SessionManager"
	browserTracer      = "browser.manager"

	settleDelay     = 2 * time.Second
	scrollPause     = 300 * time.Millisecond
	maxScrollSteps  = 40
	networkIdleWait = 5000
)

// Manager owns the process-wide browser instance and the per-URL page
// sessions. Sessions live until Close; there is no eviction.
type Manager struct {
	config *config.Config
	logger *zap.Logger
	tracer trace.Tracer

	playwright *playwright.Playwright
	browser    playwright.Browser

	cache   *SnapshotCache
	loader  pageLoader
	newPage func() (playwright.Page, error)

	mu       sync.Mutex
	sessions map[string]*Session
	ready    bool
}

// Session is one loaded page, exclusively owned by the Manager. Callers
// borrow the page handle and must not close it.
type Session struct {
	URL       string
	Page      playwright.Page
	LoadedAt  time.Time
	FromCache bool
}

func (s *Session) Info() entity.SessionInfo {
	return entity.SessionInfo{
		URL:       s.URL,
		LoadedAt:  s.LoadedAt,
		FromCache: s.FromCache,
	}
}

// pageLoader is the seam between session bookkeeping and actual driver
// navigation, so tests can count live loads without a real browser.
type pageLoader interface {
	LoadSnapshot(ctx context.Context, page playwright.Page, html string) error
	LoadLive(ctx context.Context, page playwright.Page, url string) (string, error)
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewManager(params Params) *Manager {
	logger := params.Logger.With(zap.String(logg.Layer, sessionManagerName))

	return &Manager{
		config:   params.Config,
		logger:   logger,
		tracer:   otel.Tracer(browserTracer),
		cache:    NewSnapshotCache(params.Config.BrowserConfig.CacheDir, time.Duration(params.Config.BrowserConfig.CacheTTL)*time.Second),
		loader:   &driverLoader{config: params.Config, logger: logger},
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser...")
	step.AddEvent("installing playwright")

	err = playwright.Install()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	browserOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	}

	browser, err := m.playwright.Chromium.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	m.newPage = func() (playwright.Page, error) {
		return browser.NewPage()
	}

	m.mu.Lock()
	m.ready = true
	m.mu.Unlock()

	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing browser...")

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.ready = false
	m.mu.Unlock()

	for _, s := range sessions {
		if s.Page != nil {
			if err := s.Page.Close(); err != nil {
				logger.Warn("Failed to close page", zap.String(logg.URL, s.URL), zap.Error(err))
			}
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	logger.Info("Browser closed")

	return nil
}

// GetPage resolves a borrowed page handle for url via GetSession.
func (m *Manager) GetPage(ctx context.Context, url string) (playwright.Page, error) {
	session, err := m.GetSession(ctx, url)
	if err != nil {
		return nil, err
	}

	return session.Page, nil
}

// GetSession resolves a session for url: a live session is reused as-is,
// a fresh disk snapshot is injected without navigation, otherwise the
// page is loaded live and snapshotted. Navigation failure is non-fatal:
// the session is still registered so discovery degrades to zero
// candidates.
func (m *Manager) GetSession(ctx context.Context, url string) (session *Session, err error) {
	const op = "GetSession"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	m.mu.Lock()
	if !m.ready {
		m.mu.Unlock()

		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}
	if s, ok := m.sessions[url]; ok {
		m.mu.Unlock()
		step.AddEvent("session reused")

		return s, nil
	}
	m.mu.Unlock()

	page, err := m.newPage()
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "new_page_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	session = &Session{
		URL:      url,
		Page:     page,
		LoadedAt: time.Now(),
	}

	if html, ok := m.cache.Read(url); ok {
		step.AddEvent("loading from snapshot cache")

		if err := m.loader.LoadSnapshot(ctx, page, prepareSnapshot(html, url)); err != nil {
			logger.Warn("Failed to inject cached snapshot", zap.Error(err))
		} else {
			session.FromCache = true
		}
	}

	if !session.FromCache {
		step.AddEvent("loading live")

		html, loadErr := m.loader.LoadLive(ctx, page, url)
		if loadErr != nil {
			// best effort: an empty or partial page yields zero
			// candidates downstream, not a hard failure
			logger.Error("Navigation failed, keeping page as-is", zap.Error(loadErr))
			step.AddEvent("navigation failed")
		} else if writeErr := m.cache.Write(url, html); writeErr != nil {
			logger.Warn("Failed to persist snapshot", zap.Error(writeErr))
		}
	}

	m.mu.Lock()
	if existing, ok := m.sessions[url]; ok {
		// another caller registered the same URL first
		m.mu.Unlock()

		if err := page.Close(); err != nil {
			logger.Warn("Failed to close duplicate page", zap.Error(err))
		}

		return existing, nil
	}
	m.sessions[url] = session
	m.mu.Unlock()

	step.AddEvent("session registered")

	return session, nil
}

func (m *Manager) Sessions() []entity.SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]entity.SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		infos = append(infos, s.Info())
	}

	return infos
}

func (m *Manager) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ready
}
