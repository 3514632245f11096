package browser

import (
	"context"
	"fmt"
	"time"
	"xpath-finder/internal/config"
	"xpath-finder/pkg/logg"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// driverLoader performs the actual driver calls behind the pageLoader
// seam: snapshot injection or live navigation with lazy-load scrolling.
type driverLoader struct {
	config *config.Config
	logger *zap.Logger
}

func (l *driverLoader) LoadSnapshot(ctx context.Context, page playwright.Page, html string) error {
	return page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
}

func (l *driverLoader) LoadLive(ctx context.Context, page playwright.Page, url string) (string, error) {
	_, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(l.config.BrowserConfig.NavTimeout)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return "", fmt.Errorf("goto failed: %w", err)
	}

	time.Sleep(settleDelay)

	l.scrollToLoad(page, url)

	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("content read failed: %w", err)
	}

	return content, nil
}

// scrollToLoad walks the page downward one viewport at a time so
// height-reactive lazy content gets a chance to render, then returns to
// the top and waits briefly for the network to settle. Every step is
// best-effort.
func (l *driverLoader) scrollToLoad(page playwright.Page, url string) {
	logger := l.logger.With(zap.String(logg.URL, url))

	height, ok := evalInt(page, "document.body.scrollHeight")
	if !ok {
		time.Sleep(time.Second)

		return
	}

	viewport, ok := evalInt(page, "window.innerHeight")
	if !ok || viewport <= 0 {
		viewport = 720
	}

	pos := 0
	for step := 0; pos < height && step < maxScrollSteps; step++ {
		pos += viewport

		if _, err := page.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", pos)); err != nil {
			logger.Debug("Scroll step failed", zap.Error(err))

			break
		}

		time.Sleep(scrollPause)

		if newHeight, ok := evalInt(page, "document.body.scrollHeight"); ok && newHeight > height {
			height = newHeight
		}
	}

	if _, err := page.Evaluate("window.scrollTo(0, 0)"); err != nil {
		logger.Debug("Scroll to top failed", zap.Error(err))
	}

	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(networkIdleWait),
	})
}

func evalInt(page playwright.Page, expr string) (int, bool) {
	result, err := page.Evaluate(expr)
	if err != nil {
		return 0, false
	}

	switch v := result.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}

	return 0, false
}
