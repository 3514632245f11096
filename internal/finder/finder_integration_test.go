package finder

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests drive a real headless Chromium. They are skipped unless
// RUN_BROWSER_TESTS=1 so the unit suite stays hermetic.

func newBrowserPage(t *testing.T, html string) playwright.Page {
	t.Helper()

	if os.Getenv("RUN_BROWSER_TESTS") != "1" {
		t.Skip("set RUN_BROWSER_TESTS=1 to run browser-backed tests")
	}

	require.NoError(t, playwright.Install())

	pw, err := playwright.Run()
	require.NoError(t, err)
	t.Cleanup(func() { pw.Stop() })

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	require.NoError(t, err)
	t.Cleanup(func() { browser.Close() })

	page, err := browser.NewPage()
	require.NoError(t, err)
	require.NoError(t, page.SetContent(html))

	return page
}

func TestSynthesizerUniqueID(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<button id="login-btn">Log In</button>
		<button id="cancel-btn">Cancel</button>
	</body></html>`)

	info, err := describeElement(page.Locator("#login-btn"))
	require.NoError(t, err)

	assert.Equal(t, "//button[@id='login-btn']", info.Locator)
	assert.Equal(t, 1, info.MatchCount)
	assert.Equal(t, "button", info.Tag)
	assert.Equal(t, "Log In", info.Text)
	assert.Equal(t, "#login-btn", info.CSS)
}

func TestSynthesizerPositionalFallback(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<ul>
			<li>Same</li>
			<li>Same</li>
			<li>Same</li>
		</ul>
	</body></html>`)

	info, err := describeElement(page.Locator("li").Nth(1))
	require.NoError(t, err)

	assert.Contains(t, info.Locator, ")[2]", "second sibling must be addressed by position")
	assert.Equal(t, 1, info.MatchCount)

	// the positional locator must resolve back to the original element
	count, err := page.Locator(fmt.Sprintf("xpath=%s", info.Locator)).Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	text, err := page.Locator(fmt.Sprintf("xpath=%s", info.Locator)).InnerText()
	require.NoError(t, err)
	assert.Equal(t, "Same", text)
}

func TestSynthesizerEscapesQuotes(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<button>Let's Start</button>
		<button>Stop</button>
	</body></html>`)

	info, err := describeElement(page.Locator("button").First())
	require.NoError(t, err)

	assert.Contains(t, info.Locator, "concat(", "single quotes require concat() escaping")
	assert.Equal(t, 1, info.MatchCount)
}

func TestDiscoverNativeTextSignIn(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<button>Sign In</button>
	</body></html>`)

	f := newTestFinder(&stubSessions{page: page})

	candidates := f.discover(f.logger, page, parseHint("text='Sign In'"), "*", 5)
	require.Len(t, candidates, 1, "native and fuzzy hits collapse to one locator")

	top := candidates[0]
	assert.Equal(t, "button", top.Tag)
	assert.Equal(t, 1, top.MatchCount)
	assert.GreaterOrEqual(t, top.Confidence, 0.9)
}

func TestDiscoverFuzzyAmbiguousSubmit(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<button id="order">Submit Order</button>
		<button id="form">Submit Form</button>
	</body></html>`)

	f := newTestFinder(&stubSessions{page: page})

	candidates := f.discover(f.logger, page, "Submit", "button", 5)

	fuzzy := make([]float64, 0, 2)
	for _, c := range candidates {
		if c.Strategy == "fuzzy_text_match" {
			fuzzy = append(fuzzy, c.Confidence)
		}
	}

	require.Len(t, fuzzy, 2)
	for _, conf := range fuzzy {
		assert.GreaterOrEqual(t, conf, 0.6)
		assert.Less(t, conf, 1.0)
	}
	assert.GreaterOrEqual(t, fuzzy[0], fuzzy[1], "ranked by descending similarity")
}

func TestFindLocatorEndToEnd(t *testing.T) {
	page := newBrowserPage(t, `<html><body>
		<input id="user-email" name="email" placeholder="Enter email">
		<button id="login-btn">Log In</button>
	</body></html>`)

	f := newTestFinder(&stubSessions{page: page})

	candidates, err := f.FindLocator(context.Background(), "https://example.test/login", "user email", "input", 3)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.LessOrEqual(t, len(candidates), 3)

	for i, c := range candidates {
		assert.Equal(t, i+1, c.Rank)
		assert.NotEmpty(t, c.Locator)
	}
}
