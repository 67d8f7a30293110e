// Package browser bootstraps a stealth-configured go-rod browser and
// exposes it to the cursor engine through the Sink/RelativeMover/
// ElementHandle adapter in sink.go.
package browser

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog"

	"humancursor/internal/config"
	stealthpkg "humancursor/internal/stealth"
)

// Browser wraps a launched, stealth-configured rod.Browser.
type Browser struct {
	browser *rod.Browser
	config  *config.BrowserConfig
	timing  *stealthpkg.TimingController
	helper  *PageHelper
	logger  zerolog.Logger
}

// NewBrowser launches a browser per cfg with stealth flags and a
// randomized user agent, following the teacher's launcher idiom.
func NewBrowser(cfg *config.BrowserConfig, timing *stealthpkg.TimingController, logger zerolog.Logger) (*Browser, error) {
	logger = logger.With().Str("component", "browser").Logger()
	logger.Info().Msg("initializing browser")

	if cfg.UserDataDir != "" {
		if err := os.MkdirAll(cfg.UserDataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create user data directory: %w", err)
		}
	}

	l := launcher.New()

	if cfg.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.UserDataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for user data dir: %w", err)
		}
		l = l.UserDataDir(absPath)
	}

	if cfg.Headless {
		l = l.Headless(true)
		logger.Info().Msg("running in headless mode")
	} else {
		l = l.Headless(false)
		logger.Info().Msg("running in headed mode (visible browser)")
	}

	l = l.Set("disable-blink-features", "AutomationControlled")
	l = l.Set("disable-infobars")
	l = l.Set("disable-dev-shm-usage")
	l = l.Set("no-first-run")
	l = l.Set("no-default-browser-check")

	userAgent := stealthpkg.GetRandomUserAgent()
	l = l.Set("user-agent", userAgent)
	logger.Debug().Str("userAgent", userAgent).Msg("set user agent")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	rodBrowser := rod.New().ControlURL(controlURL)
	if err := rodBrowser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	rodBrowser = rodBrowser.Timeout(30 * time.Second)

	logger.Info().Msg("browser initialized successfully")

	return &Browser{
		browser: rodBrowser,
		config:  cfg,
		timing:  timing,
		helper:  NewPageHelper(logger),
		logger:  logger,
	}, nil
}

// NewPage creates a new page with stealth and fingerprint masking applied.
func (b *Browser) NewPage() (*rod.Page, error) {
	b.logger.Debug().Msg("creating new page with stealth")

	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create stealth page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  b.config.ViewportWidth,
		Height: b.config.ViewportHeight,
	})
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to set viewport")
	}

	if err := stealthpkg.ApplyFingerprint(page, b.logger); err != nil {
		b.logger.Warn().Err(err).Msg("failed to apply fingerprint masking")
	}

	return page, nil
}

// GetPage returns an existing page or creates a new one.
func (b *Browser) GetPage() (*rod.Page, error) {
	pages, err := b.browser.Pages()
	if err != nil {
		return nil, err
	}

	if len(pages) > 0 {
		return pages[0], nil
	}

	return b.NewPage()
}

// Navigate navigates to a URL and waits for the page, and the network
// traffic it kicks off, to settle.
func (b *Browser) Navigate(page *rod.Page, url string) error {
	b.logger.Debug().Str("url", url).Msg("navigating to URL")

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}

	if err := b.helper.WaitForNavigation(page, 30*time.Second); err != nil {
		b.logger.Warn().Err(err).Msg("WaitForNavigation failed, continuing anyway")
	}
	if err := b.helper.WaitForNetworkIdle(page, 5*time.Second); err != nil {
		b.logger.Debug().Err(err).Msg("WaitForNetworkIdle failed, continuing anyway")
	}

	if b.timing != nil {
		b.timing.PageLoadDelay()
	}

	return nil
}

// FindRandomVisibleElement returns a random visible element matching
// selector, scrolled into view and settled so the cursor engine's
// bounding-rect sampling lands on the element's final resting position.
func (b *Browser) FindRandomVisibleElement(page *rod.Page, selector string) (*rod.Element, error) {
	elements, err := b.helper.GetAllElements(page, selector)
	if err != nil {
		return nil, err
	}

	var visible []*rod.Element
	for _, el := range elements {
		if ok, err := el.Visible(); err == nil && ok {
			visible = append(visible, el)
		}
	}
	if len(visible) == 0 {
		return nil, ErrElementNotFound
	}

	el := visible[rand.Intn(len(visible))]
	if err := b.helper.ScrollToElement(page, el); err != nil {
		b.logger.Debug().Err(err).Msg("scroll to element failed")
	}
	if err := b.helper.WaitForElementStable(el, 2*time.Second); err != nil {
		b.logger.Debug().Err(err).Msg("element did not stabilize")
	}

	return el, nil
}

// Close closes the browser.
func (b *Browser) Close() error {
	b.logger.Info().Msg("closing browser")
	return b.browser.Close()
}

// IsConnected checks if the browser is still connected.
func (b *Browser) IsConnected() bool {
	pages, err := b.browser.Pages()
	return err == nil && pages != nil
}

// TakeScreenshot captures a screenshot of the current page.
func (b *Browser) TakeScreenshot(page *rod.Page, filename string) error {
	data, err := page.Screenshot(true, nil)
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}

	b.logger.Debug().Str("filename", filename).Msg("screenshot saved")
	return nil
}
