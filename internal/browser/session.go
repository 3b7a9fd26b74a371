// Package browser launches the playwright browser that page objects drive.
package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/config"
)

// Session is a running browser with one isolated context. Pages opened from
// it share cookies, the base URL and the default timeout.
type Session struct {
	Browser playwright.Browser
	Context playwright.BrowserContext
	BaseURL string

	timeout float64
	log     logrus.FieldLogger
	stop    func() error
}

// Launch starts playwright and the configured browser engine. The caller must
// Close the session.
func Launch(cfg *config.BrowserConfig, logger logrus.FieldLogger) (*Session, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("browser", cfg.Engine)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := engine(pw, cfg.Engine)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(cfg.SlowMo)
	}

	b, err := browserType.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Engine, err)
	}

	s := &Session{
		Browser: b,
		BaseURL: cfg.BaseURL,
		timeout: cfg.DefaultTimeout,
		log:     log,
		stop:    pw.Stop,
	}

	if s.Context, err = s.NewContext(); err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"headless": cfg.Headless,
		"base_url": cfg.BaseURL,
	}).Debug("Browser launched")

	return s, nil
}

// NewContext opens another isolated context with the session's base URL and
// default timeout. The caller closes it; Close only closes the session's own
// Context.
func (s *Session) NewContext() (playwright.BrowserContext, error) {
	ctx, err := s.Browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(s.BaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	if s.timeout > 0 {
		ctx.SetDefaultTimeout(s.timeout)
	}
	return ctx, nil
}

// NewPage opens a tab in the session's context
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.Context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

// Close shuts down the context, the browser and playwright, in that order.
// Every step runs even when an earlier one fails.
func (s *Session) Close() error {
	var errs []error
	if s.Context != nil {
		if err := s.Context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if s.Browser != nil {
		if err := s.Browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if s.stop != nil {
		if err := s.stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil && s.log != nil {
		s.log.WithError(err).Warn("Browser session did not close cleanly")
	}
	return err
}

func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case config.BrowserChromium, "":
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	}
	return nil, fmt.Errorf("unsupported browser engine %q", name)
}
