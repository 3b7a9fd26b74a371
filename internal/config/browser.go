package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// BrowserConfig holds configuration for driving a real browser
type BrowserConfig struct {
	Engine         string
	Headless       bool
	SlowMo         float64
	DefaultTimeout float64
	BaseURL        string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Engine:         strings.ToLower(valueOr(getenv("BROWSER"), BrowserChromium)),
		Headless:       true,
		DefaultTimeout: 5000,
		BaseURL:        strings.TrimRight(valueOr(getenv("BASE_URL"), "http://localhost:8080"), "/"),
	}

	switch config.Engine {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit: got %q", config.Engine)
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HEADLESS: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("SLOW_MO_MS"); v != "" {
		slowMo, err := strconv.ParseFloat(v, 64)
		if err != nil || slowMo < 0 {
			return nil, fmt.Errorf("invalid SLOW_MO_MS %q", v)
		}
		config.SlowMo = slowMo
	}

	if v := getenv("DEFAULT_TIMEOUT_MS"); v != "" {
		timeout, err := strconv.ParseFloat(v, 64)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid DEFAULT_TIMEOUT_MS %q", v)
		}
		config.DefaultTimeout = timeout
	}

	return config, nil
}
