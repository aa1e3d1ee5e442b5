// Package browser owns the single Chrome session a collection run uses.
//
// One browser, one page, strictly sequential navigation: pacing toward
// the source site is deliberately human-like, so nothing here is
// concurrent. The session pins locale, timezone and user agent so that
// bilingual text and relative dates render deterministically.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// ErrPageUnavailable means a navigation failed even after degrading the
// wait strategy. The caller should skip the page or item, not abort the
// run.
var ErrPageUnavailable = errors.New("browser: page unavailable")

// Config configures the Session.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local headless Chrome via launcher.
	RemoteURL string

	UserAgent string
	Locale    string
	Timezone  string

	ViewportWidth  int
	ViewportHeight int

	// NavTimeout bounds one navigation plus its strongest wait.
	NavTimeout time.Duration
	// ReadTimeout bounds page content reads (HTML, visible text).
	ReadTimeout time.Duration
	// StableWindow is how long the DOM must stay quiet to count as stable.
	StableWindow time.Duration

	// DelayMin/DelayMax bound the randomized pause between navigations.
	DelayMin time.Duration
	DelayMax time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Locale == "" {
		c.Locale = "ru-RU"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Moscow"
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1920
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 1080
	}
	if c.NavTimeout <= 0 {
		c.NavTimeout = 60 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.StableWindow <= 0 {
		c.StableWindow = time.Second
	}
	if c.DelayMin <= 0 {
		c.DelayMin = 2 * time.Second
	}
	if c.DelayMax < c.DelayMin {
		c.DelayMax = c.DelayMin + 3*time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Session is one browser page used for the whole run.
type Session struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher
	page    *rod.Page
}

// New creates a Session. Call Open to acquire the browser.
func New(cfg Config) *Session {
	cfg.defaults()
	return &Session{cfg: cfg}
}

// Open launches Chrome (or connects to a remote instance) and prepares
// the single stealth page. Failure here is the run-fatal class: without
// a browser there is no run.
func (s *Session) Open(ctx context.Context) error {
	log := s.cfg.Logger

	var wsURL string
	if s.cfg.RemoteURL != "" {
		wsURL = s.cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		s.lnch = l
		log.Info("browser: launched local chrome")
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}
	s.browser = b

	page, err := stealth.Page(b)
	if err != nil {
		return fmt.Errorf("browser: create page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      s.cfg.UserAgent,
		AcceptLanguage: s.cfg.Locale,
	}); err != nil {
		return fmt.Errorf("browser: set user agent: %w", err)
	}
	if err := (proto.EmulationSetLocaleOverride{Locale: s.cfg.Locale}).Call(page); err != nil {
		log.Warn("browser: locale override failed", "error", err)
	}
	if err := (proto.EmulationSetTimezoneOverride{TimezoneID: s.cfg.Timezone}).Call(page); err != nil {
		log.Warn("browser: timezone override failed", "error", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.ViewportWidth,
		Height:            s.cfg.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		log.Warn("browser: viewport override failed", "error", err)
	}

	s.page = page
	return nil
}

// Close shuts down the page and Chrome.
func (s *Session) Close() error {
	if s.page != nil {
		s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
	return nil
}

// Navigate loads url and waits for the page to settle. The strongest
// wait (DOM stable) degrades once to a plain load wait on timeout; a
// timeout at the weaker wait surfaces as ErrPageUnavailable so the
// caller can skip this page instead of aborting the run.
func (s *Session) Navigate(ctx context.Context, url string) error {
	log := s.cfg.Logger
	p := s.page.Context(ctx)

	if err := p.Timeout(s.cfg.NavTimeout).Navigate(url); err != nil {
		log.Warn("browser: navigate failed", "url", url, "error", err)
		return fmt.Errorf("%w: %s", ErrPageUnavailable, url)
	}

	if err := p.Timeout(s.cfg.NavTimeout).WaitStable(s.cfg.StableWindow); err != nil {
		log.Warn("browser: stable wait timed out, degrading to load wait",
			"url", url, "error", err)
		if err := p.Timeout(s.cfg.NavTimeout).WaitLoad(); err != nil {
			log.Warn("browser: load wait timed out", "url", url, "error", err)
			return fmt.Errorf("%w: %s", ErrPageUnavailable, url)
		}
	}
	return nil
}

// HTML returns the current page markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).Timeout(s.cfg.ReadTimeout).HTML()
	if err != nil {
		return "", fmt.Errorf("browser: page html: %w", err)
	}
	return html, nil
}

// VisibleText returns the rendered text of the page body.
func (s *Session) VisibleText(ctx context.Context) (string, error) {
	p := s.page.Context(ctx).Timeout(s.cfg.ReadTimeout)
	el, err := p.Element("body")
	if err != nil {
		return "", fmt.Errorf("browser: body element: %w", err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("browser: body text: %w", err)
	}
	return text, nil
}

// Pace sleeps a randomized interval between navigations to avoid burst
// patterns toward the source site.
func (s *Session) Pace(ctx context.Context) error {
	span := s.cfg.DelayMax - s.cfg.DelayMin
	d := s.cfg.DelayMin
	if span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
