
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

const remediation = `Chrome/Chromium is required. To fix:
  1. Install Google Chrome or Chromium (e.g. apt install chromium)
  2. Or point browser.bin (SITECLASS_BROWSER_BIN) at an existing executable
  3. Make sure the browser version can run headless on this host`

// BrowserConfig is the fixed launch configuration for every session.
type BrowserConfig struct {
	Bin          string
	WindowWidth  int
	WindowHeight int
	UserAgent    string
}

// DefaultUserAgent is the client identification sent by every session.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		WindowWidth:  1920,
		WindowHeight: 1080,
		UserAgent:    DefaultUserAgent,
	}
}

// CheckBrowser resolves the browser executable. An explicit bin must exist;
// otherwise the usual install locations are searched. Failures wrap ErrSetup.
func CheckBrowser(bin string) (string, error) {
	if bin != "" {
		if _, err := os.Stat(bin); err != nil {
			return "", fmt.Errorf("%w: browser binary %s: %v\n%s", ErrSetup, bin, err, remediation)
		}
		return bin, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: no Chrome or Chromium executable found\n%s", ErrSetup, remediation)
}

// RodLauncher starts one headless browser process per session.
type RodLauncher struct {
	cfg BrowserConfig
	bin string
}

// NewRodLauncher verifies the browser is installed so a missing prerequisite
// fails at startup rather than on the first site.
func NewRodLauncher(cfg BrowserConfig) (*RodLauncher, error) {
	bin, err := CheckBrowser(cfg.Bin)
	if err != nil {
		return nil, err
	}
	return &RodLauncher{cfg: cfg, bin: bin}, nil
}

func (l *RodLauncher) Open(ctx context.Context) (Session, error) {
	ln := launcher.New().
		Context(ctx).
		Bin(l.bin).
		Headless(true).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", fmt.Sprintf("%d,%d", l.cfg.WindowWidth, l.cfg.WindowHeight))
	if l.cfg.UserAgent != "" {
		ln = ln.Set("user-agent", l.cfg.UserAgent)
	}

	controlURL, err := ln.Launch()
	if err != nil {
		// the process may never have started, so Cleanup could block on its exit
		ln.Kill()
		removeProfile(ln)
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		ln.Kill()
		ln.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		ln.Kill()
		ln.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &rodSession{launcher: ln, browser: browser, page: page}, nil
}

// removeProfile deletes the launcher's user data directory.
func removeProfile(ln *launcher.Launcher) {
	if dir := ln.Get(flags.UserDataDir); dir != "" {
		_ = os.RemoveAll(dir)
	}
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	return sessionErr(s.page.Context(ctx).Navigate(url))
}

func (s *rodSession) WaitReady(ctx context.Context, selector string) error {
	_, err := s.page.Context(ctx).Element(selector)
	return sessionErr(err)
}

func (s *rodSession) ScrollHeight(ctx context.Context) (int, error) {
	res, err := s.page.Context(ctx).Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, sessionErr(err)
	}
	return res.Value.Int(), nil
}

func (s *rodSession) ScrollToBottom(ctx context.Context) error {
	_, err := s.page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return sessionErr(err)
}

func (s *rodSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	return html, sessionErr(err)
}

// Close shuts the browser down and removes its profile directory.
func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}

// sessionErr marks errors caused by a lost browser connection as ErrSession.
func sessionErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, syscall.ECONNRESET) {
		return fmt.Errorf("%w: %w", ErrSession, err)
	}
	return err
}
