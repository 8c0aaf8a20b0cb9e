// Package rod implements crmfill.Form and crmfill.View over a live page in
// a Chrome browser driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/crmfill"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// Browser is the Chrome process behind the browse command. Each Open call
// gives a fresh tab holding one host form. Browser is safe for concurrent
// use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	headless bool
	bin      string
	mu       sync.Mutex
	closed   atomic.Bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithHeadless controls whether Chrome runs without a window.
// Defaults to true.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// WithBin sets the Chrome executable. By default rod finds a local Chrome
// or downloads one.
func WithBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// chromeFlags keep a bound widget page responsive while its window is in
// the background or hidden behind the terminal.
var chromeFlags = []flags.Flag{
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
	"disable-dev-shm-usage",
}

// NewBrowser starts the Chrome process that hosts the form pages of one
// command. Pages come and go through Open; the process lives until Close.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{headless: true}
	for _, opt := range opts {
		opt(b)
	}

	l := b.newLauncher()
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("attaching to chrome at %s: %w", controlURL, err)
	}

	b.browser, b.launcher = browser, l
	return b, nil
}

// newLauncher configures the Chrome process. Leakless kills Chrome if this
// process dies without calling Close.
func (b *Browser) newLauncher() *launcher.Launcher {
	l := launcher.New().Leakless(true).Headless(b.headless)
	for _, flag := range chromeFlags {
		l = l.Set(flag)
	}
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	return l
}

// Open navigates a new tab to url, waits for it to load and returns it as
// a Page addressing the widget elements by ids.
func (b *Browser) Open(ctx context.Context, url string, ids crmfill.ElementIDs) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()
	if browser == nil {
		return nil, crmfill.Errorf(crmfill.EINVALID, "browser is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if err := page.Context(ctx).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}

	return NewPage(page, ids), nil
}

// Close shuts Chrome down, closing every tab opened through it. Pages
// returned by Open are unusable afterwards. Close is safe to call multiple
// times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of Chrome, or 0 once the Browser is
// closed.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
