package uidriver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Session is one running Chrome instance and its active page.
// A Session is owned by a single goroutine; only Close may be called
// concurrently with other methods.
type Session struct {
	cfg Config
	log *zap.Logger
	ctx context.Context

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	pid int

	// waitDeadline bounds every CDP call made while WaitUntil runs.
	waitDeadline time.Time

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Launch starts Chrome and opens a blank page. ctx bounds the whole session:
// cancelling it aborts any blocking operation. Always Close the session,
// typically via defer or t.Cleanup, to avoid orphaned Chrome processes.
func Launch(ctx context.Context, cfg Config) (*Session, error) {
	log := cfg.logger()

	l := newLauncher(ctx, cfg)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		discard(l)
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		discard(l)
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.Debug("browser session started",
		zap.String("control_url", controlURL),
		zap.Int("pid", l.PID()),
		zap.Bool("headless", cfg.Headless))

	return &Session{
		cfg:      cfg,
		log:      log,
		ctx:      ctx,
		launcher: l,
		browser:  browser,
		page:     page,
		pid:      l.PID(),
	}, nil
}

func newLauncher(ctx context.Context, cfg Config) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if cfg.NoSandbox {
		l = l.Set("no-sandbox")
	}
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}
	return l
}

// discard kills the browser process and removes its profile directory.
func discard(l *launcher.Launcher) {
	l.Kill()
	l.Cleanup()
}

// PID returns the process id of the browser, or 0 if it never started.
func (s *Session) PID() int { return s.pid }

// callContext bounds one CDP round trip. The bound is the action timeout,
// cut short by deadline and by an enclosing WaitUntil, but never shorter
// than one poll interval so a check at the deadline still gets an answer.
func (s *Session) callContext(deadline time.Time) (context.Context, context.CancelFunc) {
	now := time.Now()
	d := now.Add(s.cfg.actionTimeout())
	for _, limit := range []time.Time{deadline, s.waitDeadline} {
		if !limit.IsZero() && limit.Before(d) {
			d = limit
		}
	}
	if floor := now.Add(s.cfg.pollInterval()); d.Before(floor) {
		d = floor
	}
	return context.WithDeadline(s.ctx, d)
}

func (s *Session) alive() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return nil
}

// Open navigates to an absolute URL and waits for the load event.
func (s *Session) Open(rawURL string) error {
	if err := s.alive(); err != nil {
		return &NavigationError{URL: rawURL, Err: err}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return &NavigationError{URL: rawURL, Err: err}
	}
	if !u.IsAbs() {
		return &NavigationError{URL: rawURL, Err: errors.New("url is not absolute")}
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.navigationTimeout())
	defer cancel()

	s.log.Debug("open", zap.String("url", rawURL))
	page := s.page.Context(ctx)
	if err := page.Navigate(rawURL); err != nil {
		return &NavigationError{URL: rawURL, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return &NavigationError{URL: rawURL, Err: err}
	}
	return nil
}

// lookupTimeout applies the implicit wait floor.
func (s *Session) lookupTimeout(timeout time.Duration) time.Duration {
	if floor := s.cfg.implicitWait(); timeout < floor {
		return floor
	}
	return timeout
}

// Find polls until an element matching loc satisfies cond. The effective
// timeout is never below the session's implicit wait.
func (s *Session) Find(loc Locator, cond Condition, timeout time.Duration) (Element, error) {
	timeout = s.lookupTimeout(timeout)
	if err := s.alive(); err != nil {
		return nil, &ElementNotFoundError{Locator: loc, Condition: cond, Timeout: timeout, Err: err}
	}
	q, err := loc.compile()
	if err != nil {
		return nil, &ElementNotFoundError{Locator: loc, Condition: cond, Timeout: timeout, Err: err}
	}

	start := time.Now()
	deadline := start.Add(timeout)
	var (
		found   *rod.Element
		lastErr error
	)
	err = Poll(s.ctx, s.cfg.pollInterval(), timeout, func() (bool, error) {
		if err := s.alive(); err != nil {
			return false, err
		}
		ctx, cancel := s.callContext(deadline)
		defer cancel()
		els, err := s.query(ctx, q)
		if err != nil {
			// The document may be mid-render; try again next tick.
			lastErr = err
			return false, nil
		}
		for _, el := range els {
			ok, err := satisfies(el, cond)
			if err != nil {
				lastErr = err
				continue
			}
			if ok {
				found = el
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, &ElementNotFoundError{Locator: loc, Condition: cond, Timeout: timeout, Err: errors.Join(err, lastErr)}
	}

	s.log.Debug("found element",
		zap.Stringer("locator", loc),
		zap.Stringer("condition", cond),
		zap.Duration("elapsed", time.Since(start)))
	return &element{s: s, el: found, loc: loc}, nil
}

// query runs q without waiting. Matched elements inherit ctx.
func (s *Session) query(ctx context.Context, q query) (rod.Elements, error) {
	page := s.page.Context(ctx)
	if q.css {
		return page.Elements(q.expr)
	}
	return page.ElementsX(q.expr)
}

func satisfies(el *rod.Element, cond Condition) (bool, error) {
	switch cond {
	case Present:
		return true, nil
	case Visible:
		return el.Visible()
	case Clickable:
		visible, err := el.Visible()
		if err != nil || !visible {
			return false, err
		}
		disabled, err := isDisabled(el)
		return !disabled, err
	default:
		return false, fmt.Errorf("unknown condition %d", int(cond))
	}
}

func isDisabled(el *rod.Element) (bool, error) {
	v, err := el.Property("disabled")
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// WaitUntil polls pred at the session poll interval until it returns true
// or timeout elapses. Errors from pred are treated as transient and retried;
// the last one is reported if the wait fails.
func (s *Session) WaitUntil(description string, timeout time.Duration, pred func() (bool, error)) error {
	if err := s.alive(); err != nil {
		return &AssertionFailure{Description: description, Err: err}
	}

	start := time.Now()
	prev := s.waitDeadline
	if d := start.Add(timeout); prev.IsZero() || d.Before(prev) {
		s.waitDeadline = d
	}
	defer func() { s.waitDeadline = prev }()

	var lastErr error
	err := Poll(s.ctx, s.cfg.pollInterval(), timeout, func() (bool, error) {
		if err := s.alive(); err != nil {
			return false, err
		}
		ok, err := pred()
		if err != nil {
			lastErr = err
			return false, nil
		}
		return ok, nil
	})
	if err != nil {
		return &AssertionFailure{Description: description, Err: errors.Join(err, lastErr)}
	}

	s.log.Debug("condition met",
		zap.String("description", description),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// WaitForText waits until the rendered text contains any of texts.
func (s *Session) WaitForText(timeout time.Duration, texts ...string) error {
	err := s.WaitUntil("page text", timeout, func() (bool, error) {
		return s.PageContains(texts...)
	})
	return withWant(err, texts)
}

// WaitForTitle waits until the document title contains any of texts.
func (s *Session) WaitForTitle(timeout time.Duration, texts ...string) error {
	err := s.WaitUntil("page title", timeout, func() (bool, error) {
		return s.TitleContains(texts...)
	})
	return withWant(err, texts)
}

func withWant(err error, want []string) error {
	var af *AssertionFailure
	if errors.As(err, &af) {
		af.Want = want
	}
	return err
}

// Text returns the rendered text of the document body: what a user sees,
// excluding markup, script sources and the title.
func (s *Session) Text() (string, error) {
	if err := s.alive(); err != nil {
		return "", err
	}
	ctx, cancel := s.callContext(time.Time{})
	defer cancel()
	res, err := s.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ''`)
	if err != nil {
		return "", fmt.Errorf("read page text: %w", err)
	}
	return res.Value.Str(), nil
}

// Source returns the serialised DOM of the current page.
func (s *Session) Source() (string, error) {
	if err := s.alive(); err != nil {
		return "", err
	}
	ctx, cancel := s.callContext(time.Time{})
	defer cancel()
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return html, nil
}

// Title returns the current document title.
func (s *Session) Title() (string, error) {
	if err := s.alive(); err != nil {
		return "", err
	}
	ctx, cancel := s.callContext(time.Time{})
	defer cancel()
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}
	return info.Title, nil
}

// URL returns the URL of the current page.
func (s *Session) URL() (string, error) {
	if err := s.alive(); err != nil {
		return "", err
	}
	ctx, cancel := s.callContext(time.Time{})
	defer cancel()
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}
	return info.URL, nil
}

// PageContains reports whether the rendered text contains any of texts.
func (s *Session) PageContains(texts ...string) (bool, error) {
	body, err := s.Text()
	if err != nil {
		return false, err
	}
	_, ok := ContainsAny(body, texts...)
	return ok, nil
}

// TitleContains reports whether the title contains any of texts.
func (s *Session) TitleContains(texts ...string) (bool, error) {
	title, err := s.Title()
	if err != nil {
		return false, err
	}
	_, ok := ContainsAny(title, texts...)
	return ok, nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// Close releases the browser. Only the first call does any work; later
// calls return the same result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)

		var errs []error
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		if s.launcher != nil {
			// Kill covers a browser that ignored Close or a cancelled ctx.
			discard(s.launcher)
		}
		s.closeErr = errors.Join(errs...)
		s.log.Debug("browser session closed", zap.Error(s.closeErr))
	})
	return s.closeErr
}
