package uidriver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Element is an opaque reference to a DOM element returned by Find.
// References go stale when the application re-renders; look the element up
// again rather than caching it across actions that change the page.
type Element interface {
	// Locator returns the locator the element was found with.
	Locator() Locator
	// SendKeys types text into an input-capable element.
	SendKeys(text string) error
	// Clear empties an input or textarea.
	Clear() error
	// Click dispatches a left click. Disabled elements are rejected with
	// *ElementNotInteractableError.
	Click() error
	Enabled() (bool, error)
	Visible() (bool, error)
	Text() (string, error)
}

type element struct {
	s   *Session
	el  *rod.Element
	loc Locator
}

func (e *element) Locator() Locator { return e.loc }

func (e *element) action() (*rod.Element, context.CancelFunc, error) {
	if err := e.s.alive(); err != nil {
		return nil, nil, err
	}
	ctx, cancel := e.s.callContext(time.Time{})
	return e.el.Context(ctx), cancel, nil
}

func (e *element) SendKeys(text string) error {
	el, cancel, err := e.action()
	if err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "send keys", Err: err}
	}
	defer cancel()

	e.s.log.Debug("send keys", zap.Stringer("locator", e.loc), zap.Int("runes", len([]rune(text))))
	if err := el.Input(text); err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "send keys", Err: err}
	}
	return nil
}

func (e *element) Clear() error {
	el, cancel, err := e.action()
	if err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "clear", Err: err}
	}
	defer cancel()

	// Select-and-delete goes through the same input events a user produces,
	// which keeps framework-controlled inputs in sync.
	if err := el.SelectAllText(); err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "clear", Err: err}
	}
	if err := el.Type(input.Backspace); err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "clear", Err: err}
	}
	return nil
}

func (e *element) Click() error {
	el, cancel, err := e.action()
	if err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "click", Err: err}
	}
	defer cancel()

	disabled, err := isDisabled(el)
	if err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "click", Err: err}
	}
	if disabled {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "element is disabled"}
	}

	e.s.log.Debug("click", zap.Stringer("locator", e.loc))
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return &ElementNotInteractableError{Locator: e.loc, Reason: "click", Err: err}
	}
	return nil
}

func (e *element) Enabled() (bool, error) {
	el, cancel, err := e.action()
	if err != nil {
		return false, err
	}
	defer cancel()
	disabled, err := isDisabled(el)
	if err != nil {
		return false, fmt.Errorf("read disabled state of %s: %w", e.loc, err)
	}
	return !disabled, nil
}

func (e *element) Visible() (bool, error) {
	el, cancel, err := e.action()
	if err != nil {
		return false, err
	}
	defer cancel()
	visible, err := el.Visible()
	if err != nil {
		return false, fmt.Errorf("read visibility of %s: %w", e.loc, err)
	}
	return visible, nil
}

func (e *element) Text() (string, error) {
	el, cancel, err := e.action()
	if err != nil {
		return "", err
	}
	defer cancel()
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("read text of %s: %w", e.loc, err)
	}
	return text, nil
}
