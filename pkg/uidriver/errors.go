package uidriver

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrWaitTimeout is returned by Poll when the condition never held.
	ErrWaitTimeout = errors.New("wait timed out")

	// ErrSessionClosed is returned by any operation on a closed Session.
	ErrSessionClosed = errors.New("session closed")

	// ErrInvalidLocator is returned when a Locator cannot be compiled.
	ErrInvalidLocator = errors.New("invalid locator")
)

// NavigationError reports that a URL could not be loaded.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate to %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ElementNotFoundError reports that no element matched a locator and
// condition before the timeout elapsed.
type ElementNotFoundError struct {
	Locator   Locator
	Condition Condition
	Timeout   time.Duration
	Err       error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("no %s element for %s within %v: %v", e.Condition, e.Locator, e.Timeout, e.Err)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// ElementNotInteractableError reports an element that exists but cannot
// take the requested action, e.g. a click on a disabled button.
type ElementNotInteractableError struct {
	Locator Locator
	Reason  string
	Err     error
}

func (e *ElementNotInteractableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("element %s not interactable: %s", e.Locator, e.Reason)
	}
	return fmt.Sprintf("element %s not interactable: %s: %v", e.Locator, e.Reason, e.Err)
}

func (e *ElementNotInteractableError) Unwrap() error { return e.Err }

// AssertionFailure reports expected content that never showed up in the
// rendered document.
type AssertionFailure struct {
	Description string
	Want        []string
	Err         error
}

func (e *AssertionFailure) Error() string {
	msg := "assertion failed: " + e.Description
	if len(e.Want) > 0 {
		msg += fmt.Sprintf(" (want any of %q)", e.Want)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AssertionFailure) Unwrap() error { return e.Err }
