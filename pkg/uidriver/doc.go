// Package uidriver drives a single Chrome instance through scripted UI
// interactions for end-to-end testing of a single-page web application.
//
// A Session owns one browser process and one page. Every element lookup is an
// explicit bounded poll, so callers never sleep for a fixed time while the
// application renders asynchronously:
//
//	s, err := uidriver.Launch(ctx, uidriver.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Open("http://localhost:5173/login"); err != nil {
//	    return err
//	}
//	user, err := s.Find(uidriver.Name("username"), uidriver.Visible, 10*time.Second)
//	if err != nil {
//	    return err
//	}
//	if err := user.SendKeys("testuser"); err != nil {
//	    return err
//	}
//
// # Locators
//
// A Locator is a tagged variant (strategy plus value). Name, CSS, XPath and
// Text build the four strategies; With, Containing and Within refine them.
// Every locator except a pure CSS one compiles to a single XPath expression.
//
// # Waits
//
// Each Session has an implicit wait that acts as a floor for every lookup
// timeout, and a poll interval shared by Find and WaitUntil.
//
// # Errors
//
// Failures are reported as *NavigationError, *ElementNotFoundError,
// *ElementNotInteractableError or *AssertionFailure. Use errors.As to inspect
// them.
package uidriver
