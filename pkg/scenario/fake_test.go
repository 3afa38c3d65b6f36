package scenario

import (
	"errors"
	"time"

	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// fakeDriver is an in-memory page: a set of elements keyed by locator,
// rendered text and a title.
type fakeDriver struct {
	opened   []string
	openErr  error
	elements map[string]*fakeElement
	text     string
	title    string

	// waitPolls bounds how many times WaitUntil evaluates its predicate.
	waitPolls int
	closes    int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{elements: make(map[string]*fakeElement), waitPolls: 3}
}

func (d *fakeDriver) add(loc uidriver.Locator) *fakeElement {
	el := &fakeElement{loc: loc, enabled: func() bool { return true }}
	d.elements[loc.String()] = el
	return el
}

func (d *fakeDriver) Open(url string) error {
	if d.openErr != nil {
		return &uidriver.NavigationError{URL: url, Err: d.openErr}
	}
	d.opened = append(d.opened, url)
	return nil
}

func (d *fakeDriver) Find(loc uidriver.Locator, cond uidriver.Condition, timeout time.Duration) (uidriver.Element, error) {
	el, ok := d.elements[loc.String()]
	if !ok || (cond == uidriver.Clickable && !el.enabled()) {
		return nil, &uidriver.ElementNotFoundError{Locator: loc, Condition: cond, Timeout: timeout, Err: uidriver.ErrWaitTimeout}
	}
	return el, nil
}

func (d *fakeDriver) WaitUntil(description string, timeout time.Duration, pred func() (bool, error)) error {
	var lastErr error
	for i := 0; i < d.waitPolls; i++ {
		ok, err := pred()
		if err == nil && ok {
			return nil
		}
		lastErr = err
	}
	return &uidriver.AssertionFailure{Description: description, Err: errors.Join(uidriver.ErrWaitTimeout, lastErr)}
}

func (d *fakeDriver) PageContains(texts ...string) (bool, error) {
	_, ok := uidriver.ContainsAny(d.text, texts...)
	return ok, nil
}

func (d *fakeDriver) TitleContains(texts ...string) (bool, error) {
	_, ok := uidriver.ContainsAny(d.title, texts...)
	return ok, nil
}

func (d *fakeDriver) Close() error {
	d.closes++
	return nil
}

type fakeElement struct {
	loc     uidriver.Locator
	value   string
	clears  int
	clicks  int
	enabled func() bool
	onClick func()
}

func (e *fakeElement) Locator() uidriver.Locator { return e.loc }

func (e *fakeElement) SendKeys(text string) error {
	e.value += text
	return nil
}

func (e *fakeElement) Clear() error {
	e.clears++
	e.value = ""
	return nil
}

func (e *fakeElement) Click() error {
	if !e.enabled() {
		return &uidriver.ElementNotInteractableError{Locator: e.loc, Reason: "element is disabled"}
	}
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Enabled() (bool, error) { return e.enabled(), nil }
func (e *fakeElement) Visible() (bool, error) { return true, nil }
func (e *fakeElement) Text() (string, error)  { return e.value, nil }

// fakeApp wires a fakeDriver to behave like the application: the login
// form signs in, the campaign dialog gates its save button and appends the
// saved campaign to the page.
type fakeApp struct {
	d        *fakeDriver
	username *fakeElement
	password *fakeElement
	submit   *fakeElement
	nav      *fakeElement
	newBtn   *fakeElement
	name     *fakeElement
	desc     *fakeElement
	save     *fakeElement
}

func newFakeApp(welcome string) *fakeApp {
	d := newFakeDriver()
	d.title = "Master Help"
	a := &fakeApp{
		d:        d,
		username: d.add(UsernameInput),
		password: d.add(PasswordInput),
		submit:   d.add(SubmitButton),
		nav:      d.add(CampaignsNavItem),
		newBtn:   d.add(NewCampaignButton),
		name:     d.add(DialogNameInput),
		desc:     d.add(DialogDescriptionArea),
		save:     d.add(SaveButton),
	}
	a.submit.onClick = func() {
		if a.username.value == "testuser" && a.password.value == "testpass" {
			d.text = welcome + ", testuser"
		}
	}
	a.save.enabled = func() bool {
		return a.name.value != "" && a.desc.value != ""
	}
	a.save.onClick = func() {
		d.text += "\n" + a.name.value
	}
	return a
}
