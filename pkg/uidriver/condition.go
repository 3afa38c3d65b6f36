package uidriver

import "fmt"

// Condition is the state an element must reach before Find returns it.
type Condition int

const (
	// Present requires the element to be attached to the DOM.
	Present Condition = iota
	// Visible requires the element to be rendered with a non-empty box.
	Visible
	// Clickable requires the element to be visible and not disabled.
	Clickable
)

func (c Condition) String() string {
	switch c {
	case Present:
		return "present"
	case Visible:
		return "visible"
	case Clickable:
		return "clickable"
	default:
		return fmt.Sprintf("condition(%d)", int(c))
	}
}
