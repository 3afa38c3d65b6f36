package scenario

import "fmt"

// Stage is how far a Runner has progressed through its session.
type Stage int

const (
	Created Stage = iota
	NavigatedToLogin
	Authenticated
	Closed
)

func (s Stage) String() string {
	switch s {
	case Created:
		return "created"
	case NavigatedToLogin:
		return "navigated-to-login"
	case Authenticated:
		return "authenticated"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}
