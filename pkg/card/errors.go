package card

import "fmt"

// PreconditionViolation reports a call made while the controller is not in a
// state where the call has any meaning.
type PreconditionViolation struct {
	Op     string
	Reason string
}

func (e *PreconditionViolation) Error() string {
	return fmt.Sprintf("card: precondition violated in %s: %s", e.Op, e.Reason)
}

// Is matches any PreconditionViolation with the same Reason, so callers can
// test against the sentinels below with errors.Is.
func (e *PreconditionViolation) Is(target error) bool {
	t, ok := target.(*PreconditionViolation)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// ErrNotAttached is returned when a gesture arrives before any content host
// has been attached.
var ErrNotAttached = &PreconditionViolation{Reason: "no content attached"}

// ErrNilContent is returned by Attach when given a nil host.
var ErrNilContent = &PreconditionViolation{Reason: "content host is nil"}
