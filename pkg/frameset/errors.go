package frameset

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by Frame when the index does not
	// address a position in the ordered frames.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrValueNotFound is returned by Index when the frame is not a member.
	ErrValueNotFound = errors.New("frame not found")
	// ErrEmptyFrameSet is returned by Start and End on the empty set.
	ErrEmptyFrameSet = errors.New("empty frame set")
)

// MalformedRangeError reports a clause of a frame range string that failed
// to parse, together with the reason. Construction aborts on the first bad
// clause; there is no partially built FrameSet.
type MalformedRangeError struct {
	Clause string
	Reason string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("could not parse %q: %s", e.Clause, e.Reason)
}

// IsMalformedRange reports whether err is a MalformedRangeError.
func IsMalformedRange(err error) bool {
	var m *MalformedRangeError
	return errors.As(err, &m)
}
