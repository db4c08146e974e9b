package events

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSwipeSubEvent is returned by the accumulator for swipe
// sub-events it does not recognize. The dispatcher discards these.
var ErrUnsupportedSwipeSubEvent = errors.New("unsupported swipe sub-event")

// UnsupportedFingerCountError is returned by the classifier when a swipe
// ends with a finger count other than 3 or 4.
type UnsupportedFingerCountError struct {
	FingerCount int
}

func (e *UnsupportedFingerCountError) Error() string {
	return fmt.Sprintf("unsupported finger count: %d", e.FingerCount)
}

// BelowThresholdError is returned by the classifier when the accumulated
// displacement is too small to count as a swipe.
type BelowThresholdError struct {
	Threshold float64
}

func (e *BelowThresholdError) Error() string {
	return fmt.Sprintf("displacement below threshold (%v)", e.Threshold)
}
