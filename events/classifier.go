package events

import "math"

// Classify buckets a finished swipe into one of the sixteen action events.
//
// The displacement vector is classified into one of eight 45-degree octants:
// the angle of (dx, dy) in screen coordinates (up is negative dy) is
// normalized into [0, 1) turns starting at "left" and rounded to the nearest
// octant, with octant 8 wrapping back to 0. Inversion flags negate the
// corresponding axis before bucketing.
//
// Classify is a pure function: it fails with UnsupportedFingerCountError for
// finger counts outside {3, 4} and with BelowThresholdError when the vector
// magnitude is under threshold.
func Classify(dx, dy float64, fingerCount int, threshold float64, invertX, invertY bool) (ActionEvent, error) {
	if fingerCount != 3 && fingerCount != 4 {
		return 0, &UnsupportedFingerCountError{FingerCount: fingerCount}
	}

	if math.Hypot(dx, dy) < threshold {
		return 0, &BelowThresholdError{Threshold: threshold}
	}

	if invertX {
		dx = -dx
	}
	if invertY {
		dy = -dy
	}

	// Angle in turns, with 0 pointing left and increasing counterclockwise
	// through up (screen coordinates, so dy grows downward).
	angle := math.Atan2(-dy, -dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	octant := int(math.Round(angle / (2 * math.Pi) * 8))
	if octant == 8 {
		octant = 0
	}

	event := ActionEvent(octant)
	if fingerCount == 4 {
		event += FourFingerSwipeLeft
	}

	return event, nil
}
