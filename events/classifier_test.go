package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_CardinalDirections(t *testing.T) {
	tests := []struct {
		name        string
		dx, dy      float64
		fingerCount int
		expected    ActionEvent
	}{
		{"three-finger right", 10, 0, 3, ThreeFingerSwipeRight},
		{"three-finger left", -10, 0, 3, ThreeFingerSwipeLeft},
		{"three-finger up", 0, -10, 3, ThreeFingerSwipeUp},
		{"three-finger down", 0, 10, 3, ThreeFingerSwipeDown},
		{"four-finger right", 10, 0, 4, FourFingerSwipeRight},
		{"four-finger left", -10, 0, 4, FourFingerSwipeLeft},
		{"four-finger up", 0, -10, 4, FourFingerSwipeUp},
		{"four-finger down", 0, 10, 4, FourFingerSwipeDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := Classify(tt.dx, tt.dy, tt.fingerCount, 5.0, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, event)
		})
	}
}

func TestClassify_Diagonals(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected ActionEvent
	}{
		{"left-up", -10, -10, ThreeFingerSwipeLeftUp},
		{"right-up", 10, -10, ThreeFingerSwipeRightUp},
		{"right-down", 10, 10, ThreeFingerSwipeRightDown},
		{"left-down", -10, 10, ThreeFingerSwipeLeftDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := Classify(tt.dx, tt.dy, 3, 5.0, false, false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, event)
		})
	}
}

func TestClassify_UnsupportedFingerCount(t *testing.T) {
	for _, fingerCount := range []int{0, 1, 2, 5, 6, -1} {
		_, err := Classify(10, 0, fingerCount, 5.0, false, false)
		require.Error(t, err)

		var fcErr *UnsupportedFingerCountError
		require.ErrorAs(t, err, &fcErr)
		assert.Equal(t, fingerCount, fcErr.FingerCount)
	}
}

func TestClassify_BelowThreshold(t *testing.T) {
	// magnitude 4.99 < 5.0, regardless of finger count
	for _, fingerCount := range []int{3, 4} {
		_, err := Classify(4.99, 0, fingerCount, 5.0, false, false)
		require.Error(t, err)

		var thErr *BelowThresholdError
		require.ErrorAs(t, err, &thErr)
		assert.Equal(t, 5.0, thErr.Threshold)
	}

	// exactly at threshold passes
	event, err := Classify(5.0, 0, 3, 5.0, false, false)
	require.NoError(t, err)
	assert.Equal(t, ThreeFingerSwipeRight, event)
}

func TestClassify_OctantWraparound(t *testing.T) {
	// A vector just below the left direction rounds to octant 8, which must
	// wrap to octant 0 (left) rather than fall out of range.
	event, err := Classify(-10, 0.1, 3, 5.0, false, false)
	require.NoError(t, err)
	assert.Equal(t, ThreeFingerSwipeLeft, event)
}

func TestClassify_InvertAxes(t *testing.T) {
	event, err := Classify(10, 0, 3, 5.0, false, false)
	require.NoError(t, err)
	assert.Equal(t, ThreeFingerSwipeRight, event)

	event, err = Classify(10, 0, 3, 5.0, true, false)
	require.NoError(t, err)
	assert.Equal(t, ThreeFingerSwipeLeft, event)

	event, err = Classify(0, 10, 3, 5.0, false, true)
	require.NoError(t, err)
	assert.Equal(t, ThreeFingerSwipeUp, event)
}

func TestClassify_IsPure(t *testing.T) {
	first, err := Classify(7.3, -2.1, 4, 5.0, true, false)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Classify(7.3, -2.1, 4, 5.0, true, false)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
