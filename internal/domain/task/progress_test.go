package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

func TestValidatePercentage(t *testing.T) {
	assert.NoError(t, ValidatePercentage(0))
	assert.NoError(t, ValidatePercentage(100))
	assert.True(t, httperr.Is(ValidatePercentage(-1), "invalid_percentage"))
	assert.True(t, httperr.Is(ValidatePercentage(101), "invalid_percentage"))
}

func TestCheckMonotonic(t *testing.T) {
	sixty := 60

	assert.NoError(t, CheckMonotonic(nil, 0))
	assert.NoError(t, CheckMonotonic(&sixty, 60))
	assert.NoError(t, CheckMonotonic(&sixty, 80))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(CheckMonotonic(&sixty, 40)))
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current Status
		pct     int
		want    Status
		changed bool
	}{
		{StatusPending, 0, StatusPending, false},
		{StatusPending, 30, StatusInProgress, true},
		{StatusPending, 100, StatusCompleted, true},
		{StatusInProgress, 50, StatusInProgress, false},
		{StatusInProgress, 100, StatusCompleted, true},
		{StatusCompleted, 100, StatusCompleted, false},
		{StatusCompleted, 40, StatusCompleted, false},
	}

	for _, tt := range tests {
		got, changed := NextStatus(tt.current, tt.pct)
		assert.Equal(t, tt.want, got, "%s@%d", tt.current, tt.pct)
		assert.Equal(t, tt.changed, changed, "%s@%d", tt.current, tt.pct)
	}
}
