package task

import (
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

const CompletePercentage = 100

// ValidatePercentage checks the 0..100 range.
func ValidatePercentage(p int) error {
	if p < 0 || p > CompletePercentage {
		return httperr.Validation("invalid_percentage", "Percentage must be between 0 and 100.", map[string]string{
			"percentage": "must be between 0 and 100",
		})
	}
	return nil
}

// CheckMonotonic rejects a percentage below the latest recorded one.
// latest is nil when the instance has no updates yet.
func CheckMonotonic(latest *int, next int) error {
	if latest != nil && next < *latest {
		return httperr.Conflict("progress_regression", "Progress cannot go below the latest update.")
	}
	return nil
}

// NextStatus returns the instance status after an update of pct and whether
// it differs from current. Only 100 completes; any other value moves a
// pending instance to in_progress. A completed instance stays completed.
func NextStatus(current Status, pct int) (Status, bool) {
	switch {
	case pct == CompletePercentage:
		return StatusCompleted, current != StatusCompleted
	case current == StatusPending && pct > 0:
		return StatusInProgress, true
	default:
		return current, false
	}
}
