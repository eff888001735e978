package analytics

import (
	"context"

	"github.com/google/uuid"
)

// Scope restricts the aggregates to rows where ActorID takes part. All is
// set for admins.
type Scope struct {
	ActorID uuid.UUID
	All     bool
}

type Overview struct {
	SessionsByStatus  map[string]int64 `json:"sessions_by_status"`
	PendingRequests   int64            `json:"pending_requests"`
	InstancesByStatus map[string]int64 `json:"task_instances_by_status"`
	CompletionRate    float64          `json:"task_completion_rate"`
}

type Repository interface {
	SessionsByStatus(ctx context.Context, s Scope) (map[string]int64, error)
	PendingRequests(ctx context.Context, s Scope) (int64, error)
	InstancesByStatus(ctx context.Context, s Scope) (map[string]int64, error)
}

// CompletionRate is completed / all instances, 0 when there are none.
func CompletionRate(byStatus map[string]int64) float64 {
	var total int64
	for _, n := range byStatus {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(byStatus["completed"]) / float64(total)
}
