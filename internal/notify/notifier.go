package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

const (
	KindSessionRequested = "session_requested"
	KindSessionScheduled = "session_scheduled"
	KindRequestApproved  = "session_request_approved"
	KindRequestDeclined  = "session_request_declined"
	KindTaskAssigned     = "task_assigned"
	KindTaskCompleted    = "task_completed"
)

type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

type Notice struct {
	UserID   uuid.UUID
	Kind     string
	Title    string
	Body     string
	EntityID *uuid.UUID
}

// Notifier records in-app notifications. Delivery to other channels is
// handled outside this service.
type Notifier struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Notifier {
	return &Notifier{store: store, log: log}
}

// Notify is best effort: a failed insert is logged and swallowed.
func (n *Notifier) Notify(ctx context.Context, notices ...Notice) {
	for _, nt := range notices {
		if nt.UserID == uuid.Nil {
			continue
		}
		row := &models.Notification{
			UserID:   nt.UserID,
			Kind:     nt.Kind,
			Title:    nt.Title,
			Body:     nt.Body,
			EntityID: nt.EntityID,
		}
		if err := n.store.CreateNotification(ctx, row); err != nil {
			n.log.Warn("notification insert failed",
				zap.String("kind", nt.Kind),
				zap.String("user_id", nt.UserID.String()),
				zap.Error(err),
			)
		}
	}
}
