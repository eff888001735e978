package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

const ListLimit = 50

type Repository interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error)
	// MarkRead stamps read_at on the user's notification. A notification
	// of another user is reported as not found.
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID, at time.Time) (*models.Notification, error)
}
