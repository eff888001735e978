package audit

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type memoryStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (s *memoryStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *l)
	return nil
}

func TestDispatcherWritesEventsBeforeClose(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(New(store), zap.NewNop())

	actor := uuid.New()
	entity := uuid.New()
	d.Dispatch(Event{ActorID: &actor, Action: "session_created", Entity: "session", EntityID: &entity, Metadata: map[string]any{"duration": 45}})
	d.Dispatch(Event{Action: "upload_swept", Entity: "upload"})
	d.Close()

	require.Len(t, store.logs, 2)
	assert.Equal(t, "session_created", store.logs[0].Action)
	assert.Equal(t, actor, *store.logs[0].ActorID)
	assert.JSONEq(t, `{"duration":45}`, store.logs[0].Metadata)
	assert.Empty(t, store.logs[1].Metadata)
}

func TestWriteCSVQuotesFieldsAndReplacesMetadataCommas(t *testing.T) {
	actor := uuid.MustParse("6f1c5a1e-7a44-4c2e-9a55-2f7b8f0f4c11")
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	logs := []models.AuditLog{{
		ID:        uuid.MustParse("0b8f3e1c-62a8-4f4e-8d1a-0e4a1f0e9f2a"),
		ActorID:   &actor,
		Action:    "session_updated",
		Entity:    "session",
		Metadata:  `{"status":"completed","note":"said \"hi\""}`,
		CreatedAt: created,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, logs))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"id","created_at","actor_id","action","entity","entity_id","metadata"`, lines[0])
	assert.Equal(t,
		`"0b8f3e1c-62a8-4f4e-8d1a-0e4a1f0e9f2a","2026-03-04T10:00:00Z","6f1c5a1e-7a44-4c2e-9a55-2f7b8f0f4c11","session_updated","session","","{""status"":""completed"";""note"":""said \""hi\""""}"`,
		lines[1],
	)
}
