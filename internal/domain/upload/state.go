package upload

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// State is the bookkeeping for one chunked upload.
type State struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Directory   string    `json:"directory"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	TotalChunks int       `json:"total_chunks"`

	// Received maps chunk index to its byte length.
	Received map[int]int `json:"received"`

	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

type Progress struct {
	UploadID    uuid.UUID `json:"uploadId"`
	Received    int       `json:"receivedChunks"`
	Total       int       `json:"totalChunks"`
	Percent     int       `json:"percent"`
	BytesStored int64     `json:"bytesReceived"`
	Complete    bool      `json:"complete"`
}

func (s *State) Progress() Progress {
	var bytes int64
	for _, n := range s.Received {
		bytes += int64(n)
	}

	pct := 0
	if s.TotalChunks > 0 {
		pct = len(s.Received) * 100 / s.TotalChunks
	}

	return Progress{
		UploadID:    s.ID,
		Received:    len(s.Received),
		Total:       s.TotalChunks,
		Percent:     pct,
		BytesStored: bytes,
		Complete:    s.Missing() == nil,
	}
}

// Missing lists the absent indexes in 0..TotalChunks-1, in order.
func (s *State) Missing() []int {
	var out []int
	for i := 0; i < s.TotalChunks; i++ {
		if _, ok := s.Received[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// Indexes returns the received indexes, sorted.
func (s *State) Indexes() []int {
	out := make([]int, 0, len(s.Received))
	for i := range s.Received {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Store keeps upload state and chunk bytes between requests. Get and
// PutChunk return a not_found error for unknown or expired uploads.
type Store interface {
	Create(ctx context.Context, s *State) error
	Get(ctx context.Context, id uuid.UUID) (*State, error)
	PutChunk(ctx context.Context, id uuid.UUID, index int, data []byte, at time.Time) (*State, error)
	// Chunks returns the stored chunk bytes keyed by index.
	Chunks(ctx context.Context, id uuid.UUID) (map[int][]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Sweep evicts uploads whose last activity is before cutoff.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}
