package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
)

// RedisStore shares upload state between API instances. Every write
// refreshes a TTL of idleTTL on the upload's keys, so idle uploads expire
// on their own; Sweep only catches keys left without a TTL.
//
// Keys per upload:
//
//	upload:<id>:meta    hash  state (json), last (unix nanos)
//	upload:<id>:chunks  hash  <index> -> bytes
//	upload:<id>:sizes   hash  <index> -> byte length
type RedisStore struct {
	rdb     *redis.Client
	idleTTL time.Duration
}

var _ domain.Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, idleTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, idleTTL: idleTTL}
}

func metaKey(id uuid.UUID) string   { return "upload:" + id.String() + ":meta" }
func chunksKey(id uuid.UUID) string { return "upload:" + id.String() + ":chunks" }
func sizesKey(id uuid.UUID) string  { return "upload:" + id.String() + ":sizes" }

func (r *RedisStore) Create(ctx context.Context, s *domain.State) error {
	st := *s
	st.Received = nil
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode upload state: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, metaKey(s.ID), "state", raw, "last", s.LastActivity.UnixNano())
		pipe.Expire(ctx, metaKey(s.ID), r.idleTTL)
		return nil
	})
	return err
}

func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (*domain.State, error) {
	meta, err := r.rdb.HGetAll(ctx, metaKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, errNotFound()
	}

	var st domain.State
	if err := json.Unmarshal([]byte(meta["state"]), &st); err != nil {
		return nil, fmt.Errorf("decode upload state: %w", err)
	}
	if last, err := strconv.ParseInt(meta["last"], 10, 64); err == nil {
		st.LastActivity = time.Unix(0, last).UTC()
	}

	sizes, err := r.rdb.HGetAll(ctx, sizesKey(id)).Result()
	if err != nil {
		return nil, err
	}
	st.Received = make(map[int]int, len(sizes))
	for k, v := range sizes {
		idx, err1 := strconv.Atoi(k)
		n, err2 := strconv.Atoi(v)
		if err1 != nil || err2 != nil {
			continue
		}
		st.Received[idx] = n
	}
	return &st, nil
}

func (r *RedisStore) PutChunk(ctx context.Context, id uuid.UUID, index int, data []byte, at time.Time) (*domain.State, error) {
	n, err := r.rdb.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errNotFound()
	}

	field := strconv.Itoa(index)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, chunksKey(id), field, data)
		pipe.HSet(ctx, sizesKey(id), field, len(data))
		pipe.HSet(ctx, metaKey(id), "last", at.UnixNano())
		for _, k := range []string{metaKey(id), chunksKey(id), sizesKey(id)} {
			pipe.Expire(ctx, k, r.idleTTL)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *RedisStore) Chunks(ctx context.Context, id uuid.UUID) (map[int][]byte, error) {
	raw, err := r.rdb.HGetAll(ctx, chunksKey(id)).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[int][]byte, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[idx] = []byte(v)
	}
	return out, nil
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.rdb.Del(ctx, metaKey(id), chunksKey(id), sizesKey(id)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r *RedisStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, "upload:*:meta", 100).Result()
		if err != nil {
			return n, err
		}

		for _, k := range keys {
			last, err := r.rdb.HGet(ctx, k, "last").Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return n, err
			}
			if time.Unix(0, last).Before(cutoff) {
				id, perr := uuid.Parse(k[len("upload:") : len(k)-len(":meta")])
				if perr != nil {
					continue
				}
				if err := r.Delete(ctx, id); err != nil {
					return n, err
				}
				n++
			}
		}

		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}
