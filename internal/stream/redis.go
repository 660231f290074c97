package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/five82/poseview/internal/pose"
)

const (
	redisBatch = 10
	redisBlock = 500 * time.Millisecond
)

// RedisStream reads and writes pose records on one redis stream. Entries
// hold the record as flat fields; an entry with a "json" field is decoded
// from that field instead. Run must not be called concurrently with itself.
type RedisStream struct {
	rdb    *redis.Client
	stream string
	// StartID is the id after which Run begins reading; "0" reads from the
	// beginning of the stream.
	StartID string
}

// NewRedisStream creates a client for stream.
func NewRedisStream(opts *redis.Options, stream string) (*RedisStream, error) {
	if stream == "" {
		return nil, fmt.Errorf("stream name cannot be empty")
	}
	return &RedisStream{rdb: redis.NewClient(opts), stream: stream, StartID: "0"}, nil
}

func (r *RedisStream) Name() string { return "redis" }

// Close closes the redis connection pool.
func (r *RedisStream) Close() error {
	return r.rdb.Close()
}

// Ping verifies redis connectivity.
func (r *RedisStream) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Run reads new entries until ctx ends or redis fails. Later calls resume
// after the last entry seen.
func (r *RedisStream) Run(ctx context.Context, sink Sink) error {
	if err := r.Ping(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("connect redis: %w", err)
	}
	sink.Connected()

	for {
		res, err := r.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{r.stream, r.StartID},
			Count:   redisBatch,
			Block:   redisBlock,
		}).Result()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("xread %s: %w", r.stream, err)
		}
		for _, st := range res {
			for _, msg := range st.Messages {
				r.StartID = msg.ID
				s, err := pose.DecodeFields(msg.Values)
				if err != nil {
					sink.Rejected(fmt.Errorf("entry %s: %w", msg.ID, err))
					continue
				}
				if err := sink.Deliver(ctx, s); err != nil {
					return err
				}
			}
		}
	}
}

// Publish appends rec to the stream and returns the new entry id.
func (r *RedisStream) Publish(ctx context.Context, rec pose.Record) (string, error) {
	id, err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: rec.Fields(),
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", r.stream, err)
	}
	return id, nil
}

// Dump returns the raw field maps of count entries starting at index.
func (r *RedisStream) Dump(ctx context.Context, index, count int) ([]map[string]any, error) {
	if index < 0 || count < 0 {
		return nil, fmt.Errorf("index and count must not be negative")
	}
	msgs, err := r.rdb.XRangeN(ctx, r.stream, "-", "+", int64(index+count)).Result()
	if err != nil {
		return nil, fmt.Errorf("xrange %s: %w", r.stream, err)
	}
	out := make([]map[string]any, 0, count)
	for i := index; i < len(msgs); i++ {
		out = append(out, msgs[i].Values)
	}
	return out, nil
}

// Clear deletes the stream.
func (r *RedisStream) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.stream).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", r.stream, err)
	}
	return nil
}
