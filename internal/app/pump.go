package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/five82/poseview/internal/metrics"
	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/state"
	"github.com/five82/poseview/internal/stream"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// StartPump runs src in a background goroutine, reconnecting until ctx is
// cancelled. Decoded samples are sent on out, which is closed when the pump
// stops. It returns immediately.
func StartPump(ctx context.Context, src stream.Source, store *state.Store, m *metrics.Metrics, out chan<- pose.Sample, retry time.Duration) {
	if retry <= 0 {
		retry = defaultRetryInterval
	}
	go func() {
		defer close(out)
		sink := &pumpSink{name: src.Name(), store: store, metrics: m, out: out}
		for {
			err := src.Run(ctx, sink)
			if ctx.Err() != nil {
				store.MarkDisconnected(nil)
				return
			}

			wait := retry
			if err == nil || errors.Is(err, stream.ErrClosed) {
				log.Printf("%s stream closed by peer", src.Name())
				store.MarkDisconnected(nil)
			} else {
				log.Printf("stream disconnected: %v", err)
				store.MarkDisconnected(err)
				wait = calculateBackoff(store.Snapshot().ConsecutiveFailures-1, retry)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

type pumpSink struct {
	name    string
	store   *state.Store
	metrics *metrics.Metrics
	out     chan<- pose.Sample
}

func (p *pumpSink) Connected() {
	p.store.MarkConnected(p.name)
	log.Printf("connected to %s stream", p.name)
}

func (p *pumpSink) Deliver(ctx context.Context, s pose.Sample) error {
	select {
	case p.out <- s:
		p.store.RecordSample(time.Now())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pumpSink) Rejected(err error) {
	p.store.RecordRejected()
	p.metrics.DecodeFailed()
	log.Printf("rejected record: %v", err)
}
