package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/poseview/internal/pose"
)

// ErrClosed is returned by Run when the peer ends the stream cleanly.
var ErrClosed = errors.New("stream closed by peer")

// Sink receives what a Source reads. Deliver may block; its error ends Run.
type Sink interface {
	Connected()
	Deliver(ctx context.Context, s pose.Sample) error
	Rejected(err error)
}

// Source is one connection attempt to a pose feed.
type Source interface {
	Name() string
	// Run connects, delivers samples until the connection ends and returns
	// the reason. It returns ctx.Err() once ctx is cancelled.
	Run(ctx context.Context, sink Sink) error
}

// OpenRequest is sent once after connecting to select a session.
type OpenRequest struct {
	Group     string `json:"group"`
	Timestamp string `json:"timestamp"`
}

// decodeMessage accepts one record or a JSON array of records. Every element
// that fails to decode is reported separately.
func decodeMessage(data []byte) ([]pose.Sample, []error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		s, err := pose.Decode(trimmed)
		if err != nil {
			return nil, []error{err}
		}
		return []pose.Sample{s}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, []error{fmt.Errorf("decode batch: %w", err)}
	}
	var (
		out  []pose.Sample
		errs []error
	)
	for _, item := range items {
		s, err := pose.Decode(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

// deliverAll hands samples to sink and reports rejects.
func deliverAll(ctx context.Context, sink Sink, samples []pose.Sample, errs []error) error {
	for _, err := range errs {
		sink.Rejected(err)
	}
	for _, s := range samples {
		if err := sink.Deliver(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
