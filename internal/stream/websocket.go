package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	defaultDialTimeout = 10 * time.Second
	maxMessageBytes    = 1 << 20
)

// WebSocketSource reads pose records from a websocket endpoint.
type WebSocketSource struct {
	URL         string
	Open        OpenRequest
	DialTimeout time.Duration
}

func (w *WebSocketSource) Name() string { return "websocket" }

func (w *WebSocketSource) Run(ctx context.Context, sink Sink) error {
	timeout := w.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	conn, _, err := websocket.Dial(dialCtx, w.URL, nil)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dial %s: %w", w.URL, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxMessageBytes)

	if err := wsjson.Write(ctx, conn, w.Open); err != nil {
		return fmt.Errorf("send session open: %w", err)
	}
	sink.Connected()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				conn.Close(websocket.StatusNormalClosure, "")
				return ctx.Err()
			}
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return ErrClosed
			}
			return fmt.Errorf("read: %w", err)
		}
		if typ != websocket.MessageText && typ != websocket.MessageBinary {
			continue
		}
		samples, errs := decodeMessage(data)
		if err := deliverAll(ctx, sink, samples, errs); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				conn.Close(websocket.StatusNormalClosure, "")
			}
			return err
		}
	}
}
