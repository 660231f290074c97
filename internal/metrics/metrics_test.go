package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.SampleReceived(1)
	m.SampleReceived(2)
	m.IngestOK("trail")
	m.IngestOK("trail")
	m.IngestOK("gizmo")
	m.IngestSkipped(ReasonMissingOrientation)
	m.DecodeFailed()
	m.LabelProvisioned()
	m.ReplayDone(7, time.Millisecond)

	if got := testutil.ToFloat64(m.SamplesReceived); got != 2 {
		t.Fatalf("samples received = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LogSize); got != 2 {
		t.Fatalf("log size = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Ingested.WithLabelValues("trail")); got != 2 {
		t.Fatalf("trail ingests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Skipped.WithLabelValues(ReasonMissingOrientation)); got != 1 {
		t.Fatalf("skips = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Replayed); got != 7 {
		t.Fatalf("replayed = %v, want 7", got)
	}
	if got := testutil.CollectAndCount(m.ReplayDuration); got != 1 {
		t.Fatalf("replay duration series = %d, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.SampleReceived(3)
	m.IngestOK("trail")
	m.IngestSkipped(ReasonPanic)
	m.DecodeFailed()
	m.LabelProvisioned()
	m.ReplayDone(1, time.Second)
	if m.Registry() != nil {
		t.Fatalf("Registry on nil Metrics = non-nil")
	}
}

func TestMetrics_HandlerExposesLogSize(t *testing.T) {
	m := New()
	m.SampleReceived(42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "poseview_message_log_size 42") {
		t.Fatalf("metrics body missing log size gauge:\n%s", body)
	}
}
