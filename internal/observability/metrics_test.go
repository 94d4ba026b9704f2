package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ytget/songbatch/internal/model"
)

func TestRecordFetch(t *testing.T) {
	m := New()

	m.RecordFetch(nil, time.Second)
	m.RecordFetch(nil, 2*time.Second)
	m.RecordFetch(errors.New("no match"), time.Second)

	if got := testutil.ToFloat64(m.TracksFetched); got != 2 {
		t.Errorf("expected 2 fetched tracks, got %v", got)
	}
	if got := testutil.ToFloat64(m.TracksFailed); got != 1 {
		t.Errorf("expected 1 failed track, got %v", got)
	}
}

func TestRecordJobLifecycle(t *testing.T) {
	m := New()

	m.RecordJobStarted()
	m.RecordJobFinished(model.JobStateCancelled, 3*time.Second)
	m.SetSpeed(2048)

	if got := testutil.ToFloat64(m.JobsStarted); got != 1 {
		t.Errorf("expected 1 started job, got %v", got)
	}
	if got := testutil.ToFloat64(m.JobsFinished.WithLabelValues("Cancelled")); got != 1 {
		t.Errorf("expected 1 cancelled job, got %v", got)
	}
	if got := testutil.ToFloat64(m.CurrentSpeed); got != 2048 {
		t.Errorf("expected speed 2048, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordJobStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "songbatch_jobs_started_total 1") {
		t.Errorf("metrics output missing started counter:\n%s", rec.Body.String())
	}
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	// Two instances must not collide on registration
	a := New()
	b := New()
	a.RecordJobStarted()

	if got := testutil.ToFloat64(b.JobsStarted); got != 0 {
		t.Errorf("metrics leaked between registries: %v", got)
	}
}
