package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnalysisCountsOutcomes(t *testing.T) {
	m := New()
	m.ObserveAnalysis(OutcomeSuccess, 2*time.Second)
	m.ObserveAnalysis(OutcomeFailure, time.Second)
	m.ObserveAnalysis(OutcomeSuccess, time.Second)

	if got := testutil.ToFloat64(m.AnalysisRequests.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.AnalysisRequests.WithLabelValues(OutcomeFailure)); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAnalysis(OutcomeSuccess, time.Second)
	m.UploadAccepted()
	m.RejectUpload("too_large")
	m.SuggestionsAdded(3)
}

func TestHandlerRendersExposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.UploadAccepted()
	m.SuggestionsAdded(3)

	router := gin.New()
	router.GET("/metrics", m.Handler())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"resumes_uploaded_total 1", "suggestions_created_total 3"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition", want)
		}
	}
}
