package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveIngestIncrementsCounters(t *testing.T) {
	m := New()
	m.ObserveIngest("indexed", 10*time.Millisecond)
	m.ObserveIngest("skipped", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `lexisearch_ingest_documents_total{status="indexed"} 1`) {
		t.Fatalf("expected indexed counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, `lexisearch_ingest_documents_total{status="skipped"} 1`) {
		t.Fatalf("expected skipped counter in output, got:\n%s", body)
	}
}

func TestSetIndexSize(t *testing.T) {
	m := New()
	m.SetIndexSize(42)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "lexisearch_index_documents 42") {
		t.Fatalf("expected gauge value 42 in output, got:\n%s", rec.Body.String())
	}
}
