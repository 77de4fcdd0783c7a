package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

func TestRecordQueryMirrorsCounters(t *testing.T) {
	m := New()

	m.RecordQuery(QuerySample{
		Category: models.CategoryAgriculture,
		Source:   models.SourceKeywordMatch,
		Network:  models.Network2G,
		UserType: "farmer",
		Bytes:    512,
		CacheHit: true,
		Duration: 20 * time.Millisecond,
	})
	m.RecordQuery(QuerySample{
		Category: models.CategoryGeneral,
		Source:   models.SourceFallback,
		Network:  models.Network4G,
		Bytes:    128,
		LLMCall:  true,
	})

	stats := m.Snapshot()
	if stats.TotalQueries != 2 {
		t.Fatalf("total_queries = %d, want 2", stats.TotalQueries)
	}
	if stats.CacheHits != 1 || stats.LLMCalls != 1 {
		t.Fatalf("cache_hits = %d, llm_calls = %d, want 1 and 1", stats.CacheHits, stats.LLMCalls)
	}
	if stats.FallbackAnswers != 1 {
		t.Fatalf("fallback_answers = %d, want 1", stats.FallbackAnswers)
	}
	// The keyword-match answer is the offline one, the fallback answer is not.
	if stats.OfflineQueries != 1 || stats.OnlineQueries != 1 {
		t.Fatalf("offline = %d, online = %d, want 1 and 1", stats.OfflineQueries, stats.OnlineQueries)
	}
	if stats.TotalResponseBytes != 640 {
		t.Fatalf("total_response_bytes = %d, want 640", stats.TotalResponseBytes)
	}
	if stats.QueriesByCategory["agriculture"] != 1 {
		t.Fatalf("category counts = %v", stats.QueriesByCategory)
	}
	if stats.QueriesByNetwork["2g"] != 1 || stats.QueriesByNetwork["4g"] != 1 {
		t.Fatalf("network counts = %v", stats.QueriesByNetwork)
	}
	if stats.QueriesByUserType["farmer"] != 1 {
		t.Fatalf("user type counts = %v", stats.QueriesByUserType)
	}
}

func TestRecordFeedback(t *testing.T) {
	m := New()
	m.RecordFeedback(true)
	m.RecordFeedback(true)
	m.RecordFeedback(false)

	stats := m.Snapshot()
	if stats.FeedbackHelpful != 2 || stats.FeedbackUnhelpful != 1 {
		t.Fatalf("feedback = %d/%d, want 2/1", stats.FeedbackHelpful, stats.FeedbackUnhelpful)
	}
}

func TestRecordRateLimitedAndFailures(t *testing.T) {
	m := New()
	m.RecordRateLimited()
	m.RecordCompletionFailure()
	m.RecordCompletionFailure()

	stats := m.Snapshot()
	if stats.RateLimited != 1 {
		t.Fatalf("rate_limited = %d, want 1", stats.RateLimited)
	}
	if stats.CompletionFailures != 2 {
		t.Fatalf("completion_failures = %d, want 2", stats.CompletionFailures)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := New()
	m.RecordQuery(QuerySample{Category: models.CategoryHealth, Source: models.SourceKeywordMatch, Network: models.Network3G})

	snap := m.Snapshot()
	snap.QueriesByCategory["health"] = 99

	if got := m.Snapshot().QueriesByCategory["health"]; got != 1 {
		t.Fatalf("mirror mutated through snapshot: %d", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.RecordQuery(QuerySample{Category: models.CategoryHealth, Source: models.SourceGroqLLM, Network: models.Network4G, LLMCall: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "gramsevak_queries_total 1") {
		t.Fatalf("metrics output missing query counter:\n%s", body)
	}
	if !strings.Contains(body, "gramsevak_llm_calls_total 1") {
		t.Fatalf("metrics output missing llm counter:\n%s", body)
	}
}
