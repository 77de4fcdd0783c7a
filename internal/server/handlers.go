package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/knowledge"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/pipeline"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/telemetry"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// simulate2GDelay is the artificial latency added when a client asks for
// the 2g simulation.
const simulate2GDelay = 500 * time.Millisecond

const rateLimitedMessage = "बहुत सारे अनुरोध। कृपया एक मिनट बाद पुनः प्रयास करें।"

// overLimit asks the configured limiter whether this client has used up
// its budget. A broken limiter backend fails open so that it cannot take
// the service down.
func (s *Server) overLimit(c echo.Context) bool {
	if s.limiter == nil {
		return false
	}
	ok, err := s.limiter.Allow(c.Request().Context(), c.RealIP())
	if err != nil {
		s.logger.Printf("rate limiter error for %s: %v", c.RealIP(), err)
		return false
	}
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordRateLimited()
		}
		return true
	}
	return false
}

func (s *Server) tooManyRequests(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
		"error":               rateLimitedMessage,
		"retry_after_seconds": int(s.cfg.RateLimit.Window.Seconds()),
	})
}

func (s *Server) query(c echo.Context) error {
	start := time.Now()

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	if s.overLimit(c) {
		return s.tooManyRequests(c)
	}

	network := models.NetworkClass(strings.ToLower(req.NetworkType))
	switch network {
	case models.Network2G, models.Network3G, models.Network4G:
	default:
		network = models.Network4G
	}
	degraded := req.Simulate2G
	if degraded {
		time.Sleep(simulate2GDelay)
		network = models.Network2G
	}

	resp := s.pipe.Answer(c.Request().Context(), pipeline.Request{
		Query:        req.Text,
		CategoryHint: models.Category(req.Category),
		Degraded:     degraded,
	})
	pipeline.AdaptForNetwork(resp.Answer, network)

	// "offline" means the answer came straight from the local knowledge
	// base, no matter how good the client's connection is.
	mode := "llm"
	switch resp.Answer.Source {
	case models.SourceSafetyFilter:
		mode = "emergency"
	case models.SourceKeywordMatch:
		mode = "offline"
	}

	payload, err := json.Marshal(resp.Answer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordQuery(telemetry.QuerySample{
			Category: resp.Category,
			Source:   resp.Answer.Source,
			Network:  network,
			UserType: req.UserType,
			Bytes:    len(payload),
			CacheHit: resp.CacheHit,
			LLMCall:  resp.Answer.Source == models.SourceGroqLLM || resp.Answer.Source == models.SourceMock,
			Duration: elapsed,
		})
	}

	return c.JSON(http.StatusOK, QueryResponse{
		ResponseID:         uuid.NewString(),
		Mode:               mode,
		Category:           string(resp.Category),
		CategoryConfidence: resp.CategoryConfidence,
		BytesUsed:          len(payload),
		ResponseTimeMs:     elapsed.Milliseconds(),
		Cached:             resp.CacheHit,
		Answer:             *resp.Answer,
	})
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"schemes_loaded": s.corpusSize(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) corpusSize() int {
	if s.corpus == nil {
		return 0
	}
	return len(s.corpus.Records)
}

// StatsResponse is the public usage view: raw counters plus the derived
// ratios clients actually want.
type StatsResponse struct {
	Usage            telemetry.Stats `json:"usage"`
	CacheHitRatio    float64         `json:"cache_hit_ratio"`
	LLMUsagePercent  float64         `json:"llm_usage_percent"`
	AvgResponseBytes float64         `json:"avg_response_bytes"`
	SchemesLoaded    int             `json:"schemes_loaded"`
}

func (s *Server) stats(c echo.Context) error {
	if s.metrics == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "telemetry disabled")
	}
	snap := s.metrics.Snapshot()
	resp := StatsResponse{Usage: snap, SchemesLoaded: s.corpusSize()}
	if snap.TotalQueries > 0 {
		total := float64(snap.TotalQueries)
		resp.CacheHitRatio = float64(snap.CacheHits) / total
		resp.LLMUsagePercent = 100 * float64(snap.LLMCalls) / total
		resp.AvgResponseBytes = float64(snap.TotalResponseBytes) / total
	}
	return c.JSON(http.StatusOK, resp)
}

// analytics is the admin view: the usage counters, the derived
// aggregates and a corpus breakdown.
func (s *Server) analytics(c echo.Context) error {
	if s.metrics == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "telemetry disabled")
	}
	snap := s.metrics.Snapshot()

	topCategory := ""
	var topCount int64
	for cat, n := range snap.QueriesByCategory {
		if n > topCount || (n == topCount && cat < topCategory) {
			topCategory, topCount = cat, n
		}
	}
	var offlinePercent float64
	if snap.TotalQueries > 0 {
		offlinePercent = 100 * float64(snap.OfflineQueries) / float64(snap.TotalQueries)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"usage":           snap,
		"top_category":    topCategory,
		"offline_percent": offlinePercent,
		"user_types":      snap.QueriesByUserType,
		"feedback": map[string]int64{
			"helpful":   snap.FeedbackHelpful,
			"unhelpful": snap.FeedbackUnhelpful,
		},
		"rate_limited": snap.RateLimited,
		"corpus":       knowledge.Summarize(s.corpus),
	})
}

func (s *Server) feedback(c echo.Context) error {
	if s.overLimit(c) {
		return s.tooManyRequests(c)
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ResponseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "response_id is required")
	}
	if s.metrics != nil {
		s.metrics.RecordFeedback(req.IsHelpful)
	}
	s.logger.Printf("feedback for %s: helpful=%v category=%q", req.ResponseID, req.IsHelpful, req.Category)
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "धन्यवाद! आपकी प्रतिक्रिया दर्ज कर ली गई है।",
	})
}

// offlinePack serves the top records for client-side caching in
// poor-connectivity areas.
func (s *Server) offlinePack(c echo.Context) error {
	size := s.cfg.Knowledge.OfflinePackSize
	var records []*models.Record
	if s.corpus != nil {
		records = s.corpus.Records
	}
	entries := knowledge.OfflinePack(records, size)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"count":        len(entries),
		"entries":      entries,
	})
}
