// Package pipeline sequences safety check, intent classification,
// category retrieval, lexical scoring and the generative fallback into a
// single answer per query. Every failure path ends in a well-formed
// Answer; the pipeline never returns "no answer".
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/intent"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/knowledge"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/safety"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/scorer"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/provider"
)

const (
	// keywordThreshold is the minimum blended confidence for a lexical
	// match to be answered directly without the generative fallback.
	keywordThreshold = 0.3

	// degradedSummaryLimit bounds a reused lexical summary in degraded
	// mode, in runes.
	degradedSummaryLimit = 200

	// contextRecords is how many candidate records feed the prompt.
	contextRecords = 10
)

const (
	lowConfidenceDisclaimer = "\n\n⚠️ नोट: यह उत्तर कम विश्वसनीयता के साथ मिला है। कृपया आधिकारिक स्रोत से पुष्टि करें।"

	ultimateFallbackSummary = "क्षमा करें, मुझे इस प्रश्न का उत्तर नहीं मिला। कृपया 1800-180-1551 पर संपर्क करें।"

	degradedUnavailableSummary = "ऑफ़लाइन मोड में यह उत्तर उपलब्ध नहीं है। कृपया नेटवर्क उपलब्ध होने पर पुनः प्रयास करें। आपातकाल में 112 पर संपर्क करें।"
)

// Request is one query entering the pipeline.
type Request struct {
	Query string
	// CategoryHint, when set to a valid category, bypasses intent
	// classification and searches that partition directly.
	CategoryHint models.Category
	// Degraded declares low-bandwidth/offline simulation: the
	// completion service is never called.
	Degraded bool
}

// Response pairs the Answer with the classification outcome for the
// transport layer.
type Response struct {
	Answer             *models.Answer
	Category           models.Category
	CategoryConfidence float64
	// CacheHit reports that candidates came from a memoized category
	// partition rather than a corpus scan.
	CacheHit bool
}

// Pipeline orchestrates one query end to end. All members are read-only
// after construction; the pipeline is safe for concurrent use.
type Pipeline struct {
	safety     *safety.Classifier
	intent     *intent.Classifier
	cache      *knowledge.Cache
	corpus     *knowledge.Corpus
	completion provider.Completion
	logger     *log.Logger

	// failureHook, when set, is called once per failed completion call.
	failureHook func()

	strategies []strategy
}

// SetFailureHook registers a callback for completion failures, used for
// metrics. Must be set before serving traffic.
func (p *Pipeline) SetFailureHook(fn func()) { p.failureHook = fn }

// state accumulates per-query intermediate results as the strategies run.
type state struct {
	req        Request
	category   models.Category
	confidence float64
	candidates []*models.Record
	cacheHit   bool
	lexical    *scorer.Result
}

// strategy is one stage of the ordered fallback chain. A nil Answer
// means "not mine, try the next one"; an error aborts nothing — the
// chain always ends in a strategy that cannot fail.
type strategy func(ctx context.Context, st *state) *models.Answer

// New builds a pipeline over the given collaborators.
func New(safetyClassifier *safety.Classifier, intentClassifier *intent.Classifier, cache *knowledge.Cache, corpus *knowledge.Corpus, completion provider.Completion, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(log.Writer(), "[PIPE] ", log.LstdFlags)
	}
	p := &Pipeline{
		safety:     safetyClassifier,
		intent:     intentClassifier,
		cache:      cache,
		corpus:     corpus,
		completion: completion,
		logger:     logger,
	}
	p.strategies = []strategy{
		p.checkSafety,
		p.retrieveLexical,
		p.generate,
		p.fallback,
	}
	return p
}

// Answer runs the strategy chain. The final strategy is total, so a
// well-formed Answer is always produced.
func (p *Pipeline) Answer(ctx context.Context, req Request) Response {
	st := &state{req: req, category: models.CategoryGeneral}
	for _, try := range p.strategies {
		if ans := try(ctx, st); ans != nil {
			if st.req.Degraded {
				ans.Simulate2GMode = true
			}
			return Response{Answer: ans, Category: st.category, CategoryConfidence: st.confidence, CacheHit: st.cacheHit}
		}
	}
	// Unreachable: fallback always answers.
	return Response{Answer: p.ultimateFallback(), Category: st.category}
}

// checkSafety short-circuits crisis queries to a templated emergency
// answer. Absolute rule: no generative text for a crisis.
func (p *Pipeline) checkSafety(ctx context.Context, st *state) *models.Answer {
	isCrisis, crisisType, ans := p.safety.Check(st.req.Query)
	if !isCrisis {
		return nil
	}
	p.logger.Printf("crisis detected (%s), emergency template returned", crisisType)
	return ans
}

// retrieveLexical classifies intent, selects the category partition and
// scores candidates. It answers directly only when the blended
// confidence clears the keyword threshold; otherwise it stashes whatever
// match exists for the later stages.
func (p *Pipeline) retrieveLexical(ctx context.Context, st *state) *models.Answer {
	if st.req.CategoryHint != "" && st.req.CategoryHint.Valid() {
		st.category = st.req.CategoryHint
		st.confidence = 1.0
	} else {
		st.category, st.confidence = p.intent.Classify(st.req.Query)
	}

	st.candidates = p.candidatesFor(st)
	st.lexical = scorer.Score(st.req.Query, st.candidates)
	if st.lexical == nil {
		return nil
	}

	if st.lexical.Confidence >= keywordThreshold {
		return p.keywordAnswer(st.lexical, false)
	}

	// Low-confidence match: stash it and let the generative stage (or
	// its degraded twin) decide what to do with it.
	return nil
}

// candidatesFor resolves the partition for a category, falling back to
// the whole corpus when the partition is empty or the category is
// general.
func (p *Pipeline) candidatesFor(st *state) []*models.Record {
	if st.category != models.CategoryGeneral {
		if records := p.cache.Get(st.category); len(records) > 0 {
			st.cacheHit = true
			return records
		}
	}
	if p.corpus != nil {
		return p.corpus.Records
	}
	return nil
}

// generate is the completion-service stage. In degraded mode it reuses
// the lexical match (or reports unavailability) without any remote call.
// A completion failure returns nil so the fallback stage takes over.
func (p *Pipeline) generate(ctx context.Context, st *state) *models.Answer {
	if st.req.Degraded {
		if st.lexical != nil {
			ans := p.keywordAnswer(st.lexical, true)
			ans.Summary = truncateRunes(ans.Summary, degradedSummaryLimit)
			return ans
		}
		return &models.Answer{
			Summary:    degradedUnavailableSummary,
			SchemeName: "Unknown",
			Source:     models.SourceFallback,
			Confidence: 0.0,
		}
	}

	prompt := p.buildPrompt(st.req.Query, st.candidates)
	reply, err := p.completion.Complete(ctx, prompt)
	if err != nil {
		p.logger.Printf("completion failed: %v", err)
		if p.failureHook != nil {
			p.failureHook()
		}
		return nil
	}

	if p.completion.Kind() == provider.Mock {
		// Mock answers never went through retrieval-augmented generation,
		// so they carry no retrieval method.
		return &models.Answer{
			Summary:    reply,
			SchemeName: "Test",
			Source:     models.SourceMock,
			Confidence: 0.5,
		}
	}
	return &models.Answer{
		Summary:         reply,
		SchemeName:      "AI Generated",
		Source:          models.SourceGroqLLM,
		Confidence:      0.8,
		RetrievalMethod: models.RetrievalRAGLLM,
	}
}

// fallback is total: reuse the lexical match when one exists, else emit
// the static contact-helpline answer.
func (p *Pipeline) fallback(ctx context.Context, st *state) *models.Answer {
	if st.lexical != nil {
		ans := p.keywordAnswer(st.lexical, true)
		ans.FallbackMode = true
		return ans
	}
	return p.ultimateFallback()
}

func (p *Pipeline) ultimateFallback() *models.Answer {
	return &models.Answer{
		Summary:    ultimateFallbackSummary,
		SchemeName: "Unknown",
		Source:     models.SourceFallback,
		Confidence: 0.0,
	}
}

// keywordAnswer builds an Answer from a lexical result. lowConfidence
// appends the disclaimer, sets the warning flag and forces the
// semantic_match label.
func (p *Pipeline) keywordAnswer(res *scorer.Result, lowConfidence bool) *models.Answer {
	rec := res.Match.Record
	scheme := rec.Title
	if scheme == "" {
		scheme = string(rec.Category)
	}
	if scheme == "" {
		scheme = "सामान्य"
	}

	ans := &models.Answer{
		Summary:           rec.Summary,
		SchemeName:        scheme,
		Source:            models.SourceKeywordMatch,
		Confidence:        res.Confidence,
		RetrievalMethod:   res.RetrievalMethod,
		SimilarityScore:   res.SimilarityScore,
		Eligibility:       rec.Eligibility,
		DocumentsRequired: rec.DocumentsRequired,
		Benefits:          rec.Benefits,
		OfficialLink:      rec.OfficialLink,
		LastUpdated:       rec.LastUpdated,
	}
	if lowConfidence {
		ans.Summary += lowConfidenceDisclaimer
		ans.LowConfidenceWarning = true
		ans.RetrievalMethod = models.RetrievalSemanticMatch
	}
	return ans
}

// buildPrompt concatenates up to contextRecords candidates with the live
// query under the fixed instruction template.
func (p *Pipeline) buildPrompt(query string, candidates []*models.Record) string {
	limit := len(candidates)
	if limit > contextRecords {
		limit = contextRecords
	}

	var context strings.Builder
	for i := 0; i < limit; i++ {
		rec := candidates[i]
		topic := rec.Title
		if topic == "" {
			topic = string(rec.Category)
		}
		if topic == "" {
			topic = "सामान्य"
		}
		fmt.Fprintf(&context, "विषय: %s\nप्रश्न: %s\nउत्तर: %s\n", topic, rec.Question, rec.Summary)
	}

	return fmt.Sprintf(`तुम एक सरकारी योजना सहायक हो। नीचे दिए गए संदर्भ का उपयोग करके प्रश्न का उत्तर दो।

संदर्भ:
%s
प्रश्न: %s

उत्तर (केवल 3-4 वाक्यों में, सरल हिंदी में):`, context.String(), query)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
