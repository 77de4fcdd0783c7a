package models

import "errors"

// ErrPartitionNotFound is returned when a category has no prebuilt index.
var ErrPartitionNotFound = errors.New("category partition not found")

// Category is one of the fixed topical partitions of the knowledge base.
type Category string

const (
	CategoryGovernmentSchemes Category = "government_schemes"
	CategoryAgriculture       Category = "agriculture"
	CategoryHealth            Category = "health"
	CategoryEducation         Category = "education"
	CategoryFinancial         Category = "financial"
	CategoryLegal             Category = "legal"
	CategoryDisaster          Category = "disaster"
	CategoryLivelihood        Category = "livelihood"

	// CategoryGeneral is not a partition: it means "search everything".
	CategoryGeneral Category = "general"
)

// Categories lists the eight corpus partitions in declaration order.
var Categories = []Category{
	CategoryGovernmentSchemes,
	CategoryAgriculture,
	CategoryHealth,
	CategoryEducation,
	CategoryFinancial,
	CategoryLegal,
	CategoryDisaster,
	CategoryLivelihood,
}

// Valid reports whether c names an actual corpus partition.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Source identifies which stage of the pipeline produced an Answer.
type Source string

const (
	SourceSafetyFilter Source = "safety_filter"
	SourceKeywordMatch Source = "keyword_match"
	SourceGroqLLM      Source = "groq_llm"
	SourceMock         Source = "mock"
	SourceFallback     Source = "fallback"
)

// RetrievalMethod describes how the answer text was retrieved.
type RetrievalMethod string

const (
	RetrievalDirectMatch   RetrievalMethod = "direct_match"
	RetrievalSemanticMatch RetrievalMethod = "semantic_match"
	RetrievalRAGLLM        RetrievalMethod = "rag_llm"
)

// CrisisType labels a query flagged by the safety classifier.
type CrisisType string

const (
	CrisisSuicide  CrisisType = "suicide"
	CrisisPoison   CrisisType = "poison"
	CrisisOverdose CrisisType = "overdose"
	CrisisViolence CrisisType = "violence"
	CrisisSelfHarm CrisisType = "self_harm"
)

// NetworkClass is the caller-declared connectivity tier.
type NetworkClass string

const (
	Network2G NetworkClass = "2g"
	Network3G NetworkClass = "3g"
	Network4G NetworkClass = "4g"
)

// Record is one knowledge-base Q&A entry. Optional attributes stay empty
// when absent; they are validated once at ingestion, never at query time.
type Record struct {
	ID               string   `json:"id"`
	Category         Category `json:"category"`
	Title            string   `json:"title"`
	Question         string   `json:"question_hi"`
	QuestionVariants []string `json:"question_variants"`
	Summary          string   `json:"summary"`
	Tags             []string `json:"tags"`
	LastUpdated      string   `json:"last_updated"`
	ConfidenceWeight float64  `json:"confidence_weight"`

	Eligibility       string   `json:"eligibility,omitempty"`
	DocumentsRequired []string `json:"documents_required,omitempty"`
	Benefits          string   `json:"benefits,omitempty"`
	OfficialLink      string   `json:"official_link,omitempty"`
}

// Helpline is one entry of the static emergency helpline table.
type Helpline struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description"`
}

// Match is a scored candidate produced by the lexical scorer. RawScore is
// an accumulated integer, not a probability.
type Match struct {
	Record   *Record
	RawScore int
}

// Answer is the pipeline's unit of response. Created fresh per query and
// never persisted.
type Answer struct {
	Summary           string          `json:"summary"`
	SchemeName        string          `json:"scheme_name"`
	Source            Source          `json:"source"`
	Confidence        float64         `json:"confidence"`
	RetrievalMethod   RetrievalMethod `json:"retrieval_method,omitempty"`
	SimilarityScore   float64         `json:"similarity_score"`
	Eligibility       string          `json:"eligibility,omitempty"`
	DocumentsRequired []string        `json:"documents_required,omitempty"`
	Benefits          string          `json:"benefits,omitempty"`
	OfficialLink      string          `json:"official_link,omitempty"`
	EmergencyHelpline []Helpline      `json:"emergency_helplines,omitempty"`
	LastUpdated       string          `json:"last_updated,omitempty"`

	LowConfidenceWarning bool `json:"low_confidence_warning,omitempty"`
	FallbackMode         bool `json:"fallback_mode,omitempty"`
	Simulate2GMode       bool `json:"simulate_2g_mode,omitempty"`

	Compressed     bool `json:"compressed,omitempty"`
	OriginalLength int  `json:"original_length,omitempty"`
}
