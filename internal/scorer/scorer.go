// Package scorer ranks knowledge-base records against a query with a
// multi-signal lexical score. It is pure and deterministic: identical
// inputs always produce the same winner and raw score.
package scorer

import (
	"strings"
	"unicode/utf8"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// crossLingual maps Hindi anchor terms to clusters of English/Hinglish
// equivalents. Each cluster term found in the candidate text adds 10 when
// its anchor appears in the query.
var crossLingual = map[string][]string{
	// Government schemes
	"किसान":    {"pmkisan", "kisan", "farmer", "खेती", "kheti", "agriculture"},
	"उज्ज्वला": {"ujjwala", "gas", "lpg", "cylinder", "सिलेंडर"},
	"आयुष्मान": {"ayushman", "health", "hospital", "इलाज", "ilaj", "treatment"},
	"पेंशन":    {"pension", "atal", "retirement", "बुढ़ापा"},
	"घर":       {"awas", "house", "home", "मकान", "makaan", "housing"},
	"लोन":      {"mudra", "loan", "credit", "कर्ज", "karj", "उधार"},
	"राशन":     {"ration", "food", "खाना", "अनाज", "grain"},
	"शौचालय":   {"toilet", "swachh", "sanitation", "latrine"},
	"बैंक":     {"bank", "account", "खाता", "jandhan"},

	// Agriculture
	"फसल":   {"crop", "खेती", "farming", "बुवाई", "sowing"},
	"बीज":   {"seed", "beej", "variety"},
	"खाद":   {"fertilizer", "urea", "npk", "manure"},
	"कीड़ा": {"pest", "insect", "disease", "रोग"},
	"पानी":  {"water", "irrigation", "सिंचाई", "drip"},
	"मंडी":  {"mandi", "market", "price", "भाव", "rate"},

	// Health
	"बीमारी": {"disease", "illness", "sick", "बुखार", "fever"},
	"दवा":    {"medicine", "tablet", "गोली", "treatment"},
	"डॉक्टर": {"doctor", "hospital", "clinic", "अस्पताल"},
	"टीका":   {"vaccine", "vaccination", "immunization"},

	// Education and work
	"पढ़ाई":       {"education", "study", "school", "स्कूल"},
	"छात्रवृत्ति": {"scholarship", "financial_aid"},
	"नौकरी":       {"job", "employment", "career"},

	// Financial
	"पैसा":  {"money", "paisa", "rupee", "रुपया"},
	"बचत":   {"savings", "save", "deposit"},
	"ब्याज": {"interest", "rate"},

	// Common intent words
	"कैसे":  {"how", "kaise", "process", "method"},
	"क्या":  {"what", "kya", "information"},
	"कितना": {"how much", "kitna", "amount", "quantity"},
	"कहां":  {"where", "kahan", "location"},
	"कब":    {"when", "kab", "time", "date"},
}

// misspellings maps common wrong forms in queries to the canonical form
// expected in candidate text.
var misspellings = map[string]string{
	"kisaan": "kisan",
	"kissan": "kisan",
	"yojna":  "yojana",
	"yojana": "scheme",
	"paisa":  "money",
	"paise":  "money",
}

const acceptFloor = 5 // winning score must exceed this to count as a match

// Result is the accepted outcome of scoring one query against a
// candidate set.
type Result struct {
	Match           models.Match
	Confidence      float64
	SimilarityScore float64
	RetrievalMethod models.RetrievalMethod
}

// candidateText concatenates every searchable field of a record,
// lower-cased.
func candidateText(rec *models.Record) string {
	parts := []string{
		rec.Question,
		rec.Summary,
		rec.Title,
		strings.Join(rec.Tags, " "),
		string(rec.Category),
		rec.Eligibility,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// scoreRecord accumulates the raw integer score of one candidate.
func scoreRecord(queryLower string, queryWords []string, rec *models.Record) int {
	text := candidateText(rec)
	score := 0

	// Cross-lingual anchors: stacks per cluster term and across anchors.
	for anchor, cluster := range crossLingual {
		if !strings.Contains(queryLower, anchor) {
			continue
		}
		for _, term := range cluster {
			if strings.Contains(text, term) {
				score += 10
			}
		}
	}

	// Question variants: exact beats containment beats word overlap.
	querySet := wordSet(queryWords)
	for _, variant := range rec.QuestionVariants {
		variantLower := strings.ToLower(variant)
		switch {
		case variantLower == queryLower:
			score += 50
		case strings.Contains(queryLower, variantLower) || strings.Contains(variantLower, queryLower):
			score += 30
		default:
			overlap := 0
			for w := range wordSet(strings.Fields(variantLower)) {
				if querySet[w] {
					overlap++
				}
			}
			score += overlap * 5
		}
	}

	// Tags literally present in the query.
	for _, tag := range rec.Tags {
		if strings.Contains(queryLower, strings.ToLower(tag)) {
			score += 15
		}
	}

	// Scheme/title mentioned in the query: single bonus.
	if title := strings.ToLower(rec.Title); title != "" && strings.Contains(queryLower, title) {
		score += 20
	}

	// Token sweep: every long query token found anywhere in the text.
	// Uncapped: verbose matching queries accumulate freely.
	for _, word := range queryWords {
		if utf8.RuneCountInString(word) > 2 && strings.Contains(text, word) {
			score += 3
		}
	}

	// Misspelling normalization.
	for wrong, canonical := range misspellings {
		if strings.Contains(queryLower, wrong) && strings.Contains(text, canonical) {
			score += 8
		}
	}

	return score
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Score ranks candidates and returns the single best match, or nil when
// no candidate clears the noise floor. Ties keep the first candidate seen.
func Score(query string, candidates []*models.Record) *Result {
	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)

	var best *models.Record
	bestScore := 0
	for _, rec := range candidates {
		if s := scoreRecord(queryLower, queryWords, rec); s > bestScore {
			bestScore = s
			best = rec
		}
	}

	if best == nil || bestScore <= acceptFloor {
		return nil
	}

	lexical := float64(bestScore) / 50
	if lexical > 1 {
		lexical = 1
	}
	final := lexical
	// A zero confidence_weight means "no curator prior", not zero trust.
	if best.ConfidenceWeight != 0 {
		final = (lexical + best.ConfidenceWeight) / 2
		if final > 1 {
			final = 1
		}
	}

	similarity := float64(bestScore) / 100
	if similarity > 1 {
		similarity = 1
	}

	method := models.RetrievalSemanticMatch
	if final >= 0.7 {
		method = models.RetrievalDirectMatch
	}

	return &Result{
		Match:           models.Match{Record: best, RawScore: bestScore},
		Confidence:      final,
		SimilarityScore: similarity,
		RetrievalMethod: method,
	}
}
