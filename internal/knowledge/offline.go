package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// OfflineEntry is the simplified record shape shipped to low-bandwidth
// clients for on-device answering.
type OfflineEntry struct {
	Question string   `json:"q"`
	Answer   string   `json:"a"`
	Scheme   string   `json:"s"`
	Variants []string `json:"variants"`
}

// OfflinePack picks the top n records by curator confidence weight and
// strips them down to the offline shape.
func OfflinePack(records []*models.Record, n int) []OfflineEntry {
	sorted := make([]*models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConfidenceWeight > sorted[j].ConfidenceWeight
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	pack := make([]OfflineEntry, 0, len(sorted))
	for _, rec := range sorted {
		scheme := rec.Title
		if scheme == "" {
			scheme = string(rec.Category)
		}
		pack = append(pack, OfflineEntry{
			Question: rec.Question,
			Answer:   rec.Summary,
			Scheme:   scheme,
			Variants: rec.QuestionVariants,
		})
	}
	return pack
}

// WriteOfflinePack serializes the pack compactly to path.
func WriteOfflinePack(records []*models.Record, n int, path string) error {
	data, err := json.Marshal(OfflinePack(records, n))
	if err != nil {
		return fmt.Errorf("encoding offline pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing offline pack: %w", err)
	}
	return nil
}

// Stats summarizes the corpus for the index command and the stats API.
type Stats struct {
	Total           int                     `json:"total"`
	PerCategory     map[models.Category]int `json:"per_category"`
	AvgConfidence   float64                 `json:"avg_confidence"`
	WithEligibility int                     `json:"with_eligibility"`
	WithDocuments   int                     `json:"with_documents"`
	WithBenefits    int                     `json:"with_benefits"`
	WithLinks       int                     `json:"with_links"`
	TotalVariants   int                     `json:"total_variants"`
}

// Summarize computes corpus statistics. A nil corpus summarizes to zero.
func Summarize(corpus *Corpus) Stats {
	stats := Stats{PerCategory: make(map[models.Category]int)}
	if corpus == nil {
		return stats
	}
	stats.Total = len(corpus.Records)
	var confSum float64
	for _, rec := range corpus.Records {
		stats.PerCategory[rec.Category]++
		confSum += rec.ConfidenceWeight
		if rec.Eligibility != "" {
			stats.WithEligibility++
		}
		if len(rec.DocumentsRequired) > 0 {
			stats.WithDocuments++
		}
		if rec.Benefits != "" {
			stats.WithBenefits++
		}
		if rec.OfficialLink != "" {
			stats.WithLinks++
		}
		stats.TotalVariants += len(rec.QuestionVariants)
	}
	if stats.Total > 0 {
		stats.AvgConfidence = confSum / float64(stats.Total)
	}
	return stats
}
