package pipeline

import (
	"unicode/utf8"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// Summary caps per network class, in runes. 4g and unknown classes pass
// through untouched.
const (
	summaryLimit2G = 200
	summaryLimit3G = 400
)

// AdaptForNetwork trims an Answer in place for constrained links. An
// answer that already fits passes through whole; only once compression
// kicks in on 2g are the eligibility and document lists dropped too.
// Emergency helplines are never dropped.
func AdaptForNetwork(ans *models.Answer, network models.NetworkClass) {
	if ans == nil {
		return
	}

	var limit int
	switch network {
	case models.Network2G:
		limit = summaryLimit2G
	case models.Network3G:
		limit = summaryLimit3G
	default:
		return
	}

	original := utf8.RuneCountInString(ans.Summary)
	if original <= limit {
		return
	}
	ans.Summary = truncateRunes(ans.Summary, limit) + "..."
	ans.Compressed = true
	ans.OriginalLength = original
	if network == models.Network2G {
		ans.Eligibility = ""
		ans.DocumentsRequired = nil
	}
}
