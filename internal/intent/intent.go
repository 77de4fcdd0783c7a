// Package intent routes a query to one of the eight knowledge-base
// categories with a rule-based keyword classifier.
package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

var categoryKeywords = map[models.Category][]string{
	models.CategoryGovernmentSchemes: {
		"योजना", "सरकारी", "आवेदन", "पात्रता", "लाभ", "किस्त", "रजिस्ट्रेशन",
		"प्रधानमंत्री", "मुख्यमंत्री", "केंद्र", "राज्य", "सब्सिडी", "अनुदान",
		"scheme", "yojana", "government", "sarkar", "apply", "benefit", "registration",
		"pm", "pradhan mantri", "subsidy", "grant", "eligibility", "patrata",
		"pmkisan", "pm-kisan", "kisan", "ayushman", "ujjwala", "jan dhan", "mgnrega",
		"nrega", "awas", "mudra", "pension", "scholarship",
	},
	models.CategoryAgriculture: {
		"खेती", "फसल", "किसान", "बीज", "खाद", "कीटनाशक", "सिंचाई", "मौसम",
		"बुवाई", "कटाई", "मंडी", "भाव", "कीड़े", "रोग", "जैविक", "उर्वरक",
		"farming", "crop", "farmer", "seed", "fertilizer", "pesticide", "irrigation",
		"weather", "sowing", "harvest", "mandi", "price", "pest", "disease", "organic",
		"गेहूं", "धान", "चावल", "मक्का", "दाल", "सब्जी", "टमाटर", "आलू", "प्याज",
		"wheat", "rice", "paddy", "maize", "dal", "vegetable", "tomato", "potato", "onion",
	},
	models.CategoryHealth: {
		"स्वास्थ्य", "बीमारी", "इलाज", "दवा", "डॉक्टर", "अस्पताल", "बुखार", "दर्द",
		"खांसी", "सर्दी", "पेट", "चोट", "प्राथमिक", "टीका", "गर्भावस्था", "बच्चा",
		"health", "disease", "treatment", "medicine", "doctor", "hospital", "fever",
		"pain", "cough", "cold", "stomach", "injury", "first aid", "vaccine", "pregnancy",
		"दस्त", "उल्टी", "सिरदर्द", "चक्कर", "कमजोरी",
		"bukhar", "dast", "ulti", "headache", "weakness", "diarrhea",
	},
	models.CategoryEducation: {
		"शिक्षा", "पढ़ाई", "स्कूल", "कॉलेज", "छात्रवृत्ति", "परीक्षा", "कोर्स",
		"प्रशिक्षण", "कौशल", "डिग्री", "सर्टिफिकेट", "ऑनलाइन", "पुस्तक",
		"education", "study", "school", "college", "scholarship", "exam", "course",
		"training", "skill", "degree", "certificate", "online", "book", "learning",
		"साक्षरता", "व्यावसायिक", "तकनीकी", "कंप्यूटर", "अंग्रेजी",
		"literacy", "vocational", "technical", "computer", "english",
	},
	models.CategoryFinancial: {
		"पैसा", "बैंक", "खाता", "लोन", "ब्याज", "बचत", "निवेश", "बीमा",
		"क्रेडिट", "डेबिट", "एटीएम", "चेक", "ट्रांसफर", "जमा", "निकासी",
		"money", "bank", "account", "loan", "interest", "saving", "investment", "insurance",
		"credit", "debit", "atm", "cheque", "transfer", "deposit", "withdrawal",
		"upi", "paytm", "phonepe", "gpay", "bhim", "netbanking", "mobile banking",
		"kcc", "kisan credit", "mudra", "microfinance", "shg",
	},
	models.CategoryLegal: {
		"कानून", "अधिकार", "न्याय", "वकील", "कोर्ट", "केस", "शिकायत", "पुलिस",
		"जमीन", "संपत्ति", "विवाद", "दस्तावेज", "रजिस्ट्री", "उपभोक्ता",
		"law", "legal", "right", "justice", "lawyer", "court", "case", "complaint", "police",
		"land", "property", "dispute", "document", "registry", "consumer",
		"rti", "fir", "domestic violence", "घरेलू हिंसा", "helpline", "legal aid",
		"land rights", "भूमि अधिकार", "consumer rights", "उपभोक्ता अधिकार",
	},
	models.CategoryDisaster: {
		"आपदा", "बाढ़", "सूखा", "भूकंप", "तूफान", "आग", "दुर्घटना", "आपातकाल",
		"बचाव", "राहत", "सुरक्षा", "चेतावनी", "निकासी", "शरण",
		"disaster", "flood", "drought", "earthquake", "cyclone", "fire", "accident", "emergency",
		"rescue", "relief", "safety", "warning", "evacuation", "shelter",
		"snake bite", "सांप", "बिजली", "lightning", "storm",
		"emergency number", "आपातकालीन नंबर", "108", "112",
	},
	models.CategoryLivelihood: {
		"रोजगार", "व्यवसाय", "काम", "नौकरी", "कमाई", "आय", "उद्यम", "स्वरोजगार",
		"दुकान", "व्यापार", "बिक्री", "बाजार", "ग्राहक", "मुनाफा",
		"livelihood", "business", "work", "job", "earning", "income", "enterprise", "self-employment",
		"shop", "trade", "sale", "market", "customer", "profit",
		"मुर्गी पालन", "डेयरी", "बकरी", "मधुमक्खी", "मशरूम", "हस्तशिल्प",
		"poultry", "dairy", "goat", "bee", "mushroom", "handicraft",
		"small business", "छोटा व्यवसाय", "startup", "women entrepreneurship",
	},
}

// partitionFiles maps a category to its prebuilt index filename. A missing
// entry means "search the full corpus".
var partitionFiles = map[models.Category]string{
	models.CategoryGovernmentSchemes: "government_schemes_index.json",
	models.CategoryAgriculture:       "agriculture_index.json",
	models.CategoryHealth:            "health_index.json",
	models.CategoryEducation:         "education_index.json",
	models.CategoryFinancial:         "financial_index.json",
	models.CategoryLegal:             "legal_index.json",
	models.CategoryDisaster:          "disaster_index.json",
	models.CategoryLivelihood:        "livelihood_index.json",
}

// Classifier scores a query against per-category keyword alternations.
// Safe for concurrent use after construction.
type Classifier struct {
	patterns map[models.Category]*regexp.Regexp
}

// NewClassifier compiles one case-insensitive alternation per category.
func NewClassifier() *Classifier {
	patterns := make(map[models.Category]*regexp.Regexp, len(categoryKeywords))
	for category, keywords := range categoryKeywords {
		escaped := make([]string, len(keywords))
		for i, kw := range keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		patterns[category] = regexp.MustCompile("(?i)" + strings.Join(escaped, "|"))
	}
	return &Classifier{patterns: patterns}
}

// Classify picks the best-scoring category for the query. Per-category
// score is match count plus total matched length / 100; the length term
// breaks ties toward longer, more specific hits. Ties between categories
// go to the first declared category. Confidence is a step function of the
// winning score. No hit anywhere returns ("general", 0.0).
func (c *Classifier) Classify(query string) (models.Category, float64) {
	q := strings.ToLower(strings.TrimSpace(query))

	best := models.CategoryGeneral
	bestScore := 0.0
	for _, category := range models.Categories {
		matches := c.patterns[category].FindAllString(q, -1)
		if len(matches) == 0 {
			continue
		}
		score := float64(len(matches))
		for _, m := range matches {
			score += float64(utf8.RuneCountInString(m)) / 100
		}
		if score > bestScore {
			bestScore = score
			best = category
		}
	}

	if best == models.CategoryGeneral {
		return models.CategoryGeneral, 0.0
	}

	var confidence float64
	switch {
	case bestScore >= 3:
		confidence = 0.95
	case bestScore >= 2:
		confidence = 0.85
	case bestScore >= 1:
		confidence = 0.70
	default:
		confidence = 0.50
	}
	return best, confidence
}

// PartitionFile returns the index filename for a category, or "" for
// general (meaning the caller should search everything).
func PartitionFile(category models.Category) string {
	return partitionFiles[category]
}
