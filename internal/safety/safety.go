// Package safety detects crisis queries and answers them from static
// templates. A crisis never reaches the generative fallback.
package safety

import (
	"regexp"
	"strings"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// crisisKeywords maps each crisis type to its keyword set (Hindi +
// English + Hinglish). Scan order is fixed: the first type whose pattern
// hits wins, no multi-label resolution.
var crisisOrder = []models.CrisisType{
	models.CrisisSuicide,
	models.CrisisPoison,
	models.CrisisOverdose,
	models.CrisisViolence,
	models.CrisisSelfHarm,
}

var crisisKeywords = map[models.CrisisType][]string{
	models.CrisisSuicide: {
		"आत्महत्या", "खुदकुशी", "मरना चाहता", "मरना चाहती", "जीना नहीं",
		"जान देना", "मौत", "खुद को मार", "जहर खा", "फांसी",
		"suicide", "kill myself", "end my life", "want to die", "death wish",
		"suicidal", "hanging", "jump off", "overdose",
		"khudkushi", "marna chahta", "jaan dena", "zindagi khatam",
	},
	models.CrisisPoison: {
		"जहर", "विष", "कीटनाशक पी", "दवा की ओवरडोज", "जहर खा",
		"रासायनिक", "जहरीला", "नशा",
		"poison", "poisoning", "toxic", "pesticide drink", "chemical ingestion",
		"rat poison", "insecticide drink",
		"zeher", "vish", "keetnaashak pee",
	},
	models.CrisisOverdose: {
		"दवा की अधिक मात्रा", "गोलियां खा ली", "बहुत सारी दवा",
		"नशीली दवा", "ड्रग्स ओवरडोज",
		"overdose", "too many pills", "drug overdose", "medication overdose",
		"sleeping pills", "tablet overdose",
		"dawai ki adhik matra", "goliya kha li", "pills overdose",
	},
	models.CrisisViolence: {
		"मारपीट", "हिंसा", "घरेलू हिंसा", "पति मारता", "पत्नी को मारना",
		"बच्चे को मारना", "शारीरिक हिंसा", "यौन हिंसा", "बलात्कार",
		"मुझे मारता", "मुझे पीटता", "मार खाती", "पीटता है",
		"violence", "domestic violence", "physical abuse", "beating",
		"assault", "rape", "sexual violence", "abuse", "beats me", "hitting me",
		"marpeet", "hinsa", "ghar ki hinsa", "pati maarta", "mujhe maarta",
	},
	models.CrisisSelfHarm: {
		"खुद को चोट", "खुद को काटना", "खुद को जलाना", "नुकसान पहुंचाना",
		"self harm", "cut myself", "hurt myself", "burn myself",
		"self injury", "cutting",
		"khud ko chot", "khud ko kaatna",
	},
}

// baseHelplines is the static, always-present part of the helpline table.
var baseHelplines = []models.Helpline{
	{Name: "राष्ट्रीय आपातकालीन नंबर", Number: "112", Description: "सभी आपातकालीन सेवाओं के लिए"},
	{Name: "एम्बुलेंस सेवा", Number: "108", Description: "चिकित्सा आपातकाल"},
}

var extraHelplines = map[models.CrisisType][]models.Helpline{
	models.CrisisSuicide: {
		{Name: "मानसिक स्वास्थ्य हेल्पलाइन", Number: "08046110007", Description: "24x7 परामर्श सेवा"},
		{Name: "वंदरेवाला फाउंडेशन", Number: "9999666555", Description: "संकट परामर्श"},
	},
	models.CrisisPoison: {
		{Name: "पॉइजन कंट्रोल सेंटर", Number: "1800-11-4088", Description: "जहर संबंधी आपातकाल"},
	},
	models.CrisisOverdose: {
		{Name: "पॉइजन कंट्रोल सेंटर", Number: "1800-11-4088", Description: "जहर संबंधी आपातकाल"},
	},
	models.CrisisViolence: {
		{Name: "पुलिस", Number: "100", Description: "कानून व्यवस्था"},
		{Name: "महिला हेल्पलाइन", Number: "181", Description: "महिलाओं के लिए 24x7"},
		{Name: "चाइल्ड हेल्पलाइन", Number: "1098", Description: "बच्चों की सुरक्षा"},
	},
	models.CrisisSelfHarm: {
		{Name: "मानसिक स्वास्थ्य हेल्पलाइन", Number: "08046110007", Description: "24x7 परामर्श"},
	},
}

var crisisSummaries = map[models.CrisisType]string{
	models.CrisisSuicide: `🚨 आपातकालीन सहायता

यदि आप या कोई परेशानी में है, तो कृपया तुरंत मदद लें:

📞 तुरंत संपर्क करें:
• राष्ट्रीय आपातकालीन: 112
• मानसिक स्वास्थ्य हेल्पलाइन: 08046110007
• वंदरेवाला फाउंडेशन: 9999666555

आप अकेले नहीं हैं। मदद उपलब्ध है। कृपया किसी विश्वसनीय व्यक्ति से बात करें।`,

	models.CrisisPoison: `🚨 जहर/ओवरडोज आपातकाल

तुरंत कार्रवाई करें:

1️⃣ तुरंत एम्बुलेंस बुलाएं: 108 या 112
2️⃣ व्यक्ति को उल्टी न कराएं (जब तक डॉक्टर न कहे)
3️⃣ व्यक्ति को करवट पर लिटाएं
4️⃣ जहर/दवा की बोतल साथ रखें
5️⃣ नजदीकी अस्पताल जाएं

📞 आपातकालीन नंबर:
• एम्बुलेंस: 108
• राष्ट्रीय आपातकालीन: 112
• पॉइजन कंट्रोल: 1800-11-4088`,

	models.CrisisViolence: `🚨 हिंसा/दुर्व्यवहार सहायता

आप सुरक्षित हैं। मदद उपलब्ध है:

📞 तुरंत संपर्क करें:
• पुलिस: 100 या 112
• महिला हेल्पलाइन: 181
• चाइल्ड हेल्पलाइन: 1098

🛡️ सुरक्षा कदम:
1. सुरक्षित स्थान पर जाएं
2. पुलिस को सूचित करें
3. चोट लगी हो तो अस्पताल जाएं
4. विश्वसनीय व्यक्ति को बताएं

कानूनी सहायता और परामर्श उपलब्ध है।`,

	models.CrisisSelfHarm: `🚨 मानसिक स्वास्थ्य सहायता

कृपया तुरंत मदद लें:

📞 हेल्पलाइन:
• मानसिक स्वास्थ्य: 08046110007
• आपातकालीन: 112
• वंदरेवाला: 9999666555

आप अकेले नहीं हैं। पेशेवर मदद उपलब्ध है।

🏥 नजदीकी:
• सरकारी अस्पताल जाएं
• मनोचिकित्सक से मिलें
• परिवार/दोस्त को बताएं`,
}

// Classifier matches queries against the crisis keyword sets. It is
// stateless after construction and safe for concurrent use.
type Classifier struct {
	patterns map[models.CrisisType]*regexp.Regexp
}

// NewClassifier compiles one case-insensitive alternation per crisis type.
func NewClassifier() *Classifier {
	patterns := make(map[models.CrisisType]*regexp.Regexp, len(crisisKeywords))
	for crisis, keywords := range crisisKeywords {
		escaped := make([]string, len(keywords))
		for i, kw := range keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		patterns[crisis] = regexp.MustCompile("(?i)" + strings.Join(escaped, "|"))
	}
	return &Classifier{patterns: patterns}
}

// Check scans the query for crisis keywords. On a hit it returns the
// crisis type and a fully templated emergency Answer with confidence 1.0.
// A miss returns (false, "", nil): missed crisis language is an accepted
// failure mode, a false positive only short-circuits to a safe template.
func (c *Classifier) Check(query string) (bool, models.CrisisType, *models.Answer) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, crisis := range crisisOrder {
		if c.patterns[crisis].MatchString(q) {
			return true, crisis, c.emergencyAnswer(crisis)
		}
	}
	return false, "", nil
}

func (c *Classifier) emergencyAnswer(crisis models.CrisisType) *models.Answer {
	helplines := make([]models.Helpline, 0, len(baseHelplines)+3)
	helplines = append(helplines, baseHelplines...)
	helplines = append(helplines, extraHelplines[crisis]...)

	summary := crisisSummaries[crisis]
	if crisis == models.CrisisOverdose {
		// Overdose shares the poison first-aid template.
		summary = crisisSummaries[models.CrisisPoison]
	}

	return &models.Answer{
		Summary:           summary,
		SchemeName:        "आपातकालीन सहायता",
		Source:            models.SourceSafetyFilter,
		Confidence:        1.0,
		EmergencyHelpline: helplines,
	}
}
