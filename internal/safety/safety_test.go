package safety

import (
	"testing"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

func TestCheck_SuicideQueryReturnsEmergencyAnswer(t *testing.T) {
	c := NewClassifier()

	isCrisis, crisisType, ans := c.Check("मैं आत्महत्या करना चाहता हूं")
	if !isCrisis {
		t.Fatalf("expected crisis, got none")
	}
	if crisisType != models.CrisisSuicide {
		t.Fatalf("expected crisis type suicide, got %s", crisisType)
	}
	if ans.Source != models.SourceSafetyFilter {
		t.Fatalf("expected source safety_filter, got %s", ans.Source)
	}
	if ans.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %f", ans.Confidence)
	}
	found := false
	for _, h := range ans.EmergencyHelpline {
		if h.Number == "112" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected helpline 112 in %+v", ans.EmergencyHelpline)
	}
}

func TestCheck_FirstHitWinsInEnumerationOrder(t *testing.T) {
	c := NewClassifier()

	// "जहर खा" belongs to both the suicide and poison sets; suicide is
	// scanned first and must win.
	_, crisisType, _ := c.Check("जहर खा लूंगा")
	if crisisType != models.CrisisSuicide {
		t.Fatalf("expected suicide (first in scan order), got %s", crisisType)
	}
}

func TestCheck_ViolenceIncludesWomenHelpline(t *testing.T) {
	c := NewClassifier()

	isCrisis, crisisType, ans := c.Check("पति मुझे मारता है")
	if !isCrisis || crisisType != models.CrisisViolence {
		t.Fatalf("expected violence crisis, got crisis=%v type=%s", isCrisis, crisisType)
	}
	found := false
	for _, h := range ans.EmergencyHelpline {
		if h.Number == "181" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected women helpline 181, got %+v", ans.EmergencyHelpline)
	}
}

func TestCheck_EnglishAndHinglishKeywords(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		query string
		want  models.CrisisType
	}{
		{"I want to KILL MYSELF", models.CrisisSuicide},
		{"too many pills kha li", models.CrisisOverdose},
		{"khud ko chot pahunchana chahta hu", models.CrisisSelfHarm},
	}
	for _, tc := range cases {
		isCrisis, got, _ := c.Check(tc.query)
		if !isCrisis || got != tc.want {
			t.Fatalf("query %q: expected %s, got crisis=%v type=%s", tc.query, tc.want, isCrisis, got)
		}
	}
}

func TestCheck_SafeQueriesPassThrough(t *testing.T) {
	c := NewClassifier()

	for _, q := range []string{
		"पीएम किसान योजना क्या है?",
		"खेती में कीड़े लगे हैं",
		"scholarship के लिए apply कैसे करें?",
	} {
		isCrisis, crisisType, ans := c.Check(q)
		if isCrisis || crisisType != "" || ans != nil {
			t.Fatalf("query %q: expected no crisis, got type=%s", q, crisisType)
		}
	}
}
