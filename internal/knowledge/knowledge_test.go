package knowledge

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

func validRecord(id string, category models.Category) *models.Record {
	return &models.Record{
		ID:               id,
		Category:         category,
		Title:            "पीएम किसान सम्मान निधि",
		Question:         "पीएम किसान योजना क्या है?",
		QuestionVariants: []string{"pm kisan kya hai", "किसान योजना"},
		Summary:          "किसानों को सालाना 6000 रुपये तीन किस्तों में मिलते हैं।",
		Tags:             []string{"pmkisan", "kisan"},
		LastUpdated:      "2024-02-26",
		ConfidenceWeight: 0.9,
	}
}

func TestValidateRecord(t *testing.T) {
	rec := validRecord("schemes_001", models.CategoryGovernmentSchemes)
	if err := ValidateRecord(rec); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	bad := validRecord("schemes_002", "welfare")
	if err := ValidateRecord(bad); err == nil || !strings.Contains(err.Error(), "invalid category") {
		t.Fatalf("expected invalid category error, got %v", err)
	}

	dup := validRecord("schemes_003", models.CategoryGovernmentSchemes)
	dup.QuestionVariants = []string{"same", "same"}
	if err := ValidateRecord(dup); err == nil || !strings.Contains(err.Error(), "duplicate question variant") {
		t.Fatalf("expected duplicate variant error, got %v", err)
	}

	weight := validRecord("schemes_004", models.CategoryGovernmentSchemes)
	weight.ConfidenceWeight = 1.5
	if err := ValidateRecord(weight); err == nil {
		t.Fatalf("expected confidence_weight error")
	}

	long := validRecord("schemes_005", models.CategoryGovernmentSchemes)
	long.Summary = strings.Repeat("क", 501)
	if err := ValidateRecord(long); err == nil {
		t.Fatalf("expected summary length error")
	}
}

func TestLoad_SkipsInvalidAndDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	content := `[
		{"id":"a_001","category":"agriculture","title":"t","question_hi":"q","question_variants":["v1"],"summary":"s","tags":[],"last_updated":"2024-01-01","confidence_weight":0.8},
		{"id":"a_001","category":"agriculture","title":"t","question_hi":"q2","question_variants":["v2"],"summary":"s2","tags":[],"last_updated":"2024-01-01","confidence_weight":0.8},
		{"id":"a_002","category":"nope","title":"t","question_hi":"q3","question_variants":[],"summary":"s3","tags":[],"last_updated":"2024-01-01","confidence_weight":0.8}
	]`
	if err := os.WriteFile(filepath.Join(dir, "agriculture.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	corpus, err := Load(dir, log.New(log.Writer(), "[KB] ", 0))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corpus.Records) != 1 {
		t.Fatalf("expected 1 valid record, got %d", len(corpus.Records))
	}
	if len(corpus.ByCategory[models.CategoryAgriculture]) != 1 {
		t.Fatalf("expected 1 agriculture record, got %d", len(corpus.ByCategory[models.CategoryAgriculture]))
	}
}

func TestLoad_MissingDirYieldsEmptyCorpus(t *testing.T) {
	corpus, err := Load(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(corpus.Records) != 0 {
		t.Fatalf("expected empty corpus, got %d records", len(corpus.Records))
	}
}

func TestCache_LoadsOnceAndMemoizes(t *testing.T) {
	calls := 0
	loader := func(category models.Category) ([]*models.Record, error) {
		calls++
		return []*models.Record{validRecord("h_001", models.CategoryHealth)}, nil
	}
	c := NewCache(loader, nil)

	first := c.Get(models.CategoryHealth)
	second := c.Get(models.CategoryHealth)
	if calls != 1 {
		t.Fatalf("expected 1 loader call, got %d", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected cached records, got %d and %d", len(first), len(second))
	}
}

func TestCache_FallsBackToCorpusScan(t *testing.T) {
	corpus := &Corpus{
		Records: []*models.Record{
			validRecord("a_001", models.CategoryAgriculture),
			validRecord("h_001", models.CategoryHealth),
		},
	}
	loader := func(category models.Category) ([]*models.Record, error) {
		return nil, models.ErrPartitionNotFound
	}
	c := NewCache(loader, corpus)

	records := c.Get(models.CategoryHealth)
	if len(records) != 1 || records[0].ID != "h_001" {
		t.Fatalf("expected corpus fallback to return h_001, got %+v", records)
	}
}

func TestCache_AbsentPartitionReturnsEmptyNotError(t *testing.T) {
	c := NewCache(func(models.Category) ([]*models.Record, error) {
		return nil, models.ErrPartitionNotFound
	}, nil)
	if records := c.Get(models.CategoryLegal); len(records) != 0 {
		t.Fatalf("expected empty slice, got %d records", len(records))
	}
}

func TestOfflinePack_TopByConfidenceWeight(t *testing.T) {
	low := validRecord("a_001", models.CategoryAgriculture)
	low.ConfidenceWeight = 0.2
	high := validRecord("a_002", models.CategoryAgriculture)
	high.ConfidenceWeight = 0.95
	mid := validRecord("a_003", models.CategoryAgriculture)
	mid.ConfidenceWeight = 0.5

	pack := OfflinePack([]*models.Record{low, high, mid}, 2)
	if len(pack) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(pack))
	}
	if pack[0].Scheme != high.Title || pack[0].Answer != high.Summary {
		t.Fatalf("expected highest-weight record first, got %+v", pack[0])
	}
}

func TestSummarize_NilCorpus(t *testing.T) {
	stats := Summarize(nil)
	if stats.Total != 0 || stats.AvgConfidence != 0 {
		t.Fatalf("expected zero stats for nil corpus, got %+v", stats)
	}
	if stats.PerCategory == nil {
		t.Fatal("expected non-nil per-category map")
	}
}

func TestWriteAndLoadPartition(t *testing.T) {
	dir := t.TempDir()
	corpus := &Corpus{
		Records:    []*models.Record{validRecord("h_001", models.CategoryHealth)},
		ByCategory: map[models.Category][]*models.Record{models.CategoryHealth: {validRecord("h_001", models.CategoryHealth)}},
	}
	if err := WriteIndices(corpus, dir); err != nil {
		t.Fatalf("WriteIndices: %v", err)
	}

	records, err := LoadPartition(dir, models.CategoryHealth)
	if err != nil {
		t.Fatalf("LoadPartition: %v", err)
	}
	if len(records) != 1 || records[0].ID != "h_001" {
		t.Fatalf("unexpected partition contents: %+v", records)
	}

	if _, err := LoadPartition(dir, models.CategoryLegal); err != models.ErrPartitionNotFound {
		t.Fatalf("expected ErrPartitionNotFound, got %v", err)
	}
}
