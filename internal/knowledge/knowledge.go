// Package knowledge loads the Q&A corpus from disk, validates it once at
// ingestion, and serves per-category views through an injected cache.
package knowledge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

const (
	maxTitleLen   = 100
	maxSummaryLen = 500
)

// Corpus is the full in-memory knowledge base plus its per-category
// partitions. Read-only after Load returns.
type Corpus struct {
	Records    []*models.Record
	ByCategory map[models.Category][]*models.Record
}

// ValidateRecord checks one entry against the ingestion schema. Duplicate
// variants within a record are an error here; duplicates across records
// are only logged by Load.
func ValidateRecord(rec *models.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("missing required field 'id'")
	}
	if !rec.Category.Valid() {
		return fmt.Errorf("invalid category %q", rec.Category)
	}
	if rec.Title == "" {
		return fmt.Errorf("missing required field 'title'")
	}
	if utf8.RuneCountInString(rec.Title) > maxTitleLen {
		return fmt.Errorf("field 'title' exceeds %d characters", maxTitleLen)
	}
	if rec.Question == "" {
		return fmt.Errorf("missing required field 'question_hi'")
	}
	if rec.Summary == "" {
		return fmt.Errorf("missing required field 'summary'")
	}
	if utf8.RuneCountInString(rec.Summary) > maxSummaryLen {
		return fmt.Errorf("field 'summary' exceeds %d characters", maxSummaryLen)
	}
	if rec.ConfidenceWeight < 0 || rec.ConfidenceWeight > 1 {
		return fmt.Errorf("field 'confidence_weight' must be between 0 and 1")
	}
	seen := make(map[string]bool, len(rec.QuestionVariants))
	for _, v := range rec.QuestionVariants {
		if seen[v] {
			return fmt.Errorf("duplicate question variant %q", v)
		}
		seen[v] = true
	}
	return nil
}

// Load reads every *.json file under dir (each a JSON array of records),
// validates entries, drops invalid ones and duplicate ids, and builds the
// per-category partitions. A missing directory yields an empty corpus,
// not an error: the service still answers from the generative path.
func Load(dir string, logger *log.Logger) (*Corpus, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[KB] ", log.LstdFlags)
	}

	corpus := &Corpus{ByCategory: make(map[models.Category][]*models.Record)}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning knowledge dir %q: %w", dir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Printf("no knowledge base files under %q", dir)
		return corpus, nil
	}

	seenIDs := make(map[string]string)
	seenVariants := make(map[string]string)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Printf("skipping %s: %v", filepath.Base(file), err)
			continue
		}
		var entries []*models.Record
		if err := json.Unmarshal(data, &entries); err != nil {
			logger.Printf("skipping %s: invalid JSON: %v", filepath.Base(file), err)
			continue
		}

		valid := 0
		for i, rec := range entries {
			if err := ValidateRecord(rec); err != nil {
				logger.Printf("%s entry %d: %v", filepath.Base(file), i, err)
				continue
			}
			if prev, dup := seenIDs[rec.ID]; dup {
				logger.Printf("%s entry %d: duplicate id %q (first seen in %s)", filepath.Base(file), i, rec.ID, prev)
				continue
			}
			seenIDs[rec.ID] = filepath.Base(file)

			// Cross-record duplicate variants are tolerated, only logged.
			for _, v := range rec.QuestionVariants {
				if prev, dup := seenVariants[v]; dup {
					logger.Printf("%s: duplicate variant %q (first seen in %s)", filepath.Base(file), v, prev)
				}
				seenVariants[v] = filepath.Base(file)
			}

			corpus.Records = append(corpus.Records, rec)
			corpus.ByCategory[rec.Category] = append(corpus.ByCategory[rec.Category], rec)
			valid++
		}
		logger.Printf("loaded %d/%d entries from %s", valid, len(entries), filepath.Base(file))
	}

	return corpus, nil
}

// LoadPartition reads one prebuilt category index file from indicesDir.
// Returns models.ErrPartitionNotFound when the file is absent.
func LoadPartition(indicesDir string, category models.Category) ([]*models.Record, error) {
	if !category.Valid() {
		return nil, models.ErrPartitionNotFound
	}
	path := filepath.Join(indicesDir, fmt.Sprintf("%s_index.json", category))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrPartitionNotFound
		}
		return nil, fmt.Errorf("reading partition %s: %w", path, err)
	}
	var records []*models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing partition %s: %w", path, err)
	}
	return records, nil
}

// WriteIndices saves one JSON file per non-empty category partition.
func WriteIndices(corpus *Corpus, indicesDir string) error {
	if err := os.MkdirAll(indicesDir, 0o755); err != nil {
		return fmt.Errorf("creating indices dir: %w", err)
	}
	for _, category := range models.Categories {
		records := corpus.ByCategory[category]
		if len(records) == 0 {
			continue
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s partition: %w", category, err)
		}
		path := filepath.Join(indicesDir, fmt.Sprintf("%s_index.json", category))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
