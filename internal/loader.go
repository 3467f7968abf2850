package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// templateDocument is the canonical on-disk shape: a YAML document with
// metadata, template and optional guidance sections. The legacy
// frontmatter-markdown shape is only handled by the migrate command.
type templateDocument struct {
	Metadata struct {
		UseCase     string         `yaml:"use_case"`
		Tone        string         `yaml:"tone"`
		Industry    string         `yaml:"industry"`
		Tags        []string       `yaml:"tags,omitempty"`
		Role        string         `yaml:"role,omitempty"`
		Difficulty  string         `yaml:"difficulty,omitempty"`
		SuccessRate float64        `yaml:"success_rate,omitempty"`
		Notes       string         `yaml:"notes,omitempty"`
		Extra       map[string]any `yaml:",inline"`
	} `yaml:"metadata"`
	Template struct {
		Subject string `yaml:"subject,omitempty"`
		Content string `yaml:"content"`
	} `yaml:"template"`
	Guidance Guidance `yaml:"guidance,omitempty"`
}

// SkippedFile records a corpus file that failed validation or parsing.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadResult reports what a corpus load accepted and skipped.
type LoadResult struct {
	Accepted int
	Skipped  []SkippedFile
}

// Loader discovers template records under a corpus root. Loading is
// idempotent: discovery order is lexical, so the same corpus always
// produces the same records in the same order.
type Loader struct {
	root       string
	normalizer *Normalizer
	maxRecords int
}

func NewLoader(root string, normalizer *Normalizer, maxRecords int) *Loader {
	if normalizer == nil {
		normalizer = DefaultNormalizer()
	}
	if maxRecords <= 0 {
		maxRecords = 1000
	}
	return &Loader{root: root, normalizer: normalizer, maxRecords: maxRecords}
}

// Load walks the corpus root and parses every candidate template file.
// A missing or unreadable root yields an empty corpus, not an error;
// individual bad files are skipped and reported in the result.
func (l *Loader) Load() ([]*TemplateRecord, LoadResult) {
	var records []*TemplateRecord
	var result LoadResult

	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, result
	}

	_ = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isTemplateFile(d.Name()) {
			return nil
		}
		if len(records) >= l.maxRecords {
			return filepath.SkipAll
		}

		rec, err := l.loadFile(path)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})
			return nil
		}
		records = append(records, rec)
		return nil
	})

	result.Accepted = len(records)
	return records, result
}

func (l *Loader) loadFile(path string) (*TemplateRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	var doc templateDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	rec := &TemplateRecord{
		ID:          filepath.ToSlash(rel),
		Path:        path,
		Subject:     doc.Template.Subject,
		Content:     doc.Template.Content,
		UseCase:     doc.Metadata.UseCase,
		Tone:        doc.Metadata.Tone,
		Industry:    doc.Metadata.Industry,
		Tags:        doc.Metadata.Tags,
		Role:        doc.Metadata.Role,
		Difficulty:  doc.Metadata.Difficulty,
		SuccessRate: doc.Metadata.SuccessRate,
		Notes:       doc.Metadata.Notes,
		Extra:       doc.Metadata.Extra,
		Guidance:    doc.Guidance,
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	rec.WordCount = len(strings.Fields(rec.Content))
	rec.MatchText = l.matchText(rec)

	return rec, nil
}

// matchText builds the text the index embeds for a record: tags, notes,
// subject and body, normalized. Deterministic for a given file.
func (l *Loader) matchText(rec *TemplateRecord) string {
	var parts []string
	if len(rec.Tags) > 0 {
		parts = append(parts, strings.Join(rec.Tags, " "))
	}
	if rec.Notes != "" {
		parts = append(parts, rec.Notes)
	}
	if rec.Subject != "" {
		parts = append(parts, rec.Subject)
	}
	parts = append(parts, rec.Content)

	return l.normalizer.Normalize(strings.Join(parts, " "))
}

func isTemplateFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
