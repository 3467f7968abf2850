package internal

import (
	"errors"
	"strings"
)

var (
	ErrMissingMetadata = errors.New("missing required metadata")
	ErrEmptyContent    = errors.New("template content is empty")
	ErrNotBuilt        = errors.New("index not built")
)

// Guidance carries writing instructions attached to a template.
type Guidance struct {
	AvoidPhrases     []string `yaml:"avoid_phrases,omitempty"`
	PreferredPhrases []string `yaml:"preferred_phrases,omitempty"`
	WritingTips      []string `yaml:"writing_tips,omitempty"`
}

func (g Guidance) Empty() bool {
	return len(g.AvoidPhrases) == 0 && len(g.PreferredPhrases) == 0 && len(g.WritingTips) == 0
}

// TemplateRecord is one email template loaded from the corpus. Required
// metadata lives in named fields; anything else the file carried is kept
// in Extra. MatchText and Embedding are set during load/build and never
// mutated afterwards.
type TemplateRecord struct {
	ID      string
	Path    string
	Subject string
	Content string

	UseCase  string
	Tone     string
	Industry string

	Tags        []string
	Role        string
	Difficulty  string
	SuccessRate float64
	Notes       string
	Extra       map[string]any

	Guidance Guidance

	WordCount int
	MatchText string
	Embedding []float64
}

// RawContent returns the template body as written, subject line included.
func (r *TemplateRecord) RawContent() string {
	if r.Subject != "" {
		return "Subject: " + r.Subject + "\n\n" + r.Content
	}
	return r.Content
}

// Field resolves a metadata field by its corpus-file key, for filter
// matching. The bool reports whether the key names a known field or an
// Extra entry.
func (r *TemplateRecord) Field(key string) (any, bool) {
	switch key {
	case "use_case":
		return r.UseCase, true
	case "tone":
		return r.Tone, true
	case "industry":
		return r.Industry, true
	case "tags":
		return r.Tags, true
	case "role":
		return r.Role, true
	case "difficulty":
		return r.Difficulty, true
	case "success_rate":
		return r.SuccessRate, true
	case "notes":
		return r.Notes, true
	}
	v, ok := r.Extra[key]
	return v, ok
}

// Validate reports whether the record satisfies the corpus contract:
// all required metadata fields present and non-empty, non-empty content.
func (r *TemplateRecord) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	if r.UseCase == "" || r.Tone == "" || r.Industry == "" {
		return ErrMissingMetadata
	}
	return nil
}

// QueryResult pairs a retrieved record with its cosine similarity score.
type QueryResult struct {
	Record *TemplateRecord
	Score  float64
}
