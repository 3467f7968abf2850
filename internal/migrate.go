package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterDoc is the legacy template shape: a YAML block between
// `---` fences at the top of a markdown file, followed by the body.
type frontmatterDoc struct {
	UseCase     string         `yaml:"use_case"`
	Tone        string         `yaml:"tone"`
	Industry    string         `yaml:"industry"`
	Tags        []string       `yaml:"tags,omitempty"`
	Role        string         `yaml:"role,omitempty"`
	Difficulty  string         `yaml:"difficulty,omitempty"`
	SuccessRate float64        `yaml:"success_rate,omitempty"`
	Notes       string         `yaml:"notes,omitempty"`
	Guidance    Guidance       `yaml:"guidance,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// MigrationResult reports a corpus migration run.
type MigrationResult struct {
	Converted int
	Skipped   []SkippedFile
}

// MigrateFrontmatter converts every legacy frontmatter-markdown
// template under root into the canonical structured YAML shape,
// writing a .yaml file next to each .md source. With removeOriginals
// the .md files are deleted after a successful conversion. One-time
// operation; the loader itself only reads the canonical shape.
func MigrateFrontmatter(root string, removeOriginals bool) MigrationResult {
	var result MigrationResult

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		if strings.EqualFold(name, "README.md") {
			return nil
		}

		if err := convertFrontmatterFile(path); err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})
			return nil
		}
		result.Converted++

		if removeOriginals {
			_ = os.Remove(path)
		}
		return nil
	})

	return result
}

func convertFrontmatterFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return err
	}

	var fm frontmatterDoc
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return fmt.Errorf("parse frontmatter: %w", err)
	}

	var doc templateDocument
	doc.Metadata.UseCase = fm.UseCase
	doc.Metadata.Tone = fm.Tone
	doc.Metadata.Industry = fm.Industry
	doc.Metadata.Tags = fm.Tags
	doc.Metadata.Role = fm.Role
	doc.Metadata.Difficulty = fm.Difficulty
	doc.Metadata.SuccessRate = fm.SuccessRate
	doc.Metadata.Notes = fm.Notes
	doc.Metadata.Extra = fm.Extra
	doc.Guidance = fm.Guidance
	doc.Template.Subject, doc.Template.Content = splitSubject(body)

	if doc.Metadata.UseCase == "" || doc.Metadata.Tone == "" || doc.Metadata.Industry == "" {
		return ErrMissingMetadata
	}
	if strings.TrimSpace(doc.Template.Content) == "" {
		return ErrEmptyContent
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	target := strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
	if err := os.WriteFile(target, out, 0644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

func splitFrontmatter(content string) (meta, body string, err error) {
	if !strings.HasPrefix(content, "---") {
		return "", "", fmt.Errorf("no frontmatter block")
	}
	rest := strings.TrimPrefix(content, "---")
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter block")
	}

	meta = rest[:idx]
	body = rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "-") // tolerate `----` fences
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return meta, strings.TrimSpace(body), nil
}

// splitSubject pulls a leading "Subject:" line out of a legacy body.
func splitSubject(body string) (subject, content string) {
	lines := strings.SplitN(body, "\n", 2)
	if len(lines) > 0 && strings.HasPrefix(strings.ToLower(lines[0]), "subject:") {
		subject = strings.TrimSpace(lines[0][len("subject:"):])
		if len(lines) == 2 {
			content = strings.TrimSpace(lines[1])
		}
		return subject, content
	}
	return "", strings.TrimSpace(body)
}
