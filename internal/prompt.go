package internal

import (
	"fmt"
	"strings"
)

const (
	maxReferenceTemplates = 3
	maxReferenceChars     = 1200
	maxGuidanceItems      = 5
)

var toneInstructions = map[string]string{
	"professional": "Use clear, concise, and formal business language. Avoid slang, contractions, or overly casual expressions. Structure the email with a logical flow and keep it polite, objective, and appropriate for a business audience.",
	"casual":       "Use simple, easy-to-understand language. Get to the point quickly so the email is not a burden to read. Contractions and a relaxed, conversational style are fine.",
	"friendly":     "Write in a warm, approachable, and personable manner. Use positive language and show genuine interest in the recipient. Light pleasantries are fine; keep it professional underneath.",
	"formal":       "Use highly structured, polite, and respectful language. Avoid contractions and colloquialisms. Address the recipient with appropriate titles and follow traditional business etiquette.",
	"natural":      "Use simple language and avoid sounding machine-written. No exotic words, no overly peppy phrasing, no em dashes.",
}

// ToneInstructions returns writing instructions for a tone, or an empty
// string for an unknown tone.
func ToneInstructions(tone string) string {
	return toneInstructions[strings.ToLower(tone)]
}

// PromptBuilder assembles LLM prompts from the conversation, the user
// profile and retrieved reference templates.
type PromptBuilder struct {
	profile Profile
	tone    string
}

func NewPromptBuilder(profile Profile, tone string) *PromptBuilder {
	if tone == "" {
		tone = "professional"
	}
	return &PromptBuilder{profile: profile, tone: tone}
}

// ReferenceBlock formats retrieved templates into a bounded text block:
// at most maxReferenceTemplates references, each body truncated, with
// the template's guidance lists appended. Empty input yields an empty
// string so the prompt simply carries no references.
func (b *PromptBuilder) ReferenceBlock(results []QueryResult) string {
	if len(results) == 0 {
		return ""
	}
	if len(results) > maxReferenceTemplates {
		results = results[:maxReferenceTemplates]
	}

	var sb strings.Builder
	sb.WriteString("REFERENCE TEMPLATES\n")
	sb.WriteString("Use these as style and structure references, not text to copy verbatim.\n")

	for i, res := range results {
		rec := res.Record
		sb.WriteString(fmt.Sprintf("\n--- Reference %d (%s, %s, %s; relevance %.2f) ---\n",
			i+1, rec.UseCase, rec.Industry, rec.Tone, res.Score))

		body := rec.RawContent()
		if len(body) > maxReferenceChars {
			body = body[:maxReferenceChars] + "..."
		}
		sb.WriteString(body)
		sb.WriteString("\n")

		writeGuidance(&sb, rec.Guidance)
	}

	return sb.String()
}

func writeGuidance(sb *strings.Builder, g Guidance) {
	if g.Empty() {
		return
	}
	if len(g.AvoidPhrases) > 0 {
		sb.WriteString("Avoid phrases: " + joinBounded(g.AvoidPhrases) + "\n")
	}
	if len(g.PreferredPhrases) > 0 {
		sb.WriteString("Preferred phrases: " + joinBounded(g.PreferredPhrases) + "\n")
	}
	if len(g.WritingTips) > 0 {
		sb.WriteString("Writing tips:\n")
		tips := g.WritingTips
		if len(tips) > maxGuidanceItems {
			tips = tips[:maxGuidanceItems]
		}
		for _, tip := range tips {
			sb.WriteString("  - " + tip + "\n")
		}
	}
}

func joinBounded(items []string) string {
	if len(items) > maxGuidanceItems {
		items = items[:maxGuidanceItems]
	}
	return strings.Join(items, "; ")
}

// DraftPrompt builds the full prompt for an initial draft or a
// revision. The conversation context carries prior drafts and feedback,
// so the same shape serves both.
func (b *PromptBuilder) DraftPrompt(history *History, refs []QueryResult, request string) string {
	var sb strings.Builder

	sb.WriteString("You are an assistant that drafts outreach emails.\n")

	if b.profile.Name != "" || b.profile.Title != "" || b.profile.Company != "" {
		sb.WriteString(fmt.Sprintf("\nThe sender is %s", b.profile.Name))
		if b.profile.Title != "" {
			sb.WriteString(", " + b.profile.Title)
		}
		if b.profile.Company != "" {
			sb.WriteString(" at " + b.profile.Company)
		}
		sb.WriteString(".\n")
	}

	if instructions := ToneInstructions(b.tone); instructions != "" {
		sb.WriteString("\nTONE\n" + instructions + "\n")
	}

	if block := b.ReferenceBlock(refs); block != "" {
		sb.WriteString("\n" + block)
	}

	if history != nil {
		if context := history.Context(0); context != "" {
			sb.WriteString("\nCONVERSATION SO FAR\n" + context + "\n")
		}
	}

	sb.WriteString("\nREQUEST\n" + request + "\n")
	sb.WriteString("\nWrite the complete email, subject line first. Return only the email.\n")

	return sb.String()
}
