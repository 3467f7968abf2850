package internal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FeedbackItem is one actionable point extracted from a review.
type FeedbackItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewResult is the structured form of a free-text draft critique.
type ReviewResult struct {
	EmailContent       string         `json:"email_content"`
	Critique           string         `json:"critique"`
	ActionableFeedback []FeedbackItem `json:"actionable_feedback"`
	ShouldRegenerate   bool           `json:"should_regenerate"`
	Timestamp          time.Time      `json:"timestamp"`
}

var (
	critiquePattern       = regexp.MustCompile(`(?is)## CRITIQUE\s*\n(.*?)(?:\n## |$)`)
	feedbackPattern       = regexp.MustCompile(`(?is)## FEEDBACK\s*\n(.*?)(?:\n## |$)`)
	recommendationPattern = regexp.MustCompile(`(?i)## RECOMMENDATION\s*\n(KEEP|REGENERATE)`)
	bulletPattern         = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+\.)\s+(.+)$`)
)

// ParseReview extracts the structured result from an LLM review. A
// response without the expected sections degrades to a critique-only
// result; parsing never fails.
func ParseReview(draft, response string) *ReviewResult {
	result := &ReviewResult{
		EmailContent: draft,
		Critique:     strings.TrimSpace(response),
		Timestamp:    time.Now().UTC(),
	}

	if m := critiquePattern.FindStringSubmatch(response); m != nil {
		result.Critique = strings.TrimSpace(m[1])
	}

	if m := feedbackPattern.FindStringSubmatch(response); m != nil {
		for _, item := range bulletPattern.FindAllStringSubmatch(m[1], -1) {
			text := strings.TrimSpace(item[1])
			if text == "" {
				continue
			}
			result.ActionableFeedback = append(result.ActionableFeedback, FeedbackItem{
				ID:        uuid.NewString(),
				Text:      text,
				Timestamp: result.Timestamp,
			})
		}
	}

	if m := recommendationPattern.FindStringSubmatch(response); m != nil {
		result.ShouldRegenerate = strings.EqualFold(m[1], "REGENERATE")
	}

	return result
}

const reviewPromptFormat = `Review the following outreach email draft.

%s

Respond in exactly this format:

## CRITIQUE
A short conversational assessment of the draft.

## FEEDBACK
- One actionable improvement per bullet.

## RECOMMENDATION
KEEP or REGENERATE
`

// ReviewService asks a provider to critique drafts.
type ReviewService struct {
	provider Provider
}

func NewReviewService(provider Provider) *ReviewService {
	return &ReviewService{provider: provider}
}

// Review critiques a draft. Provider errors propagate; the caller
// decides whether a failed review blocks anything (it should not).
func (s *ReviewService) Review(ctx context.Context, draft string) (*ReviewResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("provider not available")
	}

	response, err := s.provider.Complete(ctx, fmt.Sprintf(reviewPromptFormat, draft))
	if err != nil {
		return nil, fmt.Errorf("review draft: %w", err)
	}

	return ParseReview(draft, response), nil
}
