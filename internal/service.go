package internal

import (
	"context"
	"fmt"
)

// Conversation owns one drafting session: its history and its anchored
// retriever. Sessions never share these; the underlying Retriever is
// the only shared state.
type Conversation struct {
	History  *History
	anchored *AnchoredRetriever
}

func NewConversation(retriever *Retriever, opts QueryOptions) *Conversation {
	return &Conversation{
		History:  NewHistory(),
		anchored: NewAnchoredRetriever(retriever, opts),
	}
}

// Retrieve runs anchored retrieval with the conversation's full user
// context.
func (c *Conversation) Retrieve(ctx context.Context, latest string) []QueryResult {
	return c.anchored.Retrieve(ctx, c.History, latest)
}

// Anchor exposes the conversation's sticky template, or nil.
func (c *Conversation) Anchor() *QueryResult {
	return c.anchored.Anchor()
}

// Reset clears history and anchor together so no guidance leaks into
// the next conversation.
func (c *Conversation) Reset() {
	c.History.Clear()
	c.anchored.Reset()
}

// DraftService turns conversation turns into email drafts: anchored
// template retrieval, prompt assembly, one provider call.
type DraftService struct {
	retriever *Retriever
	provider  Provider
	builder   *PromptBuilder
	opts      QueryOptions
}

func NewDraftService(retriever *Retriever, provider Provider, builder *PromptBuilder, opts QueryOptions) *DraftService {
	return &DraftService{
		retriever: retriever,
		provider:  provider,
		builder:   builder,
		opts:      opts,
	}
}

func (s *DraftService) NewConversation() *Conversation {
	return NewConversation(s.retriever, s.opts)
}

// Draft handles one user turn: the first becomes the initial prompt,
// later ones are feedback. Retrieval failure only means the prompt
// carries no reference templates; the draft is still generated.
func (s *DraftService) Draft(ctx context.Context, conv *Conversation, request string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("provider not available")
	}

	first := len(conv.History.UserMessages()) == 0
	if first {
		conv.History.AddInitialPrompt(request)
	} else {
		conv.History.AddFeedback(request)
	}

	refs := conv.Retrieve(ctx, request)

	prompt := s.builder.DraftPrompt(conv.History, refs, request)
	draft, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate draft: %w", err)
	}

	if first {
		conv.History.AddDraft(draft)
	} else {
		conv.History.AddRevisedDraft(draft)
	}

	return draft, nil
}

// BuildPrompt exposes prompt assembly without calling the provider,
// for dry runs and tests.
func (s *DraftService) BuildPrompt(ctx context.Context, conv *Conversation, request string) string {
	refs := conv.Retrieve(ctx, request)
	return s.builder.DraftPrompt(conv.History, refs, request)
}
