package internal

import (
	"context"
	"strings"
)

// AnchoredRetriever wraps a shared Retriever with per-conversation
// sticky context: the first result that clears the threshold becomes the
// conversation's anchor and is re-injected into every later result set
// that no longer contains it. Feedback turns ("make it shorter") drift
// semantically away from the original request; without the anchor, the
// template guidance would vanish exactly when revisions need it most.
//
// One AnchoredRetriever is owned by exactly one conversation. It must
// not be shared across conversations.
type AnchoredRetriever struct {
	retriever *Retriever
	opts      QueryOptions
	anchor    *QueryResult
}

func NewAnchoredRetriever(retriever *Retriever, opts QueryOptions) *AnchoredRetriever {
	return &AnchoredRetriever{
		retriever: retriever,
		opts:      opts,
	}
}

// Retrieve queries with the enhanced context built from every
// user-authored message so far, the latest last. While empty, the cache
// anchors on the best result; while anchored, a missing anchor is
// prepended to a freshly allocated result list, never spliced into the
// live one.
func (a *AnchoredRetriever) Retrieve(ctx context.Context, history *History, latest string) []QueryResult {
	results := a.retriever.Query(ctx, enhancedQuery(history, latest), a.opts)

	if a.anchor == nil {
		if len(results) > 0 {
			top := results[0]
			a.anchor = &top
		}
		return results
	}

	for _, res := range results {
		if res.Record.ID == a.anchor.Record.ID {
			return results
		}
	}

	out := make([]QueryResult, 0, len(results)+1)
	out = append(out, *a.anchor)
	out = append(out, results...)
	return out
}

// Anchor returns the cached anchor, or nil while the cache is empty.
func (a *AnchoredRetriever) Anchor() *QueryResult {
	return a.anchor
}

// Reset clears the anchor. Must be called whenever the owning
// conversation is cleared or restarted.
func (a *AnchoredRetriever) Reset() {
	a.anchor = nil
}

// enhancedQuery concatenates all user turns in chronological order,
// appending the latest message when it is not already the final turn.
func enhancedQuery(history *History, latest string) string {
	var msgs []string
	if history != nil {
		msgs = history.UserMessages()
	}
	if latest != "" && (len(msgs) == 0 || msgs[len(msgs)-1] != latest) {
		msgs = append(msgs, latest)
	}
	return strings.Join(msgs, " ")
}
