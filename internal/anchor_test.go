package internal

import (
	"context"
	"testing"
)

func setupAnchored(t *testing.T) (*AnchoredRetriever, *History) {
	t.Helper()
	r := setupRetriever(t)

	anchored := NewAnchoredRetriever(r, QueryOptions{TopK: 2, MinSimilarity: 0.05})
	return anchored, NewHistory()
}

func TestAnchorSetOnFirstRetrieval(t *testing.T) {
	anchored, history := setupAnchored(t)
	ctx := context.Background()

	history.AddInitialPrompt("email to a venue manager about booking a dj show")
	results := anchored.Retrieve(ctx, history, "email to a venue manager about booking a dj show")

	if len(results) == 0 {
		t.Fatal("expected results")
	}

	anchor := anchored.Anchor()
	if anchor == nil {
		t.Fatal("expected anchor after first retrieval")
	}
	if anchor.Record.ID != results[0].Record.ID {
		t.Errorf("anchor = %s, want %s", anchor.Record.ID, results[0].Record.ID)
	}
}

func TestAnchorSurvivesTopicDrift(t *testing.T) {
	anchored, history := setupAnchored(t)
	ctx := context.Background()

	history.AddInitialPrompt("email to a venue manager about booking a dj show")
	first := anchored.Retrieve(ctx, history, "email to a venue manager about booking a dj show")
	if len(first) == 0 {
		t.Fatal("expected initial results")
	}
	anchorID := anchored.Anchor().Record.ID

	history.AddFeedback("make it shorter and mention the product demo pipeline")
	second := anchored.Retrieve(ctx, history, "make it shorter and mention the product demo pipeline")

	found := false
	for _, res := range second {
		if res.Record.ID == anchorID {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("anchor %s missing from follow-up results", anchorID)
	}
	if anchored.Anchor().Record.ID != anchorID {
		t.Errorf("anchor changed to %s", anchored.Anchor().Record.ID)
	}
}

func TestAnchorPrependedWhenMissing(t *testing.T) {
	anchored, history := setupAnchored(t)
	ctx := context.Background()

	history.AddInitialPrompt("booking a dj show at a music venue")
	anchored.Retrieve(ctx, history, "booking a dj show at a music venue")
	anchor := anchored.Anchor()
	if anchor == nil {
		t.Fatal("expected anchor")
	}

	// A query matching nothing still carries the anchor.
	history.AddFeedback("xylophone zeppelin quasar")
	results := anchored.Retrieve(ctx, history, "xylophone zeppelin quasar")

	if len(results) == 0 {
		t.Fatal("expected anchored result")
	}
	if results[0].Record.ID != anchor.Record.ID {
		t.Errorf("first result = %s, want anchor %s", results[0].Record.ID, anchor.Record.ID)
	}
}

func TestAnchorNotSetBelowThreshold(t *testing.T) {
	r := setupRetriever(t)
	anchored := NewAnchoredRetriever(r, QueryOptions{TopK: 2, MinSimilarity: 0.999})
	history := NewHistory()

	history.AddInitialPrompt("completely unrelated gibberish zzz")
	results := anchored.Retrieve(context.Background(), history, "completely unrelated gibberish zzz")

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if anchored.Anchor() != nil {
		t.Error("expected no anchor without a qualifying result")
	}
}

func TestAnchorReset(t *testing.T) {
	anchored, history := setupAnchored(t)
	ctx := context.Background()

	history.AddInitialPrompt("booking a dj show at a music venue")
	anchored.Retrieve(ctx, history, "booking a dj show at a music venue")
	if anchored.Anchor() == nil {
		t.Fatal("expected anchor")
	}

	anchored.Reset()
	if anchored.Anchor() != nil {
		t.Error("expected anchor cleared")
	}
}

func TestEnhancedQueryJoinsUserMessages(t *testing.T) {
	history := NewHistory()
	history.AddInitialPrompt("email to a venue")
	history.AddDraft("Dear Venue Manager, ...")
	history.AddFeedback("make it shorter")

	got := enhancedQuery(history, "make it shorter")
	want := "email to a venue make it shorter"
	if got != want {
		t.Errorf("enhancedQuery = %q, want %q", got, want)
	}
}

func TestEnhancedQueryAppendsUnseenLatest(t *testing.T) {
	history := NewHistory()
	history.AddInitialPrompt("email to a venue")

	got := enhancedQuery(history, "add a call to action")
	want := "email to a venue add a call to action"
	if got != want {
		t.Errorf("enhancedQuery = %q, want %q", got, want)
	}
}

func TestEnhancedQueryEmptyHistory(t *testing.T) {
	history := NewHistory()

	if got := enhancedQuery(history, "first message"); got != "first message" {
		t.Errorf("enhancedQuery = %q", got)
	}
}
