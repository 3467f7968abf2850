package v1

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const venueTemplate = `metadata:
  use_case: cold_outreach
  tone: professional
  industry: music
  tags: [booking, venue, dj]
template:
  subject: Booking inquiry for your venue
  content: |
    Dear Venue Manager,

    I am a DJ looking to book a show at your venue. I have played
    clubs across the city and would love to discuss open dates for
    the coming season.

    Best regards
`

const followUpTemplate = `metadata:
  use_case: follow_up
  tone: friendly
  industry: software
  tags: [meeting, recap]
template:
  subject: Great meeting you yesterday
  content: |
    Hi there,

    It was great meeting you yesterday. I wanted to follow up on the
    points we discussed and share the materials I mentioned.

    Cheers
`

func setupClientTest(t *testing.T) *Client {
	t.Helper()
	corpusDir := t.TempDir()

	templates := map[string]string{
		"venue.yaml":     venueTemplate,
		"follow_up.yaml": followUpTemplate,
	}
	for name, body := range templates {
		if err := os.WriteFile(filepath.Join(corpusDir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write template %s: %v", name, err)
		}
	}

	client, err := New(WithCorpusDir(corpusDir), WithMinSimilarity(0.05))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	return client
}

func TestClientLoad(t *testing.T) {
	corpusDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(corpusDir, "venue.yaml"), []byte(venueTemplate), 0644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	client, err := New(WithCorpusDir(corpusDir))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	n, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded = %d, want 1", n)
	}
}

func TestClientQuery(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	results := client.Query(context.Background(), "dj looking to book a venue show", nil)
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Template.ID != "venue.yaml" {
		t.Errorf("top result = %s, want venue.yaml", results[0].Template.ID)
	}
	if results[0].Score <= 0 {
		t.Errorf("score = %f, want > 0", results[0].Score)
	}
}

func TestClientQueryFiltered(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	results := client.Query(context.Background(), "booking a venue show", map[string]any{
		"industry": "software",
	})
	for _, r := range results {
		if r.Template.Industry != "software" {
			t.Errorf("result %s has industry %s, want software", r.Template.ID, r.Template.Industry)
		}
	}
}

func TestClientByCategory(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	templates := client.ByCategory("cold_outreach")
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if templates[0].UseCase != "cold_outreach" {
		t.Errorf("use case = %s, want cold_outreach", templates[0].UseCase)
	}
}

func TestClientByID(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	tpl, err := client.ByID("venue.yaml")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if tpl.Subject != "Booking inquiry for your venue" {
		t.Errorf("subject = %q", tpl.Subject)
	}

	_, err = client.ByID("missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientStatistics(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	stats := client.Statistics()
	if stats.TotalTemplates != 2 {
		t.Errorf("total = %d, want 2", stats.TotalTemplates)
	}
	if stats.UseCases["cold_outreach"] != 1 {
		t.Errorf("use cases = %v", stats.UseCases)
	}
}

func TestClientConversationAnchor(t *testing.T) {
	client := setupClientTest(t)
	defer client.Close()

	conv := client.NewConversation()
	ctx := context.Background()

	results := conv.Retrieve(ctx, "dj booking a show at a music venue")
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	anchor := conv.Anchor()
	if anchor == nil {
		t.Fatal("expected an anchor after first retrieval")
	}
	if anchor.Template.ID != results[0].Template.ID {
		t.Errorf("anchor = %s, want %s", anchor.Template.ID, results[0].Template.ID)
	}

	conv.Reset()
	if conv.Anchor() != nil {
		t.Error("expected anchor cleared after reset")
	}
}
