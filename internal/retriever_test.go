package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const venueFixture = `metadata:
  use_case: cold_outreach
  tone: professional
  industry: music
  tags: [booking, venue, dj, gig]
  success_rate: 0.35
template:
  subject: Booking inquiry for your venue
  content: |
    Dear Venue Manager,

    I am a DJ looking to book a gig at your venue. I have played
    clubs across the city and would love to discuss open dates for
    the coming season. My sets draw a solid crowd and I can share
    recordings from recent shows.

    Best regards
guidance:
  avoid_phrases: ["to whom it may concern"]
  writing_tips: ["mention a specific past show"]
`

const recruiterFixture = `metadata:
  use_case: job_application
  tone: formal
  industry: software
  tags: [recruiter, engineering, resume]
template:
  subject: Application for the backend engineer role
  content: |
    Dear Hiring Manager,

    I am writing to apply for the backend engineer position. I have
    eight years of experience building distributed systems and would
    welcome the chance to discuss how I can contribute to your team.

    Sincerely
`

const salesFixture = `metadata:
  use_case: cold_outreach
  tone: friendly
  industry: software
  tags: [sales, demo, product]
template:
  subject: Quick question about your deployment pipeline
  content: |
    Hi,

    I noticed your team ships weekly and thought our deployment
    product might save you a few hours per release. Would you be open
    to a short demo next week?

    Cheers
`

func writeFixtureCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	fixtures := map[string]string{
		"venue.yaml":     venueFixture,
		"recruiter.yaml": recruiterFixture,
		"sales.yaml":     salesFixture,
	}
	for name, body := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

func setupRetriever(t *testing.T) *Retriever {
	t.Helper()
	dir := writeFixtureCorpus(t)

	r := NewRetriever(dir, RetrievalConfig{Dimension: 16, TopK: 3})
	result := r.LoadCorpus(context.Background())
	if result.Accepted != 3 {
		t.Fatalf("accepted = %d, want 3", result.Accepted)
	}
	return r
}

func TestQueryRanksRelevantFirst(t *testing.T) {
	r := setupRetriever(t)

	results := r.Query(context.Background(), "dj looking to book a show at a music venue", QueryOptions{
		TopK:          3,
		MinSimilarity: 0.05,
	})

	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Record.ID != "venue.yaml" {
		t.Errorf("top result = %s, want venue.yaml", results[0].Record.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %f after %f", results[i].Score, results[i-1].Score)
		}
	}
}

func TestQueryRespectsTopK(t *testing.T) {
	r := setupRetriever(t)

	results := r.Query(context.Background(), "outreach email", QueryOptions{TopK: 1, MinSimilarity: 0})
	if len(results) > 1 {
		t.Errorf("got %d results, want at most 1", len(results))
	}
}

func TestQueryThresholdMonotonic(t *testing.T) {
	r := setupRetriever(t)
	ctx := context.Background()

	loose := r.Query(ctx, "booking a venue show", QueryOptions{TopK: 3, MinSimilarity: 0.05})
	strict := r.Query(ctx, "booking a venue show", QueryOptions{TopK: 3, MinSimilarity: 0.95})

	if len(strict) > len(loose) {
		t.Errorf("strict threshold returned more results: %d > %d", len(strict), len(loose))
	}
	for _, res := range strict {
		if res.Score < 0.95 {
			t.Errorf("result %s below threshold: %f", res.Record.ID, res.Score)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	r := setupRetriever(t)

	results := r.Query(context.Background(), "outreach email to a company", QueryOptions{
		TopK:          3,
		MinSimilarity: 0,
		Filters:       map[string]any{"industry": "software"},
	})

	for _, res := range results {
		if res.Record.Industry != "software" {
			t.Errorf("filter leaked: %s has industry %s", res.Record.ID, res.Record.Industry)
		}
	}
}

func TestQueryListFilterOverlap(t *testing.T) {
	r := setupRetriever(t)

	results := r.Query(context.Background(), "booking a dj show", QueryOptions{
		TopK:          3,
		MinSimilarity: 0,
		Filters:       map[string]any{"tags": "dj"},
	})

	if len(results) == 0 {
		t.Fatal("expected tag-filtered results")
	}
	for _, res := range results {
		found := false
		for _, tag := range res.Record.Tags {
			if tag == "dj" {
				found = true
			}
		}
		if !found {
			t.Errorf("result %s missing tag dj", res.Record.ID)
		}
	}
}

func TestQueryUnmatchableFilter(t *testing.T) {
	r := setupRetriever(t)

	results := r.Query(context.Background(), "booking a venue", QueryOptions{
		TopK:    3,
		Filters: map[string]any{"industry": "aerospace"},
	})
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestQueryEmptyCorpus(t *testing.T) {
	r := NewRetriever(filepath.Join(t.TempDir(), "missing"), RetrievalConfig{})
	r.LoadCorpus(context.Background())

	results := r.Query(context.Background(), "anything at all", QueryOptions{TopK: 3})
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestQuerySingleTemplateCorpus(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "venue.yaml"), []byte(venueFixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRetriever(dir, RetrievalConfig{Dimension: 16, TopK: 3})
	result := r.LoadCorpus(context.Background())
	if result.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", result.Accepted)
	}

	results := r.Query(context.Background(), "dj booking a show at a venue", QueryOptions{
		TopK:          3,
		MinSimilarity: 0.05,
	})
	if len(results) != 1 {
		t.Fatalf("expected the single template, got %d results", len(results))
	}
	if results[0].Record.ID != "venue.yaml" {
		t.Errorf("result = %s", results[0].Record.ID)
	}
}

func TestQuerySingleTemplateThresholds(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "venue.yaml"), []byte(venueFixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRetriever(dir, RetrievalConfig{Dimension: 16, TopK: 3})
	r.LoadCorpus(context.Background())
	ctx := context.Background()

	loose := r.Query(ctx, "I'm a DJ looking to book a gig", QueryOptions{
		TopK:          3,
		MinSimilarity: 0.3,
	})
	if len(loose) != 1 {
		t.Fatalf("expected exactly one result at 0.3, got %d", len(loose))
	}
	if loose[0].Record.ID != "venue.yaml" {
		t.Errorf("result = %s", loose[0].Record.ID)
	}
	if loose[0].Score < 0.3 {
		t.Errorf("score = %f, want >= 0.3", loose[0].Score)
	}

	// Partial term overlap with a lone template must not clear a near-exact
	// similarity bar.
	strict := r.Query(ctx, "I'm a DJ looking to book a gig", QueryOptions{
		TopK:          3,
		MinSimilarity: 0.95,
	})
	if len(strict) != 0 {
		t.Errorf("expected no results at 0.95, got %d (score %f)", len(strict), strict[0].Score)
	}
}

func TestByCategory(t *testing.T) {
	r := setupRetriever(t)

	cold := r.ByCategory("cold_outreach")
	if len(cold) != 2 {
		t.Errorf("cold_outreach = %d, want 2", len(cold))
	}

	if got := r.ByCategory("nonexistent"); len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestByID(t *testing.T) {
	r := setupRetriever(t)

	rec := r.ByID("recruiter.yaml")
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.UseCase != "job_application" {
		t.Errorf("use case = %s", rec.UseCase)
	}

	if r.ByID("missing.yaml") != nil {
		t.Error("expected nil for unknown ID")
	}
}

func TestStatistics(t *testing.T) {
	r := setupRetriever(t)

	stats := r.Statistics()
	if stats.TotalTemplates != 3 {
		t.Errorf("total = %d, want 3", stats.TotalTemplates)
	}
	if stats.UseCases["cold_outreach"] != 2 {
		t.Errorf("use cases = %v", stats.UseCases)
	}
	if stats.Industries["software"] != 2 {
		t.Errorf("industries = %v", stats.Industries)
	}
	if stats.AverageWordCount <= 0 {
		t.Errorf("average word count = %f", stats.AverageWordCount)
	}
}

func TestReloadPicksUpNewTemplates(t *testing.T) {
	dir := writeFixtureCorpus(t)

	r := NewRetriever(dir, RetrievalConfig{Dimension: 16, TopK: 3})
	first := r.LoadCorpus(context.Background())
	if first.Accepted != 3 {
		t.Fatalf("accepted = %d, want 3", first.Accepted)
	}

	extra := filepath.Join(dir, "zz_extra.yaml")
	if err := os.WriteFile(extra, []byte(salesFixture), 0644); err != nil {
		t.Fatalf("write extra: %v", err)
	}

	second := r.Reload(context.Background())
	if second.Accepted != 4 {
		t.Errorf("accepted after reload = %d, want 4", second.Accepted)
	}
	if r.ByID("zz_extra.yaml") == nil {
		t.Error("expected reloaded template to be queryable")
	}
}
