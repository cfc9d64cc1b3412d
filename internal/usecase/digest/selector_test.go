package digest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-radar/internal/domain/entity"
	"journal-radar/internal/infra/llm"
	"journal-radar/internal/resilience/retry"
)

// fakeClient returns canned responses in order and records prompts.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeClient) Complete(_ context.Context, req llm.Request) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, req.Prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func fastEnrichmentRetry() retry.Config {
	return retry.Config{
		MaxAttempts:    2,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func testJournal(name, id string) entity.Journal {
	return entity.Journal{Name: name, ID: id, FeedURL: "https://example.com/" + id + "/rss"}
}

func makeCandidates(t *testing.T, n int) []*entity.Article {
	t.Helper()
	out := make([]*entity.Article, 0, n)
	for i := 0; i < n; i++ {
		art, err := entity.NewArticle(
			testJournal("Nature Plants", "nature-plants"),
			fmt.Sprintf("Candidate %d", i),
			fmt.Sprintf("https://example.com/%d", i),
			fmt.Sprintf("Abstract %d", i),
			time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		out = append(out, art)
	}
	return out
}

func TestSelector_RanksByScore(t *testing.T) {
	client := &fakeClient{responses: []string{`[
		{"id": 0, "score": 3, "keep": true, "reason": "ok"},
		{"id": 1, "score": 9.5, "keep": true, "reason": "strong"},
		{"id": 2, "score": 7, "keep": true, "reason": "good"}
	]`}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 3)

	got := s.Select(context.Background(), "Nature Plants", candidates, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Candidate 1", got[0].Title)
	assert.Equal(t, "Candidate 2", got[1].Title)
}

func TestSelector_KeepFalseExcluded(t *testing.T) {
	client := &fakeClient{responses: []string{`[
		{"id": 0, "score": 9, "keep": false},
		{"id": 1, "score": 4, "keep": true}
	]`}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 2)

	got := s.Select(context.Background(), "Nature Plants", candidates, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Candidate 1", got[0].Title)
}

func TestSelector_NothingKeptFallsBackToScores(t *testing.T) {
	// When every verdict says keep=false, the highest scored entries still
	// win so the journal is not silently dropped.
	client := &fakeClient{responses: []string{`[
		{"id": 0, "score": 2, "keep": false},
		{"id": 1, "score": 8, "keep": false}
	]`}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 2)

	got := s.Select(context.Background(), "Nature Plants", candidates, 1)

	require.Len(t, got, 1)
	assert.Equal(t, "Candidate 1", got[0].Title)
}

func TestSelector_MissingKeepDefaultsTrue(t *testing.T) {
	client := &fakeClient{responses: []string{`[{"id": 0, "score": 6}]`}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 1)

	got := s.Select(context.Background(), "Nature Plants", candidates, 3)

	require.Len(t, got, 1)
}

func TestSelector_MalformedEntriesDropped(t *testing.T) {
	client := &fakeClient{responses: []string{`[
		{"id": 1.5, "score": 9, "keep": true},
		{"id": "abc", "score": 9, "keep": true},
		{"id": 99, "score": 9, "keep": true},
		{"id": -1, "score": 9, "keep": true},
		{"id": 0, "score": "high", "keep": true},
		{"id": 1, "score": 7, "keep": true}
	]`}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 3)

	got := s.Select(context.Background(), "Nature Plants", candidates, 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Candidate 1", got[0].Title)
}

func TestSelector_ProseWrappedJSONParsed(t *testing.T) {
	client := &fakeClient{responses: []string{
		"Here are my picks:\n```json\n[{\"id\": 0, \"score\": 8, \"keep\": true}]\n```\nDone.",
	}}
	s := NewSelector(client, nil)
	candidates := makeCandidates(t, 1)

	got := s.Select(context.Background(), "Nature Plants", candidates, 1)

	require.Len(t, got, 1)
}

func TestSelector_UnparseableRetriedThenFallback(t *testing.T) {
	client := &fakeClient{responses: []string{"no json here", "still nothing"}}
	s := NewSelector(client, nil)
	s.retryConfig = fastEnrichmentRetry()
	candidates := makeCandidates(t, 4)

	got := s.Select(context.Background(), "Nature Plants", candidates, 2)

	assert.Equal(t, 2, client.calls)
	require.Len(t, got, 2)
	assert.Equal(t, "Candidate 0", got[0].Title)
	assert.Equal(t, "Candidate 1", got[1].Title)
}

func TestSelector_RecoversOnRetry(t *testing.T) {
	client := &fakeClient{
		responses: []string{"garbage", `[{"id": 2, "score": 9, "keep": true}]`},
	}
	s := NewSelector(client, nil)
	s.retryConfig = fastEnrichmentRetry()
	candidates := makeCandidates(t, 3)

	got := s.Select(context.Background(), "Nature Plants", candidates, 1)

	assert.Equal(t, 2, client.calls)
	require.Len(t, got, 1)
	assert.Equal(t, "Candidate 2", got[0].Title)
}

func TestSelector_NilClientDegradedMode(t *testing.T) {
	s := NewSelector(nil, nil)
	candidates := makeCandidates(t, 5)

	got := s.Select(context.Background(), "Nature Plants", candidates, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Candidate 0", got[0].Title)
	assert.Equal(t, "Candidate 2", got[2].Title)
}

func TestSelector_EmptyCandidates(t *testing.T) {
	client := &fakeClient{}
	s := NewSelector(client, nil)

	got := s.Select(context.Background(), "Nature Plants", nil, 3)

	assert.Empty(t, got)
	assert.Equal(t, 0, client.calls)
}

func TestSelector_PromptTruncatesLongAbstracts(t *testing.T) {
	client := &fakeClient{responses: []string{`[{"id": 0, "score": 5}]`}}
	s := NewSelector(client, nil)

	long := ""
	for i := 0; i < 900; i++ {
		long += "x"
	}
	art, err := entity.NewArticle(testJournal("Cell", "cell"), "Long abstract", "https://example.com/x", long, time.Now())
	require.NoError(t, err)

	s.Select(context.Background(), "Cell", []*entity.Article{art}, 1)

	require.Len(t, client.prompts, 1)
	assert.NotContains(t, client.prompts[0], long)
	assert.Contains(t, client.prompts[0], long[:800]+"...")
}

func TestSelector_EmptyCandidatesNotLoggedAsDegraded(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewSelector(&fakeClient{}, logger)

	got := s.Select(context.Background(), "Nature Plants", nil, 3)

	assert.Empty(t, got)
	assert.NotContains(t, buf.String(), "degraded")
}

func TestSelector_NilClientLogsDegraded(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewSelector(nil, logger)

	got := s.Select(context.Background(), "Nature Plants", makeCandidates(t, 2), 1)

	require.Len(t, got, 1)
	assert.Contains(t, buf.String(), "degraded mode")
}

func TestParseVerdicts_NoArray(t *testing.T) {
	_, err := parseVerdicts("the model apologizes", 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparseable))
}

func TestParseVerdicts_StableOrderForEqualScores(t *testing.T) {
	verdicts, err := parseVerdicts(`[
		{"id": 2, "score": 5},
		{"id": 0, "score": 5},
		{"id": 1, "score": 5}
	]`, 3)
	require.NoError(t, err)

	candidates := makeCandidates(t, 3)
	got := rankAndPick(candidates, verdicts, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Candidate 2", got[0].Title)
	assert.Equal(t, "Candidate 0", got[1].Title)
	assert.Equal(t, "Candidate 1", got[2].Title)
}
