// Package digest implements the journal digest pipeline: fetch each
// journal's RSS feed, drop non-research entries, let a language model pick
// the most relevant articles, summarize each one and synthesize a
// per-journal trend narrative. Journals run concurrently and fail
// independently; one broken feed never empties the whole digest.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"journal-radar/internal/domain/entity"
	"journal-radar/internal/observability/metrics"
)

// FeedItem is one normalized entry from a journal feed, before it becomes
// a domain Article.
type FeedItem struct {
	Title       string
	Link        string
	Abstract    string
	PublishedAt time.Time
}

// FeedFetcher retrieves and normalizes a journal's feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]FeedItem, error)
}

// ContentFetcher retrieves the readable text of an article page. It is
// used to replace abstracts that arrive truncated or empty in the feed.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// TextCleaner strips markup and collapses whitespace in feed text.
type TextCleaner func(string) string

// Config holds the per-run tunables of the pipeline.
type Config struct {
	// MaxItemsPerJournal caps how many feed entries are considered per
	// journal before filtering.
	MaxItemsPerJournal int

	// TargetPerJournal is the maximum number of articles selected per
	// journal.
	TargetPerJournal int

	// Parallelism bounds how many journals are processed concurrently.
	Parallelism int

	// AbstractThreshold triggers full-page content fetching for selected
	// articles whose abstract is shorter than this many bytes. Zero
	// disables enhancement.
	AbstractThreshold int

	// MaxRetries overrides the attempt count for enrichment calls. Zero
	// keeps the retry preset unchanged.
	MaxRetries int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxItemsPerJournal: 50,
		TargetPerJournal:   15,
		Parallelism:        5,
		AbstractThreshold:  200,
		MaxRetries:         3,
	}
}

// Result is the merged outcome of one digest run.
type Result struct {
	// Articles holds every selected article across journals, with
	// summaries attached, in journal completion order.
	Articles []*entity.Article

	// Trends maps journal display name to its trend narrative. Journals
	// without a narrative are absent.
	Trends map[string]string

	// Failed lists display names of journals that produced no articles
	// because of an error or panic.
	Failed []string
}

// Service orchestrates the digest pipeline across journals.
type Service struct {
	fetcher        FeedFetcher
	cleaner        TextCleaner
	contentFetcher ContentFetcher
	selector       *Selector
	summarizer     *Summarizer
	trends         *TrendSynthesizer
	config         Config
	logger         *slog.Logger
}

// NewService wires the pipeline together. contentFetcher may be nil to
// disable abstract enhancement; cleaner may be nil to skip text cleanup.
func NewService(
	fetcher FeedFetcher,
	cleaner TextCleaner,
	contentFetcher ContentFetcher,
	selector *Selector,
	summarizer *Summarizer,
	trends *TrendSynthesizer,
	config Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cleaner == nil {
		cleaner = func(s string) string { return s }
	}
	if config.MaxRetries > 0 {
		if selector != nil {
			selector.retryConfig.MaxAttempts = config.MaxRetries
		}
		if summarizer != nil {
			summarizer.retryConfig.MaxAttempts = config.MaxRetries
		}
		if trends != nil {
			trends.retryConfig.MaxAttempts = config.MaxRetries
		}
	}
	return &Service{
		fetcher:        fetcher,
		cleaner:        cleaner,
		contentFetcher: contentFetcher,
		selector:       selector,
		summarizer:     summarizer,
		trends:         trends,
		config:         config,
		logger:         logger,
	}
}

// journalResult carries one journal's outcome to the collector.
type journalResult struct {
	journal  entity.Journal
	articles []*entity.Article
	trend    string
	failed   bool
}

// Run processes all journals and merges their results. Individual journal
// failures are recorded in Result.Failed and do not abort the run; only a
// run where every journal came back empty returns ErrEmptyDigest alongside
// the (empty) result.
func (s *Service) Run(ctx context.Context, journals []entity.Journal) (*Result, error) {
	start := time.Now()
	s.logger.Info("digest run started",
		slog.Int("journals", len(journals)),
		slog.Int("parallelism", s.config.Parallelism))

	results := make(chan journalResult, len(journals))

	var g errgroup.Group
	g.SetLimit(s.config.Parallelism)
	for _, journal := range journals {
		journal := journal
		g.Go(func() error {
			// When the run deadline has passed, pending journals are
			// skipped instead of starting doomed work.
			if ctx.Err() != nil {
				s.logger.Warn("skipping journal, run deadline exceeded",
					slog.String("journal", journal.Name))
				results <- journalResult{journal: journal, failed: true}
				return nil
			}
			results <- s.processJournal(ctx, journal)
			return nil
		})
	}

	// The collector is the only goroutine writing to merged state.
	merged := &Result{Trends: make(map[string]string)}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range results {
			if res.failed {
				merged.Failed = append(merged.Failed, res.journal.Name)
				metrics.RecordJournalProcessed("failure")
				continue
			}
			if len(res.articles) == 0 {
				metrics.RecordJournalProcessed("empty")
				continue
			}
			merged.Articles = append(merged.Articles, res.articles...)
			if res.trend != "" {
				merged.Trends[res.journal.Name] = res.trend
			}
			metrics.RecordJournalProcessed("success")
		}
	}()

	// Worker closures never return errors; Wait only synchronizes.
	_ = g.Wait()
	close(results)
	<-done

	elapsed := time.Since(start)
	if len(merged.Articles) == 0 {
		s.logger.Error("digest run produced no articles",
			slog.Int("journals", len(journals)),
			slog.Int("failed", len(merged.Failed)),
			slog.Duration("elapsed", elapsed))
		metrics.RecordDigestRun("empty", elapsed)
		return merged, ErrEmptyDigest
	}

	s.logger.Info("digest run finished",
		slog.Int("articles", len(merged.Articles)),
		slog.Int("journals_with_trends", len(merged.Trends)),
		slog.Int("failed_journals", len(merged.Failed)),
		slog.Duration("elapsed", elapsed))
	metrics.RecordDigestRun("success", elapsed)
	return merged, nil
}

// processJournal runs the full pipeline for one journal. A panic anywhere
// in the pipeline is contained here and reported as a failed journal so
// the remaining journals keep running.
func (s *Service) processJournal(ctx context.Context, journal entity.Journal) (res journalResult) {
	res = journalResult{journal: journal}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("journal processing panicked",
				slog.String("journal", journal.Name),
				slog.Any("panic", r))
			res = journalResult{journal: journal, failed: true}
		}
	}()

	logger := s.logger.With(slog.String("journal", journal.Name), slog.String("journal_id", journal.ID))

	candidates, err := s.fetchArticles(ctx, journal)
	if err != nil {
		logger.Error("feed fetch failed", slog.String("error", err.Error()))
		res.failed = true
		return res
	}
	if len(candidates) == 0 {
		logger.Info("no research articles in feed")
		return res
	}

	selected := s.selector.Select(ctx, journal.Name, candidates, s.config.TargetPerJournal)
	metrics.RecordArticlesSelected(journal.ID, len(selected))
	if len(selected) == 0 {
		return res
	}

	for _, art := range selected {
		s.enhanceAbstract(ctx, art)
		art.Summary = s.summarizer.Summarize(ctx, art.Title, art.Abstract, art.Journal)
	}

	res.articles = selected
	res.trend = s.trends.Synthesize(ctx, journal.Name, selected)
	return res
}

// fetchArticles retrieves the feed, normalizes entries into Articles and
// applies the research-content filter. Entries without a title or link are
// dropped.
func (s *Service) fetchArticles(ctx context.Context, journal entity.Journal) ([]*entity.Article, error) {
	fetchStart := time.Now()
	items, err := s.fetcher.Fetch(ctx, journal.FeedURL)
	if err != nil {
		metrics.RecordFeedFetchError(journal.ID, "fetch")
		return nil, fmt.Errorf("fetch %s: %w", journal.FeedURL, err)
	}
	metrics.RecordFeedFetch(journal.ID, time.Since(fetchStart))
	metrics.RecordArticlesFetched(journal.ID, len(items))

	if len(items) > s.config.MaxItemsPerJournal {
		items = items[:s.config.MaxItemsPerJournal]
	}

	articles := make([]*entity.Article, 0, len(items))
	for _, item := range items {
		title := s.cleaner(item.Title)
		abstract := s.cleaner(item.Abstract)
		if !IsCoreResearch(title, abstract) {
			continue
		}
		art, err := entity.NewArticle(journal, title, item.Link, abstract, item.PublishedAt)
		if err != nil {
			s.logger.Debug("dropping invalid feed entry",
				slog.String("journal", journal.Name),
				slog.String("error", err.Error()))
			continue
		}
		articles = append(articles, art)
	}

	s.logger.Info("feed processed",
		slog.String("journal", journal.Name),
		slog.Int("entries", len(items)),
		slog.Int("research_articles", len(articles)))
	return articles, nil
}

// enhanceAbstract replaces a short or missing abstract with readable text
// extracted from the article page. Enhancement is best effort: on any
// failure the feed abstract stays as is.
func (s *Service) enhanceAbstract(ctx context.Context, art *entity.Article) {
	if s.contentFetcher == nil || s.config.AbstractThreshold <= 0 {
		return
	}
	if len(art.Abstract) >= s.config.AbstractThreshold {
		metrics.RecordContentFetchSkipped()
		return
	}

	start := time.Now()
	content, err := s.contentFetcher.FetchContent(ctx, art.Link)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		s.logger.Warn("abstract enhancement failed",
			slog.String("journal", art.Journal),
			slog.String("link", art.Link),
			slog.String("error", err.Error()))
		return
	}
	metrics.RecordContentFetchSuccess(time.Since(start), len(content))

	cleaned := s.cleaner(content)
	if len(cleaned) > len(art.Abstract) {
		art.Abstract = cleaned
	}
}
