package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"journal-radar/internal/domain/entity"
	"journal-radar/internal/infra/llm"
	"journal-radar/internal/observability/metrics"
	"journal-radar/internal/resilience/retry"
	"journal-radar/internal/utils/text"
)

const (
	// trendsTemperature allows slightly more latitude than scoring and
	// summarization; the trend narrative is interpretive by nature.
	trendsTemperature = 0.3

	// trendSummaryLimit caps each per-article summary inside the trend
	// prompt so a full journal's worth of summaries fits comfortably.
	trendSummaryLimit = 600
)

// TrendSynthesizer condenses a journal's selected, already-summarized
// articles into a short narrative of where that journal is heading.
//
// The narrative is decorative: a nil client, empty input, or a model
// failure all yield an empty string and the digest renders without a
// trend block for that journal.
type TrendSynthesizer struct {
	client      llm.Client
	retryConfig retry.Config
	logger      *slog.Logger
}

// NewTrendSynthesizer creates a TrendSynthesizer. client may be nil when
// no model credentials are configured.
func NewTrendSynthesizer(client llm.Client, logger *slog.Logger) *TrendSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendSynthesizer{
		client:      client,
		retryConfig: retry.EnrichmentConfig(),
		logger:      logger,
	}
}

type trendItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	PubDate string `json:"pub_date"`
}

// Synthesize returns a trend narrative for the journal, or "" when one
// cannot be produced.
func (t *TrendSynthesizer) Synthesize(ctx context.Context, journalName string, articles []*entity.Article) string {
	if t.client == nil || len(articles) == 0 {
		return ""
	}

	items := make([]trendItem, 0, len(articles))
	for _, art := range articles {
		summary := text.Truncate(strings.TrimSpace(art.Summary), trendSummaryLimit)
		items = append(items, trendItem{
			Title:   art.Title,
			Summary: summary,
			PubDate: art.PubDate.Format("2006-01-02"),
		})
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		t.logger.Warn("failed to marshal trend items", slog.String("error", err.Error()))
		return ""
	}

	prompt := fmt.Sprintf(`你是一名长期跟踪 %s 的作物/植物科学 PI，请根据下面这些"已筛选过、与作物研究相关"的论文，归纳该期刊最近值得关注的研究方向。

下面是该期刊近期若干篇代表性论文（已经过筛选，标题+简要总结）：
%s

请输出：
- 先用 1 句话整体评价该期刊最近的研究趋势（1 行）。
- 然后列出 3–5 个你认为对"作物育种、作物改良、功能基因组学、组学分析、新技术应用"特别有启发的研究方向，每个方向一行，以"- "开头，语言尽量具体（可以点出关键技术、思路或材料类型），但不要超过 60 字。

只输出中文文本，不要额外解释。
`, journalName, payload)

	var narrative string
	start := time.Now()
	retryErr := retry.WithBackoff(ctx, t.retryConfig, func() error {
		raw, err := t.client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			Temperature: trendsTemperature,
		})
		if err != nil {
			return err
		}
		narrative = strings.TrimSpace(raw)
		return nil
	})
	metrics.RecordEnrichmentCall("trends", retryErr == nil, time.Since(start))

	if retryErr != nil {
		t.logger.Warn("trend synthesis failed",
			slog.String("journal", journalName),
			slog.String("error", retryErr.Error()))
		return ""
	}

	return narrative
}
