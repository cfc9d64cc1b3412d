package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"journal-radar/internal/infra/llm"
	"journal-radar/internal/observability/metrics"
	"journal-radar/internal/resilience/retry"
	"journal-radar/internal/utils/text"
)

const summarizerTemperature = 0.2

// missingAbstractNote replaces an empty abstract in the prompt so the model
// produces a short title-only introduction instead of inventing content.
const missingAbstractNote = "（该条目未提供摘要，请仅基于标题做一个非常简短的介绍。）"

// Summarizer produces a Chinese-language summary for a single article.
// It never fails: when the model is unconfigured or keeps erroring after
// retries, a placeholder pointing the reader at the original link is
// returned so every selected article carries display text.
type Summarizer struct {
	client      llm.Client
	retryConfig retry.Config
	logger      *slog.Logger
}

// NewSummarizer creates a Summarizer. client may be nil when no model
// credentials are configured.
func NewSummarizer(client llm.Client, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		client:      client,
		retryConfig: retry.EnrichmentConfig(),
		logger:      logger,
	}
}

// Summarize returns display text for one article. The result is always
// non-empty.
func (s *Summarizer) Summarize(ctx context.Context, title, abstract, journal string) string {
	if s.client == nil {
		return fmt.Sprintf(
			"核心：尚未配置模型 API 密钥，暂无法生成自动摘要。\n"+
				"- 要点1：标题为「%s」，期刊：%s。\n"+
				"- 要点2：请点击下方原文链接查看详细内容。\n",
			title, journal)
	}

	if abstract == "" {
		abstract = missingAbstractNote
	}

	prompt := fmt.Sprintf(`你是一名严谨的中文科研助理，负责从论文标题与摘要中提取高质量信息。请严格按照以下要求生成总结：

1.专业、精炼地翻译论文标题和摘要（分别以"标题：""摘要："开头；要求忠实、完整、无删减，无字数限制）。
2.用四句话概括论文的核心科学发现或主要贡献（以"核心："开头，并按 1、2、3、4 分条列出；不超过 500 字）。
3.所有内容必须完全基于原文标题与摘要，不得加入外部知识、推测、虚构信息或未出现的细节。
4.语言要求清晰、客观、专业，不包含与论文无关的内容。

期刊：%s
标题：%s
摘要：%s
`, journal, title, abstract)

	var summary string
	start := time.Now()
	err := retry.WithBackoff(ctx, s.retryConfig, func() error {
		raw, err := s.client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			Temperature: summarizerTemperature,
		})
		if err != nil {
			return err
		}
		summary = strings.TrimSpace(raw)
		if summary == "" {
			return retry.Transient(llm.ErrEmptyResponse)
		}
		return nil
	})
	metrics.RecordEnrichmentCall("summarize", err == nil, time.Since(start))

	if err != nil {
		s.logger.Error("summary generation failed, using placeholder",
			slog.String("journal", journal),
			slog.String("title", title),
			slog.String("error", err.Error()))
		return fmt.Sprintf(
			"核心：自动生成摘要失败，请参考原文标题与摘要理解内容。\n"+
				"- 要点1：标题为「%s」。\n"+
				"- 要点2：可点击下方原文链接查看详细研究。\n",
			title)
	}

	// Byte length is misleading for Chinese output; report runes.
	s.logger.Debug("summary generated",
		slog.String("journal", journal),
		slog.String("title", title),
		slog.Int("summary_runes", text.CountRunes(summary)))
	return summary
}
