package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"journal-radar/internal/domain/entity"
	"journal-radar/internal/infra/llm"
	"journal-radar/internal/observability/metrics"
	"journal-radar/internal/resilience/retry"
	"journal-radar/internal/utils/text"
)

const (
	// selectorTemperature keeps scoring deterministic enough to be stable
	// across retries of the same candidate set.
	selectorTemperature = 0.2

	// promptAbstractLimit caps abstract length inside the scoring prompt so
	// a large candidate batch stays within the model's context window.
	promptAbstractLimit = 800
)

// Selector asks a language model to score and pick the candidate articles
// most relevant to crop genetics and breeding research.
//
// A nil client puts the selector in degraded mode: it returns the first
// targetCount candidates in feed order instead of failing the run.
type Selector struct {
	client      llm.Client
	retryConfig retry.Config
	logger      *slog.Logger
}

// NewSelector creates a Selector. client may be nil when no model
// credentials are configured.
func NewSelector(client llm.Client, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		client:      client,
		retryConfig: retry.EnrichmentConfig(),
		logger:      logger,
	}
}

// promptItem is the per-candidate payload embedded in the scoring prompt.
// The id is the candidate's position in the input slice; the model echoes
// it back so verdicts can be mapped to articles.
type promptItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	PubDate  string `json:"pub_date"`
}

// verdict is one scored entry in the model's JSON response. Keep is a
// pointer so an omitted field defaults to true rather than false.
type verdict struct {
	ID    json.Number `json:"id"`
	Score json.Number `json:"score"`
	Keep  *bool       `json:"keep"`
}

type scoredCandidate struct {
	index int
	score float64
	keep  bool
}

// Select returns at most targetCount articles from candidates, ranked by
// the model's relevance score. It never returns an error: when the model
// is unavailable, or its output stays unparseable after retries, the
// first targetCount candidates are returned in original order.
func (s *Selector) Select(ctx context.Context, journalName string, candidates []*entity.Article, targetCount int) []*entity.Article {
	if targetCount <= 0 {
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	if s.client == nil {
		s.logger.Warn("selector running in degraded mode",
			slog.String("journal", journalName),
			slog.Int("candidates", len(candidates)))
		return firstN(candidates, targetCount)
	}

	prompt := s.buildPrompt(journalName, candidates, targetCount)

	var selected []*entity.Article
	start := time.Now()
	err := retry.WithBackoff(ctx, s.retryConfig, func() error {
		raw, err := s.client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			Temperature: selectorTemperature,
		})
		if err != nil {
			return err
		}

		verdicts, err := parseVerdicts(raw, len(candidates))
		if err != nil {
			// A malformed response is worth another attempt; the model
			// usually produces valid JSON on retry.
			return retry.Transient(err)
		}

		selected = rankAndPick(candidates, verdicts, targetCount)
		return nil
	})
	metrics.RecordEnrichmentCall("select", err == nil, time.Since(start))

	if err != nil {
		s.logger.Error("article selection failed, falling back to feed order",
			slog.String("journal", journalName),
			slog.String("error", err.Error()))
		return firstN(candidates, targetCount)
	}

	s.logger.Info("model selected articles",
		slog.String("journal", journalName),
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(selected)))
	return selected
}

func (s *Selector) buildPrompt(journalName string, candidates []*entity.Article, targetCount int) string {
	items := make([]promptItem, 0, len(candidates))
	for i, art := range candidates {
		abstract := text.Truncate(strings.ReplaceAll(art.Abstract, "\n", " "), promptAbstractLimit)
		items = append(items, promptItem{
			ID:       i,
			Title:    art.Title,
			Abstract: abstract,
			PubDate:  art.PubDate.Format("2006-01-02"),
		})
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		// Marshaling plain strings and ints cannot fail, but the prompt
		// must still be usable if it somehow does.
		s.logger.Warn("failed to marshal prompt items", slog.String("error", err.Error()))
		payload = []byte("[]")
	}

	return fmt.Sprintf(`你是一名作物科学/育种/功能基因组学方向的科研助理，帮我从该期刊最新论文中挑出【对作物研究有启发价值】的文章。

我的长期关注点包括：
- 育种策略与遗传改良（产量、品质、抗逆、抗病）
- 作物功能基因组学（关键基因/QTL 的解析与验证）
- 组学整合与生物信息学方法（多组学关联、GWAS、eQTL、网络分析等）
- 新技术/新方法（基因编辑、单细胞/空间组学、高通量表型、AI/计算方法等）
- 可迁移到作物上的机制工作（模式生物、人类/小鼠/微生物，只要对作物思路有启发，也可以保留）

请注意：尽量排除非 research article 的内容，例如 News、Comment、Perspective、Research highlight、人物纪念、编辑部文章、撤稿、勘误等。仅在标题与摘要明显属于科研文章（有明确实验/分析/方法/数据）时才予以保留。

下面是该期刊的若干候选文章（title+abstract 摘要节选）：

%s

请你完成两件事：
1）为每篇文章打一个 0–10 的分数，表示"对作物育种/作物功能基因组学/组学分析是否有启发"；
2）从中选择【最多 %d 篇】你认为最值得关注的文章。

请只输出 JSON，不要任何解释性文字，格式为：

[
  {
    "id": 0,
    "score": 0-10 的数字,
    "keep": true 或 false,
    "reason": "用1句话解释为什么对作物方向有启发（中文）"
  },
  ...
]

要求：
- 不要捏造内容，只根据给出的标题和摘要推断。
- 如果难以判断，就给中等分数（比如 5-6），但不要完全乱猜。
`, payload, targetCount)
}

// parseVerdicts extracts the JSON array from a raw model response. Models
// sometimes wrap the payload in prose or markdown fences, so parsing starts
// at the first '[' and ends at the last ']'. Individual entries that fail
// validation are dropped; only a response with no array at all is an error.
func parseVerdicts(raw string, candidateCount int) ([]scoredCandidate, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrUnparseable)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	scored := make([]scoredCandidate, 0, len(entries))
	for _, entry := range entries {
		var v verdict
		if err := json.Unmarshal(entry, &v); err != nil {
			continue
		}

		// The id must be an exact integer; a fractional id cannot be
		// mapped back to a candidate and the entry is discarded.
		idx, err := v.ID.Int64()
		if err != nil {
			continue
		}
		if idx < 0 || idx >= int64(candidateCount) {
			continue
		}

		score := 0.0
		if v.Score != "" {
			score, err = v.Score.Float64()
			if err != nil {
				continue
			}
		}

		keep := true
		if v.Keep != nil {
			keep = *v.Keep
		}

		scored = append(scored, scoredCandidate{index: int(idx), score: score, keep: keep})
	}

	return scored, nil
}

// rankAndPick filters verdicts to kept entries, sorts them by score
// descending and maps the top targetCount back to articles. When the model
// keeps nothing, all parsed verdicts compete on score so the digest is
// never empty just because the model was overly strict.
func rankAndPick(candidates []*entity.Article, verdicts []scoredCandidate, targetCount int) []*entity.Article {
	kept := make([]scoredCandidate, 0, len(verdicts))
	for _, v := range verdicts {
		if v.keep {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		kept = verdicts
	}

	// Stable sort preserves feed order among equal scores.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if len(kept) > targetCount {
		kept = kept[:targetCount]
	}

	selected := make([]*entity.Article, 0, len(kept))
	for _, v := range kept {
		selected = append(selected, candidates[v.index])
	}
	return selected
}

func firstN(articles []*entity.Article, n int) []*entity.Article {
	if len(articles) > n {
		articles = articles[:n]
	}
	out := make([]*entity.Article, len(articles))
	copy(out, articles)
	return out
}
