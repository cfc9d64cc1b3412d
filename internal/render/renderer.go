// Package render writes the digest result as static HTML pages: one dated
// page per run (index_YYYY-MM-DD.html) plus an archive index.html linking
// every dated page. The output directory is suitable for publishing as-is
// on any static host.
package render

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"journal-radar/internal/domain/entity"
	"journal-radar/internal/usecase/digest"
)

var datedPagePattern = regexp.MustCompile(`^index_(\d{4}-\d{2}-\d{2})\.html$`)

// Renderer writes digest pages into a fixed output directory.
type Renderer struct {
	outputDir string
	logger    *slog.Logger

	// now is injectable for deterministic page naming in tests.
	now func() time.Time
}

// NewRenderer creates a Renderer writing into outputDir. The directory is
// created on first render if it does not exist.
func NewRenderer(outputDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// journalSection is one journal's block on the daily page.
type journalSection struct {
	Name     string
	Anchor   string
	Trend    string
	Articles []*entity.Article
}

type dailyPageData struct {
	DateTag     string
	GeneratedAt string
	Sections    []journalSection
}

type archiveEntry struct {
	Date     string
	Filename string
	Latest   bool
}

type archivePageData struct {
	GeneratedAt string
	Entries     []archiveEntry
}

// RenderDaily writes the dated page for result and rebuilds the archive
// index. It returns the dated page's filename.
func (r *Renderer) RenderDaily(result *digest.Result) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", r.outputDir, err)
	}

	now := r.now()
	data := dailyPageData{
		DateTag:     now.Format("2006-01-02"),
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Sections:    groupByJournal(result),
	}

	filename := fmt.Sprintf("index_%s.html", data.DateTag)
	path := filepath.Join(r.outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create daily page %s: %w", path, err)
	}
	if err := dailyTemplate.Execute(file, data); err != nil {
		file.Close()
		return "", fmt.Errorf("render daily page: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("write daily page %s: %w", path, err)
	}

	r.logger.Info("daily page written",
		slog.String("path", path),
		slog.Int("journals", len(data.Sections)))

	if err := r.RebuildArchive(); err != nil {
		return "", err
	}
	return filename, nil
}

// RebuildArchive scans the output directory for dated pages and rewrites
// index.html listing them newest first. Pages from previous runs survive,
// so the archive accumulates history across deployments.
func (r *Renderer) RebuildArchive() error {
	entries, err := os.ReadDir(r.outputDir)
	if err != nil {
		return fmt.Errorf("scan output dir %s: %w", r.outputDir, err)
	}

	var pages []archiveEntry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := datedPagePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		pages = append(pages, archiveEntry{Date: m[1], Filename: e.Name()})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Date > pages[j].Date })
	if len(pages) > 0 {
		pages[0].Latest = true
	}

	path := filepath.Join(r.outputDir, "index.html")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive index %s: %w", path, err)
	}
	data := archivePageData{
		GeneratedAt: r.now().Format("2006-01-02 15:04"),
		Entries:     pages,
	}
	if err := archiveTemplate.Execute(file, data); err != nil {
		file.Close()
		return fmt.Errorf("render archive index: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write archive index %s: %w", path, err)
	}

	r.logger.Info("archive index rebuilt",
		slog.String("path", path),
		slog.Int("pages", len(pages)))
	return nil
}

// groupByJournal splits the merged article list back into per-journal
// sections, journals alphabetical and articles newest first within each.
func groupByJournal(result *digest.Result) []journalSection {
	grouped := make(map[string][]*entity.Article)
	for _, art := range result.Articles {
		grouped[art.Journal] = append(grouped[art.Journal], art)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]journalSection, 0, len(names))
	for _, name := range names {
		arts := grouped[name]
		sort.SliceStable(arts, func(i, j int) bool {
			return arts[i].PubDate.After(arts[j].PubDate)
		})
		sections = append(sections, journalSection{
			Name:     name,
			Anchor:   anchorFor(name),
			Trend:    result.Trends[name],
			Articles: arts,
		})
	}
	return sections
}

// anchorFor turns a journal display name into a fragment identifier.
func anchorFor(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, " ", "_"), "&", "and")
}

// nl2br renders plain text with newlines as separate lines. Text is
// escaped before the breaks are inserted, so model output cannot inject
// markup into the page.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
