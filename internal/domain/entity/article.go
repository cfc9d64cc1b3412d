package entity

import "time"

// Article represents one feed entry flowing through the digest pipeline.
// It starts as a normalized raw item, survives keyword filtering as a
// candidate, and becomes a selected item once Summary is set. Only articles
// with a summary reach the rendered report.
type Article struct {
	Journal   string
	JournalID string
	Title     string
	Link      string
	Abstract  string
	Summary   string
	PubDate   time.Time
}

// NewArticle builds an Article from a normalized feed entry.
// Entries without a title or link are rejected; a zero publish date
// falls back to the current time, matching feeds that omit dates.
func NewArticle(journal Journal, title, link, abstract string, pubDate time.Time) (*Article, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if link == "" {
		return nil, ErrEmptyLink
	}
	if pubDate.IsZero() {
		pubDate = time.Now()
	}
	return &Article{
		Journal:   journal.Name,
		JournalID: journal.ID,
		Title:     title,
		Link:      link,
		Abstract:  abstract,
		PubDate:   pubDate,
	}, nil
}
