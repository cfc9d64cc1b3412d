// Package entity defines the core domain entities for the digest pipeline.
// It contains the fundamental business objects such as Journal and Article,
// along with their validation rules and domain-specific errors.
package entity

// Journal represents one configured feed source.
// Journals are immutable descriptors loaded once at process start;
// identity is the ID field, Name is what readers see on the report.
type Journal struct {
	Name    string `yaml:"name"`
	ID      string `yaml:"id"`
	FeedURL string `yaml:"rss"`
}

// Validate checks that all required Journal fields are present.
func (j *Journal) Validate() error {
	if j.Name == "" {
		return ErrEmptyJournalName
	}
	if j.ID == "" {
		return ErrEmptyJournalID
	}
	if j.FeedURL == "" {
		return ErrEmptyFeedURL
	}
	return nil
}
