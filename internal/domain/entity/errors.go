package entity

import "errors"

// Domain validation errors.
var (
	ErrEmptyTitle       = errors.New("article title is empty")
	ErrEmptyLink        = errors.New("article link is empty")
	ErrEmptyJournalName = errors.New("journal name is empty")
	ErrEmptyJournalID   = errors.New("journal id is empty")
	ErrEmptyFeedURL     = errors.New("journal feed url is empty")
)
