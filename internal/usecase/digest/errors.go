package digest

import "errors"

// Sentinel errors for the digest pipeline.
var (
	// ErrEmptyDigest indicates that a run produced no articles from any
	// journal. Callers use it to skip rendering; a partial run where at
	// least one journal produced articles does not return it.
	ErrEmptyDigest = errors.New("digest produced no articles")

	// ErrUnparseable indicates that a model response contained no usable
	// structured payload.
	ErrUnparseable = errors.New("no parseable payload in model response")
)
