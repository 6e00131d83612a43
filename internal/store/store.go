package store

import "errors"

// ErrDuplicate is returned by Insert when the article URL is already
// present. Callers treat it as "already ingested", not as a failure; it
// closes the race between a dedup pre-check and the insert.
var ErrDuplicate = errors.New("article already stored")
