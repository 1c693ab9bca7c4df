package models

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means no valid identity exists for the presented token.
// Fatal to the session; the caller redirects out rather than retrying here.
var ErrUnauthorized = errors.New("unauthorized: no valid identity")

// ErrRateLimited is the server telling us the user has spent their decision
// budget for the period. Distinct from a structural failure; the UI renders
// its own copy for it.
var ErrRateLimited = errors.New("rate limited by remote service")

// ErrNotMatched is returned when an operation names a user absent from the
// Matches collection.
var ErrNotMatched = errors.New("user is not a current match")

// FetchError is a transient network or server failure on a named remote
// operation. Recoverable by the next triggered attempt, never retried
// in place.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StructuralError covers an exhausted queue or a malformed response: the
// user sees the message and only new data clears it.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string { return e.Message }

// LimitExhaustedMessage is shown when the queue runs out of candidates.
const LimitExhaustedMessage = "You have exceeded your limit! Please try again tomorrow."
