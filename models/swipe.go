package models

// OutcomeKind tags a SwipeOutcome.
type OutcomeKind string

const (
	OutcomeAccepted        OutcomeKind = "accepted"
	OutcomeRejected        OutcomeKind = "rejected"
	OutcomeRateLimited     OutcomeKind = "rate_limited"
	OutcomeStructuralError OutcomeKind = "structural_error"

	// OutcomeFetchError is not a decision outcome; it tags an ErrorState
	// latched by a failed candidate fetch.
	OutcomeFetchError OutcomeKind = "fetch_error"
)

// SwipeOutcome is the interpreted result of submitting a decision to the
// remote service. Matched is meaningful only when Kind is OutcomeAccepted;
// Message only when Kind is OutcomeStructuralError.
type SwipeOutcome struct {
	Kind    OutcomeKind `json:"kind"`
	Matched bool        `json:"matched,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorState is the latched, user-facing error replacing the suggestion view
// until new data clears it.
type ErrorState struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
}
