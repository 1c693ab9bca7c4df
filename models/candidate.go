package models

// Candidate is a profile offered for an accept/reject decision. Immutable
// once fetched; it leaves the queue when decided on and is never re-offered
// within the same session.
type Candidate struct {
	UserID     string `json:"userId"`
	FirstName  string `json:"first_name"`
	DOB        string `json:"dob"`
	Pronouns   string `json:"pronouns"`
	About      string `json:"about"`
	DisplayPic string `json:"displayPic"`
}

// Suggestion is the snapshot handed to the rendering layer for the swipe
// card: the candidate currently presented, or the pending error replacing it.
type Suggestion struct {
	Candidate           *Candidate  `json:"candidate,omitempty"`
	Loading             bool        `json:"loading"`
	ShowingLikedProfile bool        `json:"showingLikedProfile"`
	Error               *ErrorState `json:"error,omitempty"`
}
