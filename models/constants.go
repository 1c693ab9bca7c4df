package models

// Swipe actions accepted by the decision endpoint.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// ViewMode selects which half of the dashboard is active.
type ViewMode string

const (
	ModeBrowse        ViewMode = "browse"
	ModeConversations ViewMode = "conversations"
)

// ValidAction reports whether action is one of the two swipe actions.
func ValidAction(action string) bool {
	return action == ActionAccept || action == ActionReject
}

// ValidMode reports whether mode names a known view mode.
func ValidMode(mode string) bool {
	return ViewMode(mode) == ModeBrowse || ViewMode(mode) == ModeConversations
}
