package models

// EngagementEntry is one counterpart user in either of the two
// server-synchronized collections: LikesReceived (they liked us, not yet
// mutual) or Matches (mutual). Keyed by UserID, unique within a collection.
type EngagementEntry struct {
	UserID            string `json:"userID"`
	DisplayName       string `json:"displayName"`
	DisplayProfilePic string `json:"displayProfilePic"`
}

// EngagementList pairs a collection snapshot with its loading flag, the way
// the rendering layer consumes it.
type EngagementList struct {
	Data    []EngagementEntry `json:"data"`
	Loading bool              `json:"loading"`
}
