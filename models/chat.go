package models

// ChatSession binds one selected match to its conversation. It exists only
// while a match is selected in Conversations mode and is replaced wholesale
// when a different match is selected.
type ChatSession struct {
	MatchedUserID     string    `json:"matchedUserID"`
	DisplayName       string    `json:"displayName"`
	DisplayProfilePic string    `json:"displayProfilePic"`
	Status            string    `json:"status"`
	Messages          []Message `json:"messages"`
}

// ChatStatusOnline is the static presence default. There is no real presence
// signal behind it; a presence subsystem would replace this constant.
const ChatStatusOnline = "online"
