package models

// Message is a single chat message between the current identity and a match,
// as returned by the remote chat history endpoint. History is ordered by
// CreatedAt ascending.
type Message struct {
	MessageID string `json:"messageId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
