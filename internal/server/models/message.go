package models

// Dialog is one conversation as returned by the dialogs endpoint.
type Dialog struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsUser      bool   `json:"isUser"`
	IsGroup     bool   `json:"isGroup"`
	IsChannel   bool   `json:"isChannel"`
	UnreadCount int    `json:"unreadCount"`
	LastMessage string `json:"lastMessage"`
	Date        int    `json:"date"`
}

// Message is one text message of a conversation history.
type Message struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Out    bool   `json:"out"`
	Date   int    `json:"date"`
	FromID string `json:"fromId"`
}

// SentMessage identifies a message accepted by the server.
type SentMessage struct {
	ID   int
	Date int
}
