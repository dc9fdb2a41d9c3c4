package client

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

type CodeResponse struct {
	Success       bool   `json:"success"`
	PhoneCodeHash string `json:"phoneCodeHash"`
	SessionID     string `json:"sessionId"`
}

type LoginResponse struct {
	Success     bool   `json:"success"`
	Requires2FA bool   `json:"requires2FA"`
	Message     string `json:"message"`
	SessionID   string `json:"sessionId"`
	User        *User  `json:"user"`
}

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

type Message struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Out    bool   `json:"out"`
	Date   int    `json:"date"`
	FromID string `json:"fromId"`
}

type SentResponse struct {
	Success   bool `json:"success"`
	MessageID int  `json:"messageId"`
	Date      int  `json:"date"`
}

type dialogsResponse struct {
	Success bool     `json:"success"`
	Dialogs []Dialog `json:"dialogs"`
}

type messagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
