package models

// User is the projection of the authenticated Telegram account.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

// CodeRequest is the outcome of starting a login for a phone number.
type CodeRequest struct {
	SessionID     string
	PhoneCodeHash string
}

// LoginResult is the outcome of a login step. Exactly one of User and
// Requires2FA is meaningful: Requires2FA means the code was accepted but the
// account asks for its cloud password next.
type LoginResult struct {
	SessionID   string
	User        *User
	Requires2FA bool
}
