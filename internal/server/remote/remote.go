// Package remote declares the contract between the proxy services and the
// MTProto client that talks to Telegram.
package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/server/models"
)

var (
	// ErrPasswordNeeded is returned by SignIn when the account has a cloud
	// password (SESSION_PASSWORD_NEEDED).
	ErrPasswordNeeded = errors.New("session password needed")
	// ErrPasswordInvalid is returned by CheckPassword on a wrong password.
	ErrPasswordInvalid = errors.New("invalid password")
)

// Error is a rejection reported by the Telegram backend, such as
// PHONE_CODE_INVALID or FLOOD_WAIT.
type Error struct {
	Code    int
	Type    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" && e.Message != e.Type {
		return fmt.Sprintf("rpc error code %d: %s: %s", e.Code, e.Type, e.Message)
	}
	return fmt.Sprintf("rpc error code %d: %s", e.Code, e.Type)
}

// Peer names the sender of a message. At most one field is non-zero.
type Peer struct {
	UserID    int64
	ChatID    int64
	ChannelID int64
}

// Message is a history entry as delivered by the backend.
type Message struct {
	ID   int
	Text string
	Out  bool
	Date int
	From Peer
}

// Dialog is a conversation as delivered by the backend. Name is set for
// users and Title for groups and channels; Message is the top message when
// the backend included it.
type Dialog struct {
	ID          string
	Name        string
	Title       string
	IsUser      bool
	IsGroup     bool
	IsChannel   bool
	UnreadCount int
	Message     *Message
	Date        int
}

// Client is a connected session. It is valid only inside Connector.Connect.
type Client interface {
	SendCode(ctx context.Context, phone string) (phoneCodeHash string, err error)
	SignIn(ctx context.Context, phone, code, phoneCodeHash string) error
	CheckPassword(ctx context.Context, password string) error
	IsAuthorized(ctx context.Context) (bool, error)
	Self(ctx context.Context) (*models.User, error)
	Dialogs(ctx context.Context, limit int) ([]Dialog, error)
	Messages(ctx context.Context, peer string, limit int) ([]Message, error)
	SendMessage(ctx context.Context, peer, text string) (*models.SentMessage, error)
}

// Connector opens a session from a credential blob, runs fn against it and
// releases the connection before returning. The returned blob is the
// credential as exported after fn, whether or not fn failed.
type Connector interface {
	Connect(ctx context.Context, blob models.Blob, fn func(ctx context.Context, c Client) error) (models.Blob, error)
}
