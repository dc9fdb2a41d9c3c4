package client

import "context"

type Client interface {
	Ping(ctx context.Context) error
	SendCode(ctx context.Context, sessionID, phone string) (*CodeResponse, error)
	VerifyCode(ctx context.Context, sessionID, phone, code, phoneCodeHash string) (*LoginResponse, error)
	VerifyPassword(ctx context.Context, sessionID, password string) (*LoginResponse, error)
	Dialogs(ctx context.Context, sessionID string) ([]Dialog, error)
	Messages(ctx context.Context, sessionID, peerID string, limit int) ([]Message, error)
	SendMessage(ctx context.Context, sessionID, peerID, text string) (*SentResponse, error)
}
