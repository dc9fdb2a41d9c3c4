package telegram

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message/peer"
	"github.com/gotd/td/tg"
)

// resolveScanLimit bounds the dialogs scanned to find the access hash of a
// numeric peer id.
const resolveScanLimit = 100

// session is a remote.Client over a running gotd client.
type session struct {
	client   *telegram.Client
	api      *tg.Client
	resolver peer.Resolver
}

var _ remote.Client = (*session)(nil)

func newSession(client *telegram.Client) *session {
	api := client.API()
	return &session{client: client, api: api, resolver: peer.DefaultResolver(api)}
}

func (s *session) SendCode(ctx context.Context, phone string) (string, error) {
	sent, err := s.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return "", wrapErr(err)
	}

	switch v := any(sent).(type) {
	case *tg.AuthSentCode:
		return v.PhoneCodeHash, nil
	}
	return "", fmt.Errorf("unexpected sent code type %T", sent)
}

func (s *session) SignIn(ctx context.Context, phone, code, phoneCodeHash string) error {
	_, err := s.client.Auth().SignIn(ctx, phone, code, phoneCodeHash)
	return wrapErr(err)
}

func (s *session) CheckPassword(ctx context.Context, password string) error {
	_, err := s.client.Auth().Password(ctx, password)
	return wrapErr(err)
}

func (s *session) IsAuthorized(ctx context.Context) (bool, error) {
	status, err := s.client.Auth().Status(ctx)
	if err != nil {
		return false, wrapErr(err)
	}
	return status.Authorized, nil
}

func (s *session) Self(ctx context.Context) (*models.User, error) {
	u, err := s.client.Self(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	return convertUser(u), nil
}

func (s *session) dialogsPage(ctx context.Context, limit int) ([]tg.DialogClass, []tg.MessageClass, *entities, error) {
	res, err := s.api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      limit,
	})
	if err != nil {
		return nil, nil, nil, wrapErr(err)
	}

	switch v := res.(type) {
	case *tg.MessagesDialogs:
		return v.Dialogs, v.Messages, newEntities(v.Users, v.Chats), nil
	case *tg.MessagesDialogsSlice:
		return v.Dialogs, v.Messages, newEntities(v.Users, v.Chats), nil
	}
	return nil, nil, newEntities(nil, nil), nil
}

func (s *session) Dialogs(ctx context.Context, limit int) ([]remote.Dialog, error) {
	dialogs, messages, e, err := s.dialogsPage(ctx, limit)
	if err != nil {
		return nil, err
	}
	return convertDialogs(dialogs, messages, e), nil
}

func (s *session) resolve(ctx context.Context, raw string) (tg.InputPeerClass, error) {
	ref, err := parsePeer(raw)
	if err != nil {
		return nil, &common.ValidationError{Fields: []string{"peerId"}, Reason: "invalid peerId: " + err.Error()}
	}

	switch ref.kind {
	case peerSelf:
		return &tg.InputPeerSelf{}, nil
	case peerUsername:
		p, err := s.resolver.ResolveDomain(ctx, ref.username)
		if err != nil {
			return nil, wrapErr(err)
		}
		return p, nil
	case peerChat:
		return &tg.InputPeerChat{ChatID: ref.id}, nil
	}

	_, _, e, err := s.dialogsPage(ctx, resolveScanLimit)
	if err != nil {
		return nil, err
	}
	if p, ok := e.inputPeer(ref); ok {
		return p, nil
	}
	return nil, &remote.Error{Code: 400, Type: "PEER_ID_INVALID", Message: "peer " + raw + " not found among recent dialogs"}
}

func (s *session) Messages(ctx context.Context, peerID string, limit int) ([]remote.Message, error) {
	p, err := s.resolve(ctx, peerID)
	if err != nil {
		return nil, err
	}

	res, err := s.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:  p,
		Limit: limit,
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	switch v := res.(type) {
	case *tg.MessagesMessages:
		return convertMessages(v.Messages), nil
	case *tg.MessagesMessagesSlice:
		return convertMessages(v.Messages), nil
	case *tg.MessagesChannelMessages:
		return convertMessages(v.Messages), nil
	}
	return nil, nil
}

func (s *session) SendMessage(ctx context.Context, peerID, text string) (*models.SentMessage, error) {
	p, err := s.resolve(ctx, peerID)
	if err != nil {
		return nil, err
	}

	randomID, err := common.RandInt64()
	if err != nil {
		return nil, err
	}

	res, err := s.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
		Peer:     p,
		Message:  text,
		RandomID: randomID,
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return sentMessage(res, randomID)
}
