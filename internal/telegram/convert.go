package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

// entities indexes the users and chats shipped alongside a dialogs or
// history response.
type entities struct {
	users    map[int64]*tg.User
	chats    map[int64]string
	channels map[int64]channelInfo
}

type channelInfo struct {
	title      string
	accessHash int64
	megagroup  bool
}

func newEntities(users []tg.UserClass, chats []tg.ChatClass) *entities {
	e := &entities{
		users:    make(map[int64]*tg.User, len(users)),
		chats:    make(map[int64]string),
		channels: make(map[int64]channelInfo),
	}
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			e.users[user.ID] = user
		}
	}
	for _, c := range chats {
		switch chat := c.(type) {
		case *tg.Chat:
			e.chats[chat.ID] = chat.Title
		case *tg.ChatForbidden:
			e.chats[chat.ID] = chat.Title
		case *tg.Channel:
			e.channels[chat.ID] = channelInfo{title: chat.Title, accessHash: chat.AccessHash, megagroup: chat.Megagroup}
		case *tg.ChannelForbidden:
			e.channels[chat.ID] = channelInfo{title: chat.Title, accessHash: chat.AccessHash, megagroup: chat.Megagroup}
		}
	}
	return e
}

// inputPeer builds the addressable peer for a marked id, using access hashes
// from the index. Basic groups need no hash.
func (e *entities) inputPeer(ref peerRef) (tg.InputPeerClass, bool) {
	switch ref.kind {
	case peerUser:
		if u, ok := e.users[ref.id]; ok {
			return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}, true
		}
	case peerChat:
		return &tg.InputPeerChat{ChatID: ref.id}, true
	case peerChannel:
		if c, ok := e.channels[ref.id]; ok {
			return &tg.InputPeerChannel{ChannelID: ref.id, AccessHash: c.accessHash}, true
		}
	}
	return nil, false
}

func userName(u *tg.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func convertUser(u *tg.User) *models.User {
	return &models.User{
		ID:        strconv.FormatInt(u.ID, 10),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

func convertPeer(p tg.PeerClass) remote.Peer {
	switch peer := p.(type) {
	case *tg.PeerUser:
		return remote.Peer{UserID: peer.UserID}
	case *tg.PeerChat:
		return remote.Peer{ChatID: peer.ChatID}
	case *tg.PeerChannel:
		return remote.Peer{ChannelID: peer.ChannelID}
	}
	return remote.Peer{}
}

// convertMessage maps the message classes that carry an id. Service
// messages come through with empty text.
func convertMessage(m tg.MessageClass) (remote.Message, bool) {
	switch msg := m.(type) {
	case *tg.Message:
		return remote.Message{
			ID:   msg.ID,
			Text: msg.Message,
			Out:  msg.Out,
			Date: msg.Date,
			From: convertPeer(msg.FromID),
		}, true
	case *tg.MessageService:
		return remote.Message{
			ID:   msg.ID,
			Out:  msg.Out,
			Date: msg.Date,
			From: convertPeer(msg.FromID),
		}, true
	}
	return remote.Message{}, false
}

func convertMessages(in []tg.MessageClass) []remote.Message {
	out := make([]remote.Message, 0, len(in))
	for _, m := range in {
		if msg, ok := convertMessage(m); ok {
			out = append(out, msg)
		}
	}
	return out
}

// messageKey identifies a message across chats; ids are only unique per peer
// for channels.
type messageKey struct {
	peer remote.Peer
	id   int
}

func peerOf(m tg.MessageClass) remote.Peer {
	switch msg := m.(type) {
	case *tg.Message:
		return convertPeer(msg.PeerID)
	case *tg.MessageService:
		return convertPeer(msg.PeerID)
	}
	return remote.Peer{}
}

// convertDialogs projects a dialogs page in backend order.
func convertDialogs(dialogs []tg.DialogClass, messages []tg.MessageClass, e *entities) []remote.Dialog {
	top := make(map[messageKey]remote.Message, len(messages))
	for _, m := range messages {
		if msg, ok := convertMessage(m); ok {
			top[messageKey{peer: peerOf(m), id: msg.ID}] = msg
		}
	}

	out := make([]remote.Dialog, 0, len(dialogs))
	for _, dc := range dialogs {
		d, ok := dc.(*tg.Dialog)
		if !ok {
			continue
		}

		rd := remote.Dialog{UnreadCount: d.UnreadCount}
		switch p := d.Peer.(type) {
		case *tg.PeerUser:
			rd.ID = markUser(p.UserID)
			rd.IsUser = true
			if u, ok := e.users[p.UserID]; ok {
				rd.Name = userName(u)
			}
		case *tg.PeerChat:
			rd.ID = markChat(p.ChatID)
			rd.IsGroup = true
			rd.Title = e.chats[p.ChatID]
		case *tg.PeerChannel:
			rd.ID = markChannel(p.ChannelID)
			rd.IsChannel = true
			c := e.channels[p.ChannelID]
			rd.Title = c.title
			rd.IsGroup = c.megagroup
		default:
			continue
		}

		if msg, ok := top[messageKey{peer: convertPeer(d.Peer), id: d.TopMessage}]; ok {
			rd.Message = &msg
			rd.Date = msg.Date
		}
		out = append(out, rd)
	}
	return out
}

// sentMessage extracts the id and date of a message just sent with randomID.
func sentMessage(u tg.UpdatesClass, randomID int64) (*models.SentMessage, error) {
	var (
		updates []tg.UpdateClass
		date    int
	)
	switch v := u.(type) {
	case *tg.UpdateShortSentMessage:
		return &models.SentMessage{ID: v.ID, Date: v.Date}, nil
	case *tg.Updates:
		updates, date = v.Updates, v.Date
	case *tg.UpdatesCombined:
		updates, date = v.Updates, v.Date
	default:
		return nil, fmt.Errorf("unexpected updates type %T", u)
	}

	id := 0
	for _, upd := range updates {
		if m, ok := upd.(*tg.UpdateMessageID); ok && m.RandomID == randomID {
			id = m.ID
		}
	}

	for _, upd := range updates {
		var mc tg.MessageClass
		switch v := upd.(type) {
		case *tg.UpdateNewMessage:
			mc = v.Message
		case *tg.UpdateNewChannelMessage:
			mc = v.Message
		default:
			continue
		}
		msg, ok := mc.(*tg.Message)
		if !ok {
			continue
		}
		if id == 0 || msg.ID == id {
			return &models.SentMessage{ID: msg.ID, Date: msg.Date}, nil
		}
	}

	if id == 0 {
		return nil, errors.New("sent message not found in updates")
	}
	return &models.SentMessage{ID: id, Date: date}, nil
}

// wrapErr maps gotd errors onto the remote contract.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, auth.ErrPasswordAuthNeeded):
		return remote.ErrPasswordNeeded
	case errors.Is(err, auth.ErrPasswordInvalid):
		return remote.ErrPasswordInvalid
	}
	if rpcErr, ok := tgerr.As(err); ok {
		return &remote.Error{Code: rpcErr.Code, Type: rpcErr.Type, Message: rpcErr.Message}
	}
	return err
}
