package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/config"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
)

// MessageService lists conversations and reads and sends text messages on
// behalf of an authenticated session.
type MessageService struct {
	runner           *SessionRunner
	dialogsLimit     int
	maxMessagesLimit int
	logger           logging.Logger
}

func NewMessageService(runner *SessionRunner, cfg *config.Config, logger logging.Logger) *MessageService {
	return &MessageService{
		runner:           runner,
		dialogsLimit:     cfg.DialogsLimit,
		maxMessagesLimit: cfg.MaxMessagesLimit,
		logger:           logger.With("module", "messages"),
	}
}

// MaxMessagesLimit is the largest page accepted by Messages.
func (s *MessageService) MaxMessagesLimit() int {
	return s.maxMessagesLimit
}

// Dialogs returns the most recent conversations in backend order.
func (s *MessageService) Dialogs(ctx context.Context, sessionID string) ([]models.Dialog, error) {
	if err := common.RequireFields([]string{"sessionId"}, map[string]string{"sessionId": sessionID}); err != nil {
		return nil, err
	}

	var out []models.Dialog
	err := s.runner.Run(ctx, sessionID, true, func(ctx context.Context, c remote.Client) error {
		ok, err := c.IsAuthorized(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorUnauthorized
		}

		dialogs, err := c.Dialogs(ctx, s.dialogsLimit)
		if err != nil {
			return err
		}
		out = make([]models.Dialog, 0, len(dialogs))
		for _, d := range dialogs {
			out = append(out, projectDialog(d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "dialogs listed", "session", sessionID, "count", len(out))
	return out, nil
}

// Messages returns up to limit recent text messages of a conversation.
// Entries without text, such as service messages and bare media, are dropped.
func (s *MessageService) Messages(ctx context.Context, sessionID, peerID string, limit int) ([]models.Message, error) {
	if err := common.RequireFields(
		[]string{"sessionId", "peerId"},
		map[string]string{"sessionId": sessionID, "peerId": peerID},
	); err != nil {
		return nil, err
	}
	if limit < 1 || limit > s.maxMessagesLimit {
		return nil, &common.ValidationError{
			Fields: []string{"limit"},
			Reason: fmt.Sprintf("limit must be between 1 and %d", s.maxMessagesLimit),
		}
	}

	var out []models.Message
	err := s.runner.Run(ctx, sessionID, true, func(ctx context.Context, c remote.Client) error {
		msgs, err := c.Messages(ctx, peerID, limit)
		if err != nil {
			return err
		}
		out = make([]models.Message, 0, len(msgs))
		for _, m := range msgs {
			if m.Text == "" {
				continue
			}
			out = append(out, projectMessage(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Send posts a text message to peerID.
func (s *MessageService) Send(ctx context.Context, sessionID, peerID, text string) (*models.SentMessage, error) {
	if err := common.RequireFields(
		[]string{"sessionId", "peerId", "message"},
		map[string]string{"sessionId": sessionID, "peerId": peerID, "message": text},
	); err != nil {
		return nil, err
	}

	var sent *models.SentMessage
	err := s.runner.Run(ctx, sessionID, true, func(ctx context.Context, c remote.Client) error {
		var err error
		sent, err = c.SendMessage(ctx, peerID, text)
		return err
	})
	if err != nil {
		s.logger.Warn(ctx, "send message failed", "session", sessionID, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "message sent", "session", sessionID, "message_id", sent.ID)
	return sent, nil
}

func projectDialog(d remote.Dialog) models.Dialog {
	name := d.Name
	if name == "" {
		name = d.Title
	}
	if name == "" {
		name = "Unknown"
	}

	out := models.Dialog{
		ID:          d.ID,
		Name:        name,
		IsUser:      d.IsUser,
		IsGroup:     d.IsGroup,
		IsChannel:   d.IsChannel,
		UnreadCount: d.UnreadCount,
		Date:        d.Date,
	}
	if d.Message != nil {
		out.LastMessage = d.Message.Text
	}
	return out
}

func projectMessage(m remote.Message) models.Message {
	from := ""
	switch {
	case m.From.UserID != 0:
		from = strconv.FormatInt(m.From.UserID, 10)
	case m.From.ChannelID != 0:
		from = strconv.FormatInt(m.From.ChannelID, 10)
	}

	return models.Message{
		ID:     m.ID,
		Text:   m.Text,
		Out:    m.Out,
		Date:   m.Date,
		FromID: from,
	}
}
