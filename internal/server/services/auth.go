package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/logging"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/google/uuid"
)

// AuthService drives the login handshake:
// - SendCode: request a one-time code for a phone number
// - VerifyCode: sign in with the code; may ask for the cloud password
// - VerifyPassword: finish a login that requires 2FA
type AuthService struct {
	runner *SessionRunner
	logger logging.Logger
}

func NewAuthService(runner *SessionRunner, logger logging.Logger) *AuthService {
	return &AuthService{runner: runner, logger: logger.With("module", "auth")}
}

// newSessionID is a seam for tests.
var newSessionID = func() string {
	return uuid.NewString()
}

// SendCode starts or restarts a login. A blank sessionID is replaced with a
// generated one, returned in the result.
func (s *AuthService) SendCode(ctx context.Context, sessionID, phone string) (*models.CodeRequest, error) {
	if err := common.RequireFields([]string{"phoneNumber"}, map[string]string{"phoneNumber": phone}); err != nil {
		return nil, err
	}
	if !s.runner.Configured() {
		return nil, common.ErrorNotConfigured
	}
	if strings.TrimSpace(sessionID) == "" {
		sessionID = newSessionID()
	}

	res := &models.CodeRequest{SessionID: sessionID}
	err := s.runner.Run(ctx, sessionID, false, func(ctx context.Context, c remote.Client) error {
		hash, err := c.SendCode(ctx, phone)
		if err != nil {
			return err
		}
		res.PhoneCodeHash = hash
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "send code failed", "session", sessionID, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "login code sent", "session", sessionID)
	return res, nil
}

// VerifyCode signs in with the code delivered for phoneCodeHash. When the
// account has a cloud password the result has Requires2FA set and no user.
func (s *AuthService) VerifyCode(ctx context.Context, sessionID, phone, code, phoneCodeHash string) (*models.LoginResult, error) {
	if err := common.RequireFields(
		[]string{"phoneNumber", "phoneCode", "phoneCodeHash", "sessionId"},
		map[string]string{"phoneNumber": phone, "phoneCode": code, "phoneCodeHash": phoneCodeHash, "sessionId": sessionID},
	); err != nil {
		return nil, err
	}

	res := &models.LoginResult{SessionID: sessionID}
	err := s.runner.Run(ctx, sessionID, true, func(ctx context.Context, c remote.Client) error {
		if err := c.SignIn(ctx, phone, code, phoneCodeHash); err != nil {
			if errors.Is(err, remote.ErrPasswordNeeded) {
				res.Requires2FA = true
				return nil
			}
			return err
		}

		user, err := c.Self(ctx)
		if err != nil {
			return err
		}
		res.User = user
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "verify code failed", "session", sessionID, "error", err)
		return nil, err
	}

	if res.Requires2FA {
		s.logger.Info(ctx, "password required", "session", sessionID)
	} else {
		s.logger.Info(ctx, "signed in", "session", sessionID, "user", res.User.ID)
	}
	return res, nil
}

// VerifyPassword completes a 2FA login. A wrong password leaves the stored
// session as it was, so the client may retry.
func (s *AuthService) VerifyPassword(ctx context.Context, sessionID, password string) (*models.LoginResult, error) {
	if err := common.RequireFields(
		[]string{"password", "sessionId"},
		map[string]string{"password": password, "sessionId": sessionID},
	); err != nil {
		return nil, err
	}

	res := &models.LoginResult{SessionID: sessionID}
	err := s.runner.Run(ctx, sessionID, true, func(ctx context.Context, c remote.Client) error {
		if err := c.CheckPassword(ctx, password); err != nil {
			return err
		}

		user, err := c.Self(ctx)
		if err != nil {
			return err
		}
		res.User = user
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "verify password failed", "session", sessionID, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "signed in with password", "session", sessionID, "user", res.User.ID)
	return res, nil
}
