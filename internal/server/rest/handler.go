package rest

import (
	"net/http"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/gin-gonic/gin"
)

type sendCodeRequest struct {
	PhoneNumber string     `json:"phoneNumber"`
	SessionID   flexString `json:"sessionId"`
}

type verifyCodeRequest struct {
	PhoneNumber   string     `json:"phoneNumber"`
	PhoneCode     flexString `json:"phoneCode"`
	PhoneCodeHash string     `json:"phoneCodeHash"`
	SessionID     flexString `json:"sessionId"`
}

type verifyPasswordRequest struct {
	Password  string     `json:"password"`
	SessionID flexString `json:"sessionId"`
}

type getMessagesRequest struct {
	SessionID flexString `json:"sessionId"`
	PeerID    flexString `json:"peerId"`
	Limit     flexInt    `json:"limit"`
}

type sendMessageRequest struct {
	SessionID flexString `json:"sessionId"`
	PeerID    flexString `json:"peerId"`
	Message   string     `json:"message"`
}

// bind decodes the JSON body into req, answering 400 on malformed input.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid JSON body"))
		return false
	}
	return true
}

func (s *Server) sendCode(c *gin.Context) {
	var req sendCodeRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.SendCode(c.Request.Context(), string(req.SessionID), req.PhoneNumber)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"phoneCodeHash": res.PhoneCodeHash,
		"sessionId":     res.SessionID,
	})
}

func (s *Server) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.VerifyCode(c.Request.Context(), string(req.SessionID), req.PhoneNumber, string(req.PhoneCode), req.PhoneCodeHash)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if res.Requires2FA {
		c.JSON(http.StatusOK, gin.H{
			"success":     false,
			"requires2FA": true,
			"message":     "Two-factor authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": res.SessionID,
		"user":      res.User,
	})
}

func (s *Server) verifyPassword(c *gin.Context) {
	var req verifyPasswordRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.VerifyPassword(c.Request.Context(), string(req.SessionID), req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": res.SessionID,
		"user":      res.User,
	})
}

func (s *Server) getDialogs(c *gin.Context) {
	dialogs, err := s.messages.Dialogs(c.Request.Context(), c.Query("sessionId"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if dialogs == nil {
		dialogs = []models.Dialog{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dialogs": dialogs})
}

func (s *Server) getMessages(c *gin.Context) {
	var req getMessagesRequest
	if !s.bind(c, &req) {
		return
	}

	limit := common.DefaultMessagesLimit
	if req.Limit.Set {
		limit = req.Limit.Value
	}

	msgs, err := s.messages.Messages(c.Request.Context(), string(req.SessionID), string(req.PeerID), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": msgs})
}

func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if !s.bind(c, &req) {
		return
	}

	sent, err := s.messages.Send(c.Request.Context(), string(req.SessionID), string(req.PeerID), req.Message)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": sent.ID,
		"date":      sent.Date,
	})
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
