package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/gin-gonic/gin"
)

const notConfiguredMessage = "API credentials not configured. Please set API_ID and API_HASH (environment, config file or flags)."

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// writeError maps service errors onto HTTP statuses:
// validation 400, missing session or authorization 401 (including backend
// 401-class rejections), anything else 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		verr *common.ValidationError
		rerr *remote.Error
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorBody(verr.Error()))
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, common.ErrorSessionNotFound):
		c.JSON(http.StatusUnauthorized, errorBody("Session not found"))
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorBody("Not authorized"))
	case errors.Is(err, common.ErrorNotConfigured):
		c.JSON(http.StatusInternalServerError, errorBody(notConfiguredMessage))
	case errors.As(err, &rerr) && rerr.Code == http.StatusUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized", "details": err.Error()})
	case errors.As(err, &rerr):
		msg := rerr.Type
		if msg == "" {
			msg = rerr.Message
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	case errors.Is(err, remote.ErrPasswordInvalid):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PASSWORD_HASH_INVALID", "details": err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "details": err.Error()})
	}
}
