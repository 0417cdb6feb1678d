package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/dto"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
)

// ErrorHandler converts errors attached to the context into a JSON 500 when
// the handler did not write a response itself. Handlers that already
// responded (AbortWithError or a direct write) are left alone.
//
// Usage:
//
//	router := gin.New()
//	router.Use(ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("unhandled request error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError attaches err to the context (so the request logger sees it)
// and replies with the standardized JSON error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
