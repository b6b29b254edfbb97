package shared

import (
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/http/binding"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog logger carrying the request id
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError writes {error} and logs the underlying error when there is one
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.AppErr(c, appErr)
}

// RespondValidation writes 400 {error, details}
func RespondValidation(c *gin.Context, details interface{}) {
	response.AppErr(c, &response.AppError{
		Code:    response.CodeBadRequest,
		Message: binding.InvalidFormatMessage,
		Details: details,
	})
}
