package public

import (
	"github.com/whitebirds/internal/http/binding"
	handlershared "github.com/whitebirds/internal/http/handlers/shared"
	"github.com/whitebirds/internal/http/response"

	"github.com/gin-gonic/gin"
)

const requestTooLargeMessage = "request entity too large"

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

// bindJSON binds and validates the body; on failure the response is already written
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if binding.IsBodyTooLarge(err) {
			respondError(c, response.CodeEntityTooLarge, requestTooLargeMessage, nil)
			return false
		}
		handlershared.RespondValidation(c, binding.ValidationDetails(err))
		return false
	}
	return true
}

// pathID reads a positive integer path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := binding.ParseID(c.Param(name))
	if !ok {
		handlershared.RespondValidation(c, []binding.FieldError{{
			Field:   name,
			Message: name + " must be a positive integer",
		}})
		return 0, false
	}
	return id, true
}
