package shared

import (
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads a uint set by the auth middleware; responds 401 when missing
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "signin required", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "Not authorized, token invalid", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "Not authorized, token invalid", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "Internal Server Error", nil)
		return 0, false
	}
}

// GetUserID id of the signed-in user
func GetUserID(c *gin.Context) (uint, bool) {
	return GetContextUint(c, constants.ContextKeyUserID)
}
