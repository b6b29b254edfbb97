package public

import (
	"errors"
	"net/http"
	"time"

	"github.com/whitebirds/internal/http/binding"
	handlershared "github.com/whitebirds/internal/http/handlers/shared"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/service"

	"github.com/gin-gonic/gin"
)

// SignupRequest signup body
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	MobNo    string `json:"mobNo" binding:"omitempty,mobile"`
}

// SigninRequest signin body
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// Signup registers a customer and starts a session
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, expiresAt, err := h.AuthService.Signup(service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		MobNo:    req.MobNo,
	})
	if err != nil {
		var policyErr *service.PasswordPolicyError
		if errors.As(err, &policyErr) {
			details := make([]binding.FieldError, 0, len(policyErr.Violations))
			for _, violation := range policyErr.Violations {
				details = append(details, binding.FieldError{Field: "password", Message: violation})
			}
			handlershared.RespondValidation(c, details)
			return
		}
		respondWithMappedError(c, err, signupErrorRules, response.CodeInternal, internalErrorMessage)
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	response.Created(c, gin.H{"message": "signup successful", "user": user})
}

// Signin checks credentials and starts a session
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, expiresAt, err := h.AuthService.Signin(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, signinErrorRules, response.CodeInternal, internalErrorMessage)
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	response.OK(c, gin.H{"message": "Signin successful", "user": user})
}

// Signout clears the session cookie
func (h *Handler) Signout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.Message(c, "signout successful")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	h.writeSessionCookie(c, token, maxAge)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	h.writeSessionCookie(c, "", -1)
}

func (h *Handler) writeSessionCookie(c *gin.Context, value string, maxAge int) {
	cookieCfg := h.Config.Cookie
	name := cookieCfg.Name
	if name == "" {
		name = "token"
	}
	// SameSite=None is rejected by browsers unless the cookie is Secure
	sameSite := http.SameSiteNoneMode
	if !cookieCfg.Secure {
		sameSite = http.SameSiteLaxMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(name, value, maxAge, "/", cookieCfg.Domain, cookieCfg.Secure, true)
}
