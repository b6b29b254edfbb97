package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody error payload; details is present only for validation failures
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageBody plain acknowledgement
type MessageBody struct {
	Message string `json:"message"`
}

// OK 200 with data
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 {message}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}

// Error writes {error} with status
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

// ErrorWithDetails writes {error, details} with status
func ErrorWithDetails(c *gin.Context, status int, msg string, details interface{}) {
	c.JSON(status, ErrorBody{Error: msg, Details: details})
}

// Abort writes {error} and stops the handler chain
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

// AppErr writes an AppError
func AppErr(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		return
	}
	if appErr.Details != nil {
		ErrorWithDetails(c, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	Error(c, appErr.Code, appErr.Message)
}

// NotFound 404
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}
