package public

import (
	"errors"

	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/service"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal Server Error"

// mappedHandlerError maps a service error to a status and client message.
// useErrMessage sends err.Error() instead of msg for errors that carry their own text.
type mappedHandlerError struct {
	target        error
	code          int
	msg           string
	useErrMessage bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if rule.useErrMessage {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var signupErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "Email already in use"},
}

var signinErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, msg: "User not found!"},
	{target: service.ErrInvalidPassword, code: response.CodeUnauthorized, msg: "Wrong password"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
	{target: service.ErrCartItemExists, code: response.CodeBadRequest, msg: "product already in cart"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "Cart item not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "Cart is empty"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "Invalid quantity"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, useErrMessage: true},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "not enough stock available"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "user not found"},
	{target: service.ErrMobileRequired, code: response.CodeBadRequest, msg: "mobile number is required in profile"},
	{target: service.ErrAddressRequired, code: response.CodeBadRequest, msg: "address is required in profile"},
	{target: service.ErrInvalidExpectedDate, code: response.CodeBadRequest, msg: "Invalid date format"},
	{target: service.ErrInvalidPaymentMode, code: response.CodeBadRequest, msg: "Invalid payment mode"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "Invalid quantity"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderNotCancellable, code: response.CodeBadRequest, msg: "Order cannot be cancelled"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
	{target: service.ErrReviewLimitReached, code: response.CodeTooManyRequests, useErrMessage: true},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, msg: "Rating must be between 1 and 5"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "User not found"},
	{target: service.ErrMobileRequired, code: response.CodeBadRequest, msg: "Mobile number is required since it's not set yet"},
}

var personalUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrProfileUpdateFailed, code: response.CodeBadRequest, msg: "failed to update"},
}
