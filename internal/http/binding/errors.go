package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InvalidFormatMessage top-level message of every validation failure
const InvalidFormatMessage = "please maintain a valid format"

// FieldError one failing field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IsBodyTooLarge reports whether err came from a capped request body
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// ValidationDetails turns a bind error into per-field messages
func ValidationDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, FieldError{
				Field:   fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{Field: field, Message: fmt.Sprintf("%s has the wrong type", field)}}
	}

	var idErr *InvalidIDError
	if errors.As(err, &idErr) {
		return []FieldError{{Field: "id", Message: "id must be a positive integer"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldError{{Field: "body", Message: "request body must be valid JSON"}}
	}

	return []FieldError{{Field: "body", Message: err.Error()}}
}

// fieldPath drops the root struct name: "SignupRequest.address.city" -> "address.city"
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "mobile":
		return fmt.Sprintf("%s must be a valid mobile number", field)
	case "category":
		return fmt.Sprintf("%s must be men or women", field)
	case "paymode":
		return fmt.Sprintf("%s must be COD or ONLINE", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
