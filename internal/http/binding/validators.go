package binding

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/whitebirds/internal/constants"

	ginbinding "github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var registerOnce sync.Once
var registerErr error

// RegisterValidators installs the custom rules on gin's validator; safe to call more than once
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := ginbinding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register installs the custom rules on v and reports field names by their json tag
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("mobile", validateMobile); err != nil {
		return err
	}
	if err := v.RegisterValidation("category", validateCategory); err != nil {
		return err
	}
	return v.RegisterValidation("paymode", validatePaymentMode)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateMobile(fl validator.FieldLevel) bool {
	return mobilePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateCategory(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case constants.CategoryMen, constants.CategoryWomen:
		return true
	}
	return false
}

func validatePaymentMode(fl validator.FieldLevel) bool {
	switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
	case constants.PaymentModeCOD, constants.PaymentModeOnline:
		return true
	}
	return false
}
