package handler

import (
	"errors"
	"reflect"
	"strings"

	"coin-converter/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the "amount" tag to gin's validator and names fields
// after their form keys.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not validator/v10")
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v.RegisterValidation("amount", validateAmount)
}

func validateAmount(fl validator.FieldLevel) bool {
	_, err := service.CanonicalAmount(fl.Field().String())
	return err == nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "alphanum":
		return fe.Field() + " must be an asset symbol"
	case "amount":
		return fe.Field() + " must be a non-negative number"
	case "max", "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be an asset symbol"
		}
		return fe.Field() + " is out of range"
	}
	return fe.Error()
}
