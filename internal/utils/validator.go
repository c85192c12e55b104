package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

func ValidateStruct(s interface{}) error {
	return GetValidator().Struct(s)
}

// ParseErrors превращает ошибки валидатора в список читаемых строк для 400.
func ParseErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if ok := errors.As(err, &validationErrors); !ok {
		return []string{"Unknown error"}
	}

	errs := make([]string, 0)
	for _, e := range validationErrors {
		errs = append(errs, prettyError(e))
	}
	return errs
}

func prettyError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " field is required"
	case "email":
		return e.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s length must be greater than or equal to %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "max":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	default:
		return e.Error()
	}
}
