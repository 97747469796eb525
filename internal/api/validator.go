package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() echo.Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{validate: v}
}

// Validate reports every failing field as one coded 400.
func (rv *requestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag())
	}
}

// ValidationError carries per-field messages out to the error handler.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, "; ")
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
