package validation

import (
	"errors"
	"fmt"
	"portrait-backend/internal/common/enum"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var val *validator.Validate

var customTags = map[string]validator.Func{
	"enum":    enum.ValidateEnum,
	"orderID": validateOrderID,
	"pushURL": validatePushURL,
}

var validationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"e164":     "must be a e164 formatted phone number",
	"url":      "must be a valid URL",
	"oneof":    "must be one of the allowed values: %s",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"len":      "must have the exact length of %s",
	"enum":     "must be one of the allowed enum values: %s",
	"orderID":  "must be a base-10 integer",
	"pushURL":  "must be a same-origin path or an http(s) URL",
}

// FieldError describes one failed rule, addressed by the JSON field name.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (f FieldError) String() string {
	return f.Field + " " + f.Message
}

// Error collects every failed rule of a Validate call.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

// Setup builds the package validator and registers the custom tags into
// gin's binding engine so `binding:"pushURL"` works on request DTOs.
func Setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(jsonName)

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("failed to get validation engine")
	}
	if err := registerValidations(engine); err != nil {
		return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
	}

	return nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// Validate checks payload against its `validate` tags. Failures come back
// as *Error.
func Validate(payload any) error {
	err := val.Struct(payload)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   e.Namespace(),
			Tag:     e.Tag(),
			Message: message(e),
		})
	}
	return out
}

func message(e validator.FieldError) string {
	msg, ok := validationMessages[e.Tag()]
	if !ok {
		return "failed on " + e.Tag()
	}
	if !strings.Contains(msg, "%s") {
		return msg
	}
	if e.Tag() == "enum" {
		return fmt.Sprintf(msg, e.Type())
	}
	return fmt.Sprintf(msg, e.Param())
}
