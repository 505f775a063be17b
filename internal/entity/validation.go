package entity

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated field in a validation report.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full report of every violated field. Validation is
// not fail-fast: a request with three bad fields yields three entries.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the `validate` tags of s and converts the result into a
// ValidationErrors report. Returns nil when every field passes.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	report := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		report = append(report, FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return report
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "CreateEventRequest.Location.Lat"; clients
	// only care about the leaf field.
	parts := strings.Split(fe.StructNamespace(), ".")
	return strings.ToLower(parts[len(parts)-1])
}

func fieldMessage(fe validator.FieldError) string {
	name := capitalize(fieldName(fe))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "email":
		return "Please provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
