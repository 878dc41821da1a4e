package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/persuasion-engine/internal/models"
)

// ValidatedRequest is a content request whose fields are all within their
// domains. It can only be obtained from Validate.
type ValidatedRequest struct {
	req models.ContentRequest
}

// Request returns a copy of the underlying request (topic already trimmed)
func (v ValidatedRequest) Request() models.ContentRequest {
	return v.req
}

// Validator checks content requests against their enumerated domains
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate trims the topic and checks every field. All invalid fields are
// reported together in a *ValidationError.
func (v *Validator) Validate(req models.ContentRequest) (ValidatedRequest, error) {
	req.Topic = strings.TrimSpace(req.Topic)

	err := v.validate.Struct(req)
	if err == nil {
		return ValidatedRequest{req: req}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidatedRequest{}, fmt.Errorf("failed to validate request: %w", err)
	}

	verr := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := FieldError{
			Field: fe.Field(),
			Value: fmt.Sprint(fe.Value()),
			Rule:  fe.Tag(),
		}
		if fe.Tag() == "oneof" {
			field.Allowed = strings.Fields(fe.Param())
		}
		verr.Fields = append(verr.Fields, field)
	}
	return ValidatedRequest{}, verr
}
