// Package validation checks request payloads against the struct-tag schemas
// declared on the DTOs and renders failures as field -> message details.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

// ObjectIDTag validates 24-character lowercase hexadecimal identifiers.
const ObjectIDTag = "objectid"

// FiniteTag rejects NaN and infinite floats.
const FiniteTag = "finite"

// Normalizer is implemented by payloads that canonicalize fields before validation.
type Normalizer interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterAlias(ObjectIDTag, "mongodb")
	if err := v.RegisterValidation(FiniteTag, isFinite); err != nil {
		panic(err)
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// NormalizeID canonicalizes a hex identifier as stored.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Struct validates s and returns a VALIDATION_FAILED DomainError on failure.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = message(fe)
	}
	return apperrors.NewValidationError("invalid format", details)
}

// ObjectID normalizes and validates a single identifier, such as a path parameter.
func ObjectID(field, value string) (string, error) {
	id := NormalizeID(value)
	if err := validate.Var(id, "required,"+ObjectIDTag); err != nil {
		return "", apperrors.NewValidationError("invalid format", map[string]any{
			field: "must be a 24 character hex id",
		})
	}
	return id, nil
}

// ParseBody decodes the request body into out and validates it.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	if n, ok := out.(Normalizer); ok {
		n.Normalize()
	}
	return Struct(out)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email address"
	case "url":
		return "invalid url"
	case "min":
		return fmt.Sprintf("minimum %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("maximum %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case ObjectIDTag:
		return "must be a 24 character hex id"
	case FiniteTag:
		return "must be a finite number"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
