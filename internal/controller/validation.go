package controller

import (
	"errors"
	"fmt"
	"unicode"

	"practicehub/pkg/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body into out. On failure it writes a 400
// response enumerating every violated field and returns false; no handler
// side effect may happen after that.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.ValidationFailed(c, violationsFromError(err))
		return false
	}
	return true
}

func violationsFromError(err error) []response.FieldViolation {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []response.FieldViolation{{Field: "body", Reason: "malformed request body"}}
	}

	violations := make([]response.FieldViolation, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		violations = append(violations, response.FieldViolation{
			Field:  jsonFieldName(fieldErr.Field()),
			Reason: violationReason(fieldErr),
		})
	}
	return violations
}

// jsonFieldName lowercases the leading rune of a struct field name, which
// matches the lowerCamel json tags of the request DTOs.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	runes := []rune(field)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func violationReason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must have at least %s element(s)", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
