// internal/utils/validator.go
package utils

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires custom rules into gin's binding validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("strong_password", validateStrongPassword)
	}
}

// validateStrongPassword requires at least 8 characters with an upper case
// letter, a lower case letter and a digit.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

// ValidationErrorDetails converts validator errors into a field → message map
// suitable for the error envelope.
func ValidationErrorDetails(err error) map[string]string {
	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["error"] = err.Error()
		return details
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			details[fieldError.Field()] = "this field is required"
		case "email":
			details[fieldError.Field()] = "must be a valid email address"
		case "strong_password":
			details[fieldError.Field()] = "must be at least 8 characters with upper case, lower case and a digit"
		case "min":
			details[fieldError.Field()] = "value is too small"
		case "max":
			details[fieldError.Field()] = "value is too large"
		case "oneof":
			details[fieldError.Field()] = "must be one of: " + fieldError.Param()
		default:
			details[fieldError.Field()] = "invalid value"
		}
	}

	return details
}
