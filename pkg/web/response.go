// Package web defines common components for a web application.
package web

import (
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " field is required"
	case "email":
		return field.Field() + " field must contain a valid email"
	case "min":
		return field.Field() + " field must be at least " + field.Param() + " characters long"
	case "max":
		return field.Field() + " field must not exceed " + field.Param()
	case "gt":
		return field.Field() + " field must be greater than " + field.Param()
	case "uuid":
		return field.Field() + " field must be a valid uuid"
	case "accounttype":
		return field.Field() + " field must be CURRENT or SAVINGS"
	case "alphanum":
		return field.Field() + " field must contain only letters and numbers"
	}

	return field.Field() + " field is invalid"
}
