package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSubmitEmailInput(input SubmitEmailInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) < 2 {
		errors = append(errors, ValidationError{"name", "must have at least 2 characters"})
	} else if len(input.Name) > 255 {
		errors = append(errors, ValidationError{"name", "must not exceed 255 characters"})
	}

	errors = append(errors, validateEmail(input.Email)...)

	if strings.TrimSpace(input.LeadRoute) == "" {
		errors = append(errors, ValidationError{"lead_route", "is required"})
	} else if len(input.LeadRoute) > 255 {
		errors = append(errors, ValidationError{"lead_route", "must not exceed 255 characters"})
	}

	if len(input.RedirectURL) > 500 {
		errors = append(errors, ValidationError{"redirect_url", "must not exceed 500 characters"})
	}

	return errors
}

func ValidateSubscribeNewsletterInput(input SubscribeNewsletterInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateEmail(input.Email)...)

	if len(input.Name) > 255 {
		errors = append(errors, ValidationError{"name", "must not exceed 255 characters"})
	}
	if len(input.Country) > 100 {
		errors = append(errors, ValidationError{"country", "must not exceed 100 characters"})
	}

	return errors
}

func validateEmail(email string) []ValidationError {
	if strings.TrimSpace(email) == "" {
		return []ValidationError{{"email", "is required"}}
	}
	if len(email) > 255 {
		return []ValidationError{{"email", "must not exceed 255 characters"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{"email", "is invalid"}}
	}
	return nil
}
