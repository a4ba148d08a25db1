package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func foldValidationErrors(errs []ValidationError) *DomainError {
	errMsg := "validation failed: "
	for _, e := range errs {
		errMsg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{Code: CodeValidation, Message: strings.TrimSuffix(errMsg, ", ")}
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"contact", "email or phone is required"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if strings.TrimSpace(input.Phone) != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errors = append(errors, ValidationError{"name", "must not be empty"})
	}

	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != nil && *input.Phone != "" && !isValidPhoneNumber(*input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	return errors
}

func ValidateTaxonomyInput(input TaxonomyInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 100 {
		errors = append(errors, ValidationError{"name", "must not exceed 100 characters"})
	}

	if input.Color != "" && !isValidHexColor(input.Color) {
		errors = append(errors, ValidationError{"color", "must be a hex color (#RRGGBB)"})
	}

	return errors
}

func ValidateInteractionInput(input RecordInteractionInput) []ValidationError {
	var errors []ValidationError

	if !entity.InteractionType(input.Type).IsValid() {
		errors = append(errors, ValidationError{"type", "is not a known interaction type"})
	}

	if strings.TrimSpace(input.Subject) == "" && strings.TrimSpace(input.Body) == "" {
		errors = append(errors, ValidationError{"payload", "subject or body is required"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	// Aceita nacional (9-11 dígitos) e E.164 com código de país
	return len(cleaned) >= 9 && len(cleaned) <= 15
}

func isValidHexColor(color string) bool {
	return regexp.MustCompile(`^#[0-9a-fA-F]{6}$`).MatchString(color)
}
