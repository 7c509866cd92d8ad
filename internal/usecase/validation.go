package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	RuleRequired    = "required"
	RuleEmailFormat = "email_format"
	RuleConsent     = "consent"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmission checks a submission and returns the failures in display
// order: missing fields, then email shape, then consent.
func ValidateSubmission(input SendChecklistInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"first_name", RuleRequired, "est obligatoire"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"last_name", RuleRequired, "est obligatoire"})
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		errors = append(errors, ValidationError{"email", RuleRequired, "est obligatoire"})
	} else if !IsValidEmail(email) {
		errors = append(errors, ValidationError{"email", RuleEmailFormat, "format d'email invalide"})
	}

	if !input.GDPRConsent {
		errors = append(errors, ValidationError{"gdpr_consent", RuleConsent, "doit être accepté"})
	}

	return errors
}

// IsValidEmail matches the basic local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeInput trims every text field and lower-cases the email. Addresses
// that differ only in case are therefore stored as one subscriber.
func NormalizeInput(input SendChecklistInput) SendChecklistInput {
	return SendChecklistInput{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		GDPRConsent: input.GDPRConsent,
	}
}

// validationMessage turns a list of failures into the message returned to the
// visitor, matching the wording of the landing page.
func validationMessage(errs []ValidationError) string {
	for _, e := range errs {
		if e.Rule == RuleRequired || e.Rule == RuleConsent {
			return "Tous les champs sont obligatoires et le consentement RGPD doit être accepté"
		}
	}
	return "Format d'email invalide"
}

func validationDetails(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, ", ")
}
