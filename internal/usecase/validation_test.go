package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() SendChecklistInput {
	return SendChecklistInput{FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true}
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.Empty(t, ValidateSubmission(validInput()))
}

func TestValidateSubmission_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*SendChecklistInput)
		field string
		rule  string
	}{
		{"first name", func(in *SendChecklistInput) { in.FirstName = "" }, "first_name", RuleRequired},
		{"blank first name", func(in *SendChecklistInput) { in.FirstName = "   " }, "first_name", RuleRequired},
		{"last name", func(in *SendChecklistInput) { in.LastName = "" }, "last_name", RuleRequired},
		{"email", func(in *SendChecklistInput) { in.Email = "" }, "email", RuleRequired},
		{"consent", func(in *SendChecklistInput) { in.GDPRConsent = false }, "gdpr_consent", RuleConsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.edit(&in)

			errs := ValidateSubmission(in)

			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.field, errs[0].Field)
				assert.Equal(t, tt.rule, errs[0].Rule)
			}
		})
	}
}

func TestValidateSubmission_InvalidEmails(t *testing.T) {
	for _, email := range []string{"not-an-email", "awa@", "@example.com", "awa@example", "awa example@x.com", "awa@@example.com"} {
		t.Run(email, func(t *testing.T) {
			in := validInput()
			in.Email = email

			errs := ValidateSubmission(in)

			if assert.Len(t, errs, 1) {
				assert.Equal(t, "email", errs[0].Field)
				assert.Equal(t, RuleEmailFormat, errs[0].Rule)
			}
		})
	}
}

func TestValidateSubmission_Order(t *testing.T) {
	errs := ValidateSubmission(SendChecklistInput{Email: "nope"})

	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"first_name", "last_name", "email", "gdpr_consent"}, fields)
}

func TestNormalizeInput(t *testing.T) {
	got := NormalizeInput(SendChecklistInput{FirstName: " Awa ", LastName: "K. ", Email: " Awa@Example.COM ", GDPRConsent: true})

	assert.Equal(t, SendChecklistInput{FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true}, got)
}

func TestValidationMessage(t *testing.T) {
	assert.Equal(t, "Format d'email invalide",
		validationMessage([]ValidationError{{"email", RuleEmailFormat, "format d'email invalide"}}))
	assert.Equal(t, "Tous les champs sont obligatoires et le consentement RGPD doit être accepté",
		validationMessage([]ValidationError{{"gdpr_consent", RuleConsent, "doit être accepté"}}))
}
