package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"resumeforge/internal/schema"
)

// DraftIDPattern validates draft session IDs (UUID form).
var DraftIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateDraftID validates that a draft ID follows the expected format
func ValidateDraftID(fl validator.FieldLevel) bool {
	return DraftIDPattern.MatchString(fl.Field().String())
}

// ValidateSectionName ensures the section names one of the document sections
func ValidateSectionName(fl validator.FieldLevel) bool {
	return schema.KnownSection(fl.Field().String())
}

// RegisterResumeValidators registers all resume-related custom validators
func RegisterResumeValidators(v *validator.Validate) {
	v.RegisterValidation("draft_id", ValidateDraftID)
	v.RegisterValidation("section_name", ValidateSectionName)
}
