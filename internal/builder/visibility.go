package builder

import (
	"fmt"

	"resumeforge/internal/schema"
	"resumeforge/pkg/models"
)

// VisibilityController maintains the per-section opt-out flags. Every
// operation replaces the whole flag set with a copy-with-one-field-changed;
// it never touches document data, so hiding a section and showing it again
// leaves previously entered records intact.
type VisibilityController struct {
	flags models.SectionVisibility
}

// NewVisibilityController starts from the given flag set.
func NewVisibilityController(initial models.SectionVisibility) *VisibilityController {
	return &VisibilityController{flags: initial}
}

// Flags returns the current flag set by value.
func (vc *VisibilityController) Flags() models.SectionVisibility {
	return vc.flags
}

// Toggle flips one section's flag.
func (vc *VisibilityController) Toggle(section string) error {
	return vc.apply(section, func(cur bool) bool { return !cur })
}

// Show sets one section's flag to true.
func (vc *VisibilityController) Show(section string) error {
	return vc.apply(section, func(bool) bool { return true })
}

// Hide sets one section's flag to false.
func (vc *VisibilityController) Hide(section string) error {
	return vc.apply(section, func(bool) bool { return false })
}

func (vc *VisibilityController) apply(section string, op func(bool) bool) error {
	next := vc.flags
	switch section {
	case schema.SectionExperience:
		next.Experience = op(next.Experience)
	case schema.SectionProjects:
		next.Projects = op(next.Projects)
	case schema.SectionCertifications:
		next.Certifications = op(next.Certifications)
	default:
		return fmt.Errorf("section %s has no visibility flag", section)
	}
	vc.flags = next
	return nil
}
