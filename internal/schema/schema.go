package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"resumeforge/pkg/models"
)

// Section names as they appear in field paths and API payloads.
const (
	SectionBasicDetails   = "basicDetails"
	SectionAbout          = "about"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionTechSkills     = "techSkills"
	SectionSoftSkills     = "softSkills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

const aboutRules = "required,min=50,max=500"

// Set is the declarative per-section rule set. Rules live in the struct tags
// of pkg/models; Set turns rule failures into user-facing messages keyed by
// dotted field path.
type Set struct {
	validate *validator.Validate
}

// NewSet builds the rule set. Field names in error paths come from json tags
// so paths match the wire shape of the document.
func NewSet() *Set {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Set{validate: v}
}

// ValidateDocument runs whole-document validation. When vis is non-nil the
// rule set adapts: experience entries are required only while that section is
// visible. A nil return-tree never happens; an Empty tree means valid.
//
// Optional sections skip rows that are entirely blank (the editor seeds one
// blank row per section); required sections validate rows as entered.
func (s *Set) ValidateDocument(doc *models.ResumeDocument, vis *models.SectionVisibility) *ErrorTree {
	tree := Node()

	s.checkRecord(tree, SectionBasicDetails, SectionBasicDetails, doc.BasicDetails)
	s.checkAbout(tree, SectionAbout, doc.About)

	if len(doc.Education) == 0 {
		tree.Add(SectionEducation, "At least one education entry is required")
	}
	for i, edu := range doc.Education {
		s.checkRecord(tree, SectionEducation, fmt.Sprintf("%s.%d", SectionEducation, i), edu)
	}

	if expRequired := vis == nil || vis.Experience; expRequired && countFilled(doc.Experience) == 0 {
		tree.Add(SectionExperience, "At least one work experience is required when experience section is visible")
	}
	for i, exp := range doc.Experience {
		if experienceBlank(exp) {
			continue
		}
		s.checkRecord(tree, SectionExperience, fmt.Sprintf("%s.%d", SectionExperience, i), exp)
	}

	s.checkSkills(tree, SectionTechSkills, doc.TechSkills, "At least one technical skill is required")
	s.checkSkills(tree, SectionSoftSkills, doc.SoftSkills, "At least one soft skill is required")

	if len(doc.Projects) == 0 {
		tree.Add(SectionProjects, "At least one project is required")
	}
	for i, prj := range doc.Projects {
		s.checkRecord(tree, SectionProjects, fmt.Sprintf("%s.%d", SectionProjects, i), prj)
	}

	for i, cert := range doc.Certifications {
		if certificationBlank(cert) {
			continue
		}
		s.checkRecord(tree, SectionCertifications, fmt.Sprintf("%s.%d", SectionCertifications, i), cert)
	}

	return tree
}

// ValidateSection runs a single section's rule set and returns a flat mapping
// from field path (relative to the section) to message. Unknown sections are
// an error; an empty map means the section is valid.
func (s *Set) ValidateSection(section string, data interface{}) (map[string]string, error) {
	flat := make(map[string]string)
	tree := Node()

	switch section {
	case SectionBasicDetails:
		details, ok := data.(models.BasicDetails)
		if !ok {
			return nil, fmt.Errorf("section %s expects BasicDetails, got %T", section, data)
		}
		s.checkRecord(tree, section, "x", details)

	case SectionAbout:
		about, ok := data.(string)
		if !ok {
			return nil, fmt.Errorf("section %s expects string, got %T", section, data)
		}
		s.checkAbout(tree, "x", about)

	case SectionEducation:
		entries, ok := data.([]models.Education)
		if !ok {
			return nil, fmt.Errorf("section %s expects []Education, got %T", section, data)
		}
		for i, e := range entries {
			s.checkRecord(tree, section, fmt.Sprintf("x.%d", i), e)
		}

	case SectionExperience:
		entries, ok := data.([]models.Experience)
		if !ok {
			return nil, fmt.Errorf("section %s expects []Experience, got %T", section, data)
		}
		for i, e := range entries {
			if experienceBlank(e) {
				continue
			}
			s.checkRecord(tree, section, fmt.Sprintf("x.%d", i), e)
		}

	case SectionProjects:
		entries, ok := data.([]models.Project)
		if !ok {
			return nil, fmt.Errorf("section %s expects []Project, got %T", section, data)
		}
		for i, e := range entries {
			s.checkRecord(tree, section, fmt.Sprintf("x.%d", i), e)
		}

	case SectionCertifications:
		entries, ok := data.([]models.Certification)
		if !ok {
			return nil, fmt.Errorf("section %s expects []Certification, got %T", section, data)
		}
		for i, e := range entries {
			if certificationBlank(e) {
				continue
			}
			s.checkRecord(tree, section, fmt.Sprintf("x.%d", i), e)
		}

	case SectionTechSkills, SectionSoftSkills:
		skills, ok := data.([]string)
		if !ok {
			return nil, fmt.Errorf("section %s expects []string, got %T", section, data)
		}
		for i, skill := range skills {
			if strings.TrimSpace(skill) == "" {
				tree.Add(fmt.Sprintf("x.%d", i), "Skill cannot be empty")
			}
		}

	default:
		return nil, fmt.Errorf("unknown section: %s", section)
	}

	for path, msg := range tree.Flatten() {
		flat[strings.TrimPrefix(strings.TrimPrefix(path, "x."), "x")] = msg
	}
	return flat, nil
}

// KnownSection reports whether name is a recognized section.
func KnownSection(name string) bool {
	switch name {
	case SectionBasicDetails, SectionAbout, SectionEducation, SectionExperience,
		SectionTechSkills, SectionSoftSkills, SectionProjects, SectionCertifications:
		return true
	}
	return false
}

// checkRecord validates one tagged struct and records failures under prefix.
func (s *Set) checkRecord(tree *ErrorTree, section, prefix string, rec interface{}) {
	err := s.validate.Struct(rec)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		tree.Add(prefix, err.Error())
		return
	}
	for _, fe := range verrs {
		tree.Add(prefix+"."+fe.Field(), messageFor(section, fe.Field(), fe.Tag()))
	}
}

func (s *Set) checkAbout(tree *ErrorTree, path, about string) {
	if err := s.validate.Var(about, aboutRules); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			tree.Add(path, err.Error())
			return
		}
		tree.Add(path, messageFor(SectionAbout, SectionAbout, verrs[0].Tag()))
	}
}

func (s *Set) checkSkills(tree *ErrorTree, section string, skills []string, minMessage string) {
	filled := 0
	for i, skill := range skills {
		if strings.TrimSpace(skill) == "" {
			if len(skills) > 1 {
				tree.Add(fmt.Sprintf("%s.%d", section, i), "Skill cannot be empty")
			}
			continue
		}
		filled++
	}
	if filled == 0 {
		tree.Add(section, minMessage)
	}
}

func experienceBlank(e models.Experience) bool {
	return strings.TrimSpace(e.Year+e.Company+e.Location+e.Role+e.Description) == ""
}

func certificationBlank(c models.Certification) bool {
	return strings.TrimSpace(c.Name+c.Link) == ""
}

func countFilled(entries []models.Experience) int {
	n := 0
	for _, e := range entries {
		if !experienceBlank(e) {
			n++
		}
	}
	return n
}

// messageFor resolves a user-facing message for a failed rule. Unmapped
// combinations fall back to a generic message so new rules degrade safely.
func messageFor(section, field, tag string) string {
	if msg, ok := messages[section+"."+field+"."+tag]; ok {
		return msg
	}
	if msg, ok := messages[section+"."+field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

var messages = map[string]string{
	"basicDetails.name.required":  "Name must be at least 2 characters",
	"basicDetails.name.min":       "Name must be at least 2 characters",
	"basicDetails.name.max":       "Name too long",
	"basicDetails.title.required": "Job title is required",
	"basicDetails.title.min":      "Job title is required",
	"basicDetails.title.max":      "Title too long",
	"basicDetails.email":          "Invalid email address",
	"basicDetails.website":        "Invalid website URL",

	"about.about.required": "Professional summary must be at least 50 characters",
	"about.about.min":      "Professional summary must be at least 50 characters",
	"about.about.max":      "Summary too long",

	"education.year":       "Year is required",
	"education.degree":     "Degree is required",
	"education.university": "University is required",

	"experience.year":        "Duration is required",
	"experience.company":     "Company name is required",
	"experience.location":    "Location is required",
	"experience.role":        "Job title is required",
	"experience.description": "Description must be at least 10 characters",

	"projects.name":         "Project name is required",
	"projects.result":       "Description must be at least 10 characters",
	"projects.technologies": "Technologies are required",
	"projects.github":       "Invalid GitHub URL",

	"certifications.name": "Certification name is required",
	"certifications.link": "Invalid certificate URL",
}
