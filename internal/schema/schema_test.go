package schema

import (
	"strings"
	"testing"

	"resumeforge/pkg/models"
)

// filledDocument returns a document that passes every rule.
func filledDocument() *models.ResumeDocument {
	return &models.ResumeDocument{
		BasicDetails: models.BasicDetails{
			Name:    "Ada Lovelace",
			Title:   "Software Engineer",
			Email:   "ada@example.com",
			Phone:   "+1-555-0100",
			Website: "https://ada.example.com",
			Address: "London",
		},
		About: "Backend engineer with eight years of experience building resilient distributed systems.",
		Education: []models.Education{
			{Year: "2012-2016", Degree: "BSc Computer Science", University: "Example University", CGPA: "3.9"},
		},
		Experience: []models.Experience{
			{Year: "2016-2024", Company: "Acme Corp", Location: "Remote", Role: "Senior Engineer", Description: "Built and operated the billing platform."},
		},
		TechSkills: []string{"Go", "PostgreSQL"},
		SoftSkills: []string{"Communication"},
		Projects: []models.Project{
			{Name: "Ledger", Result: "Cut reconciliation time by 80 percent.", Technologies: "Go, Redis", Github: "https://github.com/ada/ledger"},
		},
		Certifications: []models.Certification{
			{Name: "AWS Solutions Architect", Link: "https://aws.example.com/cert"},
		},
	}
}

func TestValidateDocumentValid(t *testing.T) {
	s := NewSet()
	tree := s.ValidateDocument(filledDocument(), nil)
	if !tree.Empty() {
		t.Errorf("filled document should validate, got errors: %v", tree.Flatten())
	}
}

func TestValidateDocumentMissingAbout(t *testing.T) {
	s := NewSet()
	doc := filledDocument()
	doc.About = ""

	tree := s.ValidateDocument(doc, nil)
	msg, ok := tree.Lookup("about")
	if !ok {
		t.Fatalf("missing about should produce an error at path about, got %v", tree.Flatten())
	}
	if msg != "Professional summary must be at least 50 characters" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestValidateDocumentRecordPaths(t *testing.T) {
	s := NewSet()
	doc := filledDocument()
	doc.BasicDetails.Email = "not-an-email"
	doc.Education[0].Year = ""

	tree := s.ValidateDocument(doc, nil)

	if msg, ok := tree.Lookup("basicDetails.email"); !ok || msg != "Invalid email address" {
		t.Errorf("basicDetails.email = (%q, %v)", msg, ok)
	}
	if msg, ok := tree.Lookup("education.0.year"); !ok || msg != "Year is required" {
		t.Errorf("education.0.year = (%q, %v)", msg, ok)
	}
}

func TestValidateDocumentExperienceVisibility(t *testing.T) {
	s := NewSet()

	// Only the blank template row: required while visible, fine while hidden.
	doc := filledDocument()
	doc.Experience = []models.Experience{{}}

	visible := models.DefaultSectionVisibility()
	tree := s.ValidateDocument(doc, &visible)
	if _, ok := tree.Lookup("experience"); !ok {
		t.Error("empty experience should fail while the section is visible")
	}

	hidden := visible
	hidden.Experience = false
	tree = s.ValidateDocument(doc, &hidden)
	if !tree.Empty() {
		t.Errorf("hidden empty experience should validate, got %v", tree.Flatten())
	}
}

func TestValidateDocumentPartialExperienceRow(t *testing.T) {
	s := NewSet()
	doc := filledDocument()
	// A half-filled row is not blank, so its remaining fields must validate.
	doc.Experience = append(doc.Experience, models.Experience{Company: "Initech"})

	tree := s.ValidateDocument(doc, nil)
	if _, ok := tree.Lookup("experience.1.role"); !ok {
		t.Errorf("partially filled experience row should report missing fields, got %v", tree.Flatten())
	}
}

func TestValidateDocumentBlankCertificationSkipped(t *testing.T) {
	s := NewSet()
	doc := filledDocument()
	doc.Certifications = []models.Certification{{}}

	tree := s.ValidateDocument(doc, nil)
	if !tree.Empty() {
		t.Errorf("blank certification row should be skipped, got %v", tree.Flatten())
	}
}

func TestValidateDocumentSkills(t *testing.T) {
	s := NewSet()
	doc := filledDocument()
	doc.TechSkills = []string{"Go", ""}

	tree := s.ValidateDocument(doc, nil)
	if _, ok := tree.Lookup("techSkills.1"); !ok {
		t.Error("blank skill among several should be reported per index")
	}

	doc.TechSkills = []string{""}
	tree = s.ValidateDocument(doc, nil)
	if msg, ok := tree.Lookup("techSkills"); !ok || !strings.Contains(msg, "technical skill") {
		t.Errorf("all-blank skills should fail at section level, got (%q, %v)", msg, ok)
	}
}

func TestValidateSection(t *testing.T) {
	s := NewSet()

	flat, err := s.ValidateSection(SectionAbout, "too short")
	if err != nil {
		t.Fatalf("ValidateSection(about) error: %v", err)
	}
	if flat[""] != "Professional summary must be at least 50 characters" {
		t.Errorf("about section error = %v", flat)
	}

	flat, err = s.ValidateSection(SectionBasicDetails, models.BasicDetails{
		Name:  "Ada Lovelace",
		Title: "Engineer",
		Email: "bad",
	})
	if err != nil {
		t.Fatalf("ValidateSection(basicDetails) error: %v", err)
	}
	if flat["email"] != "Invalid email address" {
		t.Errorf("basicDetails section errors = %v", flat)
	}

	if _, err := s.ValidateSection("unknown", nil); err == nil {
		t.Error("unknown section should error")
	}
}

func TestKnownSection(t *testing.T) {
	for _, name := range []string{
		SectionBasicDetails, SectionAbout, SectionEducation, SectionExperience,
		SectionTechSkills, SectionSoftSkills, SectionProjects, SectionCertifications,
	} {
		if !KnownSection(name) {
			t.Errorf("KnownSection(%q) = false", name)
		}
	}
	if KnownSection("hobbies") {
		t.Error("KnownSection(hobbies) = true")
	}
}
