package export

import (
	"strings"
	"testing"

	"resumeforge/pkg/models"
)

func sampleResume() models.ExportableResume {
	return models.ExportableResume{
		PersonalInfo: models.PersonalInfo{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+1-555-0100",
			Location: "London",
			Website:  "https://ada.example.com",
		},
		Summary: "Backend engineer focused on resilient distributed systems.",
		Experience: []models.ExperienceEntry{
			{Title: "Senior Engineer", Company: "Acme Corp", Location: "Remote", Duration: "2016-2024", Description: "Built the billing platform."},
		},
		Education: []models.EducationEntry{
			{Degree: "BSc Computer Science", Institution: "Example University", Date: "2012-2016", GPA: "3.9"},
		},
		Skills: []string{"Go", "PostgreSQL", "Redis"},
		Projects: []models.ProjectEntry{
			{Name: "Ledger", Description: "Cut reconciliation time by 80 percent.", Technologies: "Go, Redis", Link: "https://github.com/ada/ledger"},
		},
		Certifications: []models.CertificationEntry{
			{Name: "AWS Solutions Architect", Link: "https://aws.example.com/cert"},
		},
	}
}

func TestRenderTextLayout(t *testing.T) {
	out, err := renderText(sampleResume())
	if err != nil {
		t.Fatalf("renderText failed: %v", err)
	}
	text := string(out)
	lines := strings.Split(text, "\n")

	if lines[0] != "ADA LOVELACE" {
		t.Errorf("first line = %q, want uppercased name", lines[0])
	}
	if lines[1] != strings.Repeat("=", len("Ada Lovelace")) {
		t.Errorf("name rule = %q, want %d equals signs", lines[1], len("Ada Lovelace"))
	}

	for _, want := range []string{
		"Email: ada@example.com",
		"Phone: +1-555-0100",
		"Location: London",
		"Website: https://ada.example.com",
		"PROFESSIONAL SUMMARY",
		"WORK EXPERIENCE",
		"Senior Engineer | Acme Corp",
		"2016-2024 | Remote",
		"EDUCATION",
		"BSc Computer Science | Example University",
		"2012-2016 | GPA: 3.9",
		"SKILLS",
		"Go • PostgreSQL • Redis",
		"PROJECTS",
		"Technologies: Go, Redis",
		"CERTIFICATIONS",
		"• AWS Solutions Architect - https://aws.example.com/cert",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if got := strings.Count(text, strings.Repeat("-", 20)); got != 6 {
		t.Errorf("section rules = %d, want 6", got)
	}
}

func TestRenderTextOmitsEmptySections(t *testing.T) {
	resume := models.ExportableResume{
		PersonalInfo: models.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+1-555-0100"},
		Skills:       []string{"Go"},
	}

	out, err := renderText(resume)
	if err != nil {
		t.Fatalf("renderText failed: %v", err)
	}
	text := string(out)

	for _, heading := range []string{"PROFESSIONAL SUMMARY", "WORK EXPERIENCE", "EDUCATION", "PROJECTS", "CERTIFICATIONS", "Location:", "Website:"} {
		if strings.Contains(text, heading) {
			t.Errorf("empty section heading %q should be omitted", heading)
		}
	}
	if !strings.Contains(text, "SKILLS") {
		t.Error("non-empty skills section should render")
	}
}
