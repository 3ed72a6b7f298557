package models

import (
	"reflect"
	"testing"
)

func TestNormalizeResumeDropsBlankRows(t *testing.T) {
	doc := NewResumeDocument()
	doc.BasicDetails = BasicDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "+1-555-0100",
		Address: "London",
		Website: "https://ada.example.com",
	}
	doc.About = "  Backend engineer.  "
	doc.Experience = append(doc.Experience, Experience{
		Year: "2016-2024", Company: "Acme", Location: "Remote", Role: "Engineer", Description: "Built things.",
	})

	out := NormalizeResume(doc)

	if out.PersonalInfo.Location != "London" {
		t.Errorf("address should map to location, got %q", out.PersonalInfo.Location)
	}
	if out.Summary != "Backend engineer." {
		t.Errorf("summary should be trimmed, got %q", out.Summary)
	}

	// Template blank rows must not survive normalization.
	if len(out.Experience) != 1 {
		t.Fatalf("experience = %d entries, want 1", len(out.Experience))
	}
	if len(out.Education) != 0 || len(out.Projects) != 0 || len(out.Certifications) != 0 {
		t.Errorf("blank template rows leaked: edu=%d prj=%d cert=%d",
			len(out.Education), len(out.Projects), len(out.Certifications))
	}
	if len(out.Skills) != 0 {
		t.Errorf("blank skills leaked: %v", out.Skills)
	}

	exp := out.Experience[0]
	if exp.Title != "Engineer" || exp.Duration != "2016-2024" {
		t.Errorf("role/year should map to title/duration, got %+v", exp)
	}
}

func TestNormalizeResumeMergesSkills(t *testing.T) {
	doc := NewResumeDocument()
	doc.TechSkills = []string{"Go", " ", "Redis"}
	doc.SoftSkills = []string{"Communication", ""}

	out := NormalizeResume(doc)
	want := []string{"Go", "Redis", "Communication"}
	if !reflect.DeepEqual(out.Skills, want) {
		t.Errorf("skills = %v, want %v", out.Skills, want)
	}
}

func TestNormalizeResumeDoesNotMutateInput(t *testing.T) {
	doc := NewResumeDocument()
	doc.TechSkills = []string{"Go"}
	before := doc.Clone()

	NormalizeResume(doc)

	if !reflect.DeepEqual(doc, before) {
		t.Error("normalization must not mutate the document")
	}
}

func TestCloneIndependence(t *testing.T) {
	doc := NewResumeDocument()
	clone := doc.Clone()
	clone.Education[0].Degree = "BSc"
	clone.TechSkills[0] = "Go"

	if doc.Education[0].Degree != "" || doc.TechSkills[0] != "" {
		t.Error("clone mutations leaked into the original")
	}
}
