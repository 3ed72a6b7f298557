package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"resumeforge/pkg/models"
)

func TestRenderDocx(t *testing.T) {
	data, err := renderDocx(sampleResume())
	if err != nil {
		t.Fatalf("renderDocx failed: %v", err)
	}
	// A .docx is a zip archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output is not a zip archive")
	}

	xml := docxDocumentXML(t, data)
	for _, heading := range []string{
		"PROFESSIONAL SUMMARY", "WORK EXPERIENCE", "EDUCATION",
		"SKILLS", "PROJECTS", "CERTIFICATIONS",
	} {
		if !strings.Contains(xml, heading) {
			t.Errorf("document should contain %q heading", heading)
		}
	}
}

func TestRenderDocxOmitsEmptySections(t *testing.T) {
	resume := sampleResume()
	resume.Skills = nil
	resume.Projects = nil
	resume.Certifications = nil

	data, err := renderDocx(resume)
	if err != nil {
		t.Fatalf("renderDocx failed: %v", err)
	}

	xml := docxDocumentXML(t, data)
	for _, heading := range []string{"SKILLS", "PROJECTS", "CERTIFICATIONS"} {
		if strings.Contains(xml, heading) {
			t.Errorf("document should omit %q heading for an empty section", heading)
		}
	}
	if !strings.Contains(xml, "WORK EXPERIENCE") {
		t.Error("populated sections should still render")
	}
}

// docxDocumentXML extracts word/document.xml from the rendered archive.
func docxDocumentXML(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("opening docx archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening document.xml: %v", err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading document.xml: %v", err)
		}
		return string(content)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestContactLine(t *testing.T) {
	tests := []struct {
		info models.PersonalInfo
		want string
	}{
		{
			models.PersonalInfo{Email: "ada@example.com", Phone: "+1-555-0100", Location: "London", Website: "https://ada.example.com"},
			"ada@example.com | +1-555-0100 | London | https://ada.example.com",
		},
		{
			models.PersonalInfo{Email: "ada@example.com", Phone: "+1-555-0100"},
			"ada@example.com | +1-555-0100",
		},
		{models.PersonalInfo{}, ""},
	}

	for _, tt := range tests {
		if got := contactLine(tt.info); got != tt.want {
			t.Errorf("contactLine(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}
