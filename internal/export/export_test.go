package export

import (
	"testing"

	"resumeforge/pkg/models"
)

func TestArtifactName(t *testing.T) {
	tests := []struct {
		base string
		ext  string
		want string
	}{
		{"", ".pdf", "resume.pdf"},
		{"my resume", ".pdf", "my_resume.pdf"},
		{"ada.pdf", ".pdf", "ada.pdf"},
		{"../../etc/passwd", ".txt", "etc_passwd.txt"},
		{"  Ada Lovelace CV  ", ".docx", "Ada_Lovelace_CV.docx"},
		{"???", ".txt", "resume.txt"},
	}

	for _, tt := range tests {
		if got := artifactName(tt.base, tt.ext); got != tt.want {
			t.Errorf("artifactName(%q, %q) = %q, want %q", tt.base, tt.ext, got, tt.want)
		}
	}
}

func TestResumeEmpty(t *testing.T) {
	if !resumeEmpty(models.ExportableResume{}) {
		t.Error("zero resume should be empty")
	}
	if resumeEmpty(models.ExportableResume{Summary: "something"}) {
		t.Error("resume with a summary is not empty")
	}
	if resumeEmpty(models.ExportableResume{Skills: []string{"Go"}}) {
		t.Error("resume with skills is not empty")
	}
}
