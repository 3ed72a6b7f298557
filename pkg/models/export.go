package models

import "strings"

// PersonalInfo is the flattened contact record used by all exporters.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceEntry is a normalized work experience record
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is a normalized education record
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
	GPA         string `json:"gpa,omitempty"`
}

// ProjectEntry is a normalized project record
type ProjectEntry struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

// CertificationEntry is a normalized certification record
type CertificationEntry struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// ExportableResume is the normalized projection of a ResumeDocument consumed
// uniformly by the PDF, Word and text exporters. It decouples export code
// from the editable document's field names, and carries no blank filler
// entries: sections that end up empty here are omitted from the output.
type ExportableResume struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Summary        string               `json:"summary,omitempty"`
	Experience     []ExperienceEntry    `json:"experience,omitempty"`
	Education      []EducationEntry     `json:"education,omitempty"`
	Skills         []string             `json:"skills,omitempty"`
	Projects       []ProjectEntry       `json:"projects,omitempty"`
	Certifications []CertificationEntry `json:"certifications,omitempty"`
}

// NormalizeResume projects the editable document into its exportable form.
// Blank filler rows (the empty template entries the editor seeds) are dropped
// so exporters never render empty headings. The input is not mutated.
func NormalizeResume(doc *ResumeDocument) ExportableResume {
	out := ExportableResume{
		PersonalInfo: PersonalInfo{
			Name:     doc.BasicDetails.Name,
			Email:    doc.BasicDetails.Email,
			Phone:    doc.BasicDetails.Phone,
			Location: doc.BasicDetails.Address,
			Website:  doc.BasicDetails.Website,
		},
		Summary: strings.TrimSpace(doc.About),
	}

	for _, exp := range doc.Experience {
		if isBlank(exp.Role, exp.Company, exp.Description) {
			continue
		}
		out.Experience = append(out.Experience, ExperienceEntry{
			Title:       exp.Role,
			Company:     exp.Company,
			Location:    exp.Location,
			Duration:    exp.Year,
			Description: exp.Description,
		})
	}

	for _, edu := range doc.Education {
		if isBlank(edu.Degree, edu.University) {
			continue
		}
		out.Education = append(out.Education, EducationEntry{
			Degree:      edu.Degree,
			Institution: edu.University,
			Date:        edu.Year,
			GPA:         edu.CGPA,
		})
	}

	for _, skill := range append(append([]string(nil), doc.TechSkills...), doc.SoftSkills...) {
		if s := strings.TrimSpace(skill); s != "" {
			out.Skills = append(out.Skills, s)
		}
	}

	for _, prj := range doc.Projects {
		if isBlank(prj.Name, prj.Result) {
			continue
		}
		out.Projects = append(out.Projects, ProjectEntry{
			Name:         prj.Name,
			Description:  prj.Result,
			Technologies: prj.Technologies,
			Link:         prj.Github,
		})
	}

	for _, cert := range doc.Certifications {
		if isBlank(cert.Name) {
			continue
		}
		out.Certifications = append(out.Certifications, CertificationEntry{
			Name: cert.Name,
			Link: cert.Link,
		})
	}

	return out
}

// isBlank reports whether every given field is empty after trimming.
func isBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
