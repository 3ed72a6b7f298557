package models

// BasicDetails holds the contact block at the top of a resume. Fields may be
// partially empty while the document is being edited; validation decides when
// they are acceptable.
type BasicDetails struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Title   string `json:"title" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Website string `json:"website" validate:"omitempty,url"`
	Address string `json:"address"`
}

// Education represents a single education entry
type Education struct {
	Year       string `json:"year" validate:"required"`
	Degree     string `json:"degree" validate:"required"`
	University string `json:"university" validate:"required"`
	CGPA       string `json:"cgpa"`
}

// Experience represents a single work experience entry
type Experience struct {
	Year        string `json:"year" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Description string `json:"description" validate:"required,min=10"`
}

// Project represents a single project entry
type Project struct {
	Name         string `json:"name" validate:"required"`
	Result       string `json:"result" validate:"required,min=10"`
	Technologies string `json:"technologies" validate:"required"`
	Github       string `json:"github" validate:"omitempty,url"`
}

// Certification represents a single certification entry
type Certification struct {
	Name string `json:"name" validate:"required"`
	Link string `json:"link" validate:"omitempty,url"`
}

// ResumeDocument is the root editable entity. Section slices are homogeneous;
// TechSkills and SoftSkills are bare strings whose order is display order only.
type ResumeDocument struct {
	BasicDetails   BasicDetails    `json:"basicDetails"`
	About          string          `json:"about" validate:"required,min=50,max=500"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	TechSkills     []string        `json:"techSkills"`
	SoftSkills     []string        `json:"softSkills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

// NewResumeDocument returns the all-empty editing template: one blank entry
// per section so the first form row renders without an explicit add.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Education:      []Education{{}},
		Experience:     []Experience{{}},
		TechSkills:     []string{""},
		SoftSkills:     []string{""},
		Projects:       []Project{{}},
		Certifications: []Certification{{}},
	}
}

// Clone returns a deep copy of the document. Section slices are copied so the
// clone can be mutated independently.
func (d *ResumeDocument) Clone() *ResumeDocument {
	c := *d
	c.Education = append([]Education(nil), d.Education...)
	c.Experience = append([]Experience(nil), d.Experience...)
	c.TechSkills = append([]string(nil), d.TechSkills...)
	c.SoftSkills = append([]string(nil), d.SoftSkills...)
	c.Projects = append([]Project(nil), d.Projects...)
	c.Certifications = append([]Certification(nil), d.Certifications...)
	return &c
}

// SectionVisibility is the cross-cutting opt-out flag set. It is independent
// of the document: hiding a section never clears the section's data.
type SectionVisibility struct {
	Experience     bool `json:"experience"`
	Projects       bool `json:"projects"`
	Certifications bool `json:"certifications"`
}

// DefaultSectionVisibility shows every optional section.
func DefaultSectionVisibility() SectionVisibility {
	return SectionVisibility{
		Experience:     true,
		Projects:       true,
		Certifications: true,
	}
}
