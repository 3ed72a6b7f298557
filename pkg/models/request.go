package models

// UpdateFieldRequest mutates one field of a draft document. For scalar list
// sections (techSkills, softSkills) Field stays empty and Value replaces the
// element at Index wholesale.
type UpdateFieldRequest struct {
	Section string `json:"section" validate:"required,section_name"`
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// PatchArrayRequest appends to or removes from a section array.
type PatchArrayRequest struct {
	Section string      `json:"section" validate:"required,section_name"`
	Op      string      `json:"op" validate:"required,oneof=add remove"`
	Index   int         `json:"index"`
	Item    interface{} `json:"item,omitempty"`
}

// VisibilityRequest toggles, shows or hides one optional section.
type VisibilityRequest struct {
	Section string `json:"section" validate:"required,oneof=experience projects certifications"`
	Op      string `json:"op" validate:"required,oneof=toggle show hide"`
}

// CreateDraftRequest opens a new editing session, optionally seeded from an
// existing document.
type CreateDraftRequest struct {
	Document *ResumeDocument `json:"document,omitempty"`
}

// SaveResumeRequest persists a document under the user's key.
type SaveResumeRequest struct {
	UserID   string          `json:"user_id" validate:"required"`
	Name     string          `json:"name"`
	Document *ResumeDocument `json:"document" validate:"required"`
}

// GenerateOptions tune the remote ATS-optimization pass.
type GenerateOptions struct {
	TargetRole      string `json:"targetRole,omitempty"`
	Industry        string `json:"industry,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior"`
	ATSOptimization bool   `json:"atsOptimization,omitempty"`
	KeywordDensity  string `json:"keywordDensity,omitempty" validate:"omitempty,oneof=low medium high"`
}

// GenerateResumeRequest submits a full document for remote generation.
type GenerateResumeRequest struct {
	Document *ResumeDocument  `json:"document" validate:"required"`
	Options  *GenerateOptions `json:"options,omitempty"`
}

// LoginRequest authenticates against the remote account service.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterRequest creates a remote account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// CertificateRequest holds the fields of a course certificate.
type CertificateRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	CourseName string `json:"courseName" validate:"required"`
	FromDate   string `json:"fromDate" validate:"required"`
	ToDate     string `json:"toDate" validate:"required"`
}

// ExportRequest names the artifact to produce. For the PDF path DraftID
// selects the preview page to capture; the other exporters read Document.
type ExportRequest struct {
	DraftID  string          `json:"draft_id,omitempty"`
	Document *ResumeDocument `json:"document,omitempty"`
	FileName string          `json:"file_name,omitempty"`
}
