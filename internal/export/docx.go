package export

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"

	"resumeforge/pkg/models"
)

// Run sizes are half-points.
const (
	docxTitleSize   = "36"
	docxHeadingSize = "28"
	docxMetaSize    = "20"
	docxMetaColor   = "666666"
)

// renderDocx assembles the Word export. Sections render in a fixed order and
// empty ones are omitted.
func renderDocx(resume models.ExportableResume) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText(resume.PersonalInfo.Name).Size(docxTitleSize).Bold()

	contact := w.AddParagraph().Justification("center")
	contact.AddText(contactLine(resume.PersonalInfo)).Size(docxMetaSize)

	if resume.Summary != "" {
		addHeading(w, "PROFESSIONAL SUMMARY")
		w.AddParagraph().AddText(resume.Summary)
	}

	if len(resume.Experience) > 0 {
		addHeading(w, "WORK EXPERIENCE")
		for _, exp := range resume.Experience {
			head := w.AddParagraph()
			head.AddText(exp.Title).Bold()
			head.AddText(" | ")
			head.AddText(exp.Company).Italic()

			meta := exp.Duration
			if exp.Location != "" {
				meta += " | " + exp.Location
			}
			w.AddParagraph().AddText(meta).Size(docxMetaSize).Color(docxMetaColor)
			w.AddParagraph().AddText(exp.Description)
		}
	}

	if len(resume.Education) > 0 {
		addHeading(w, "EDUCATION")
		for _, edu := range resume.Education {
			head := w.AddParagraph()
			head.AddText(edu.Degree).Bold()
			head.AddText(" | ")
			head.AddText(edu.Institution).Italic()

			meta := edu.Date
			if edu.GPA != "" {
				meta += " | GPA: " + edu.GPA
			}
			w.AddParagraph().AddText(meta).Size(docxMetaSize).Color(docxMetaColor)
		}
	}

	if len(resume.Skills) > 0 {
		addHeading(w, "SKILLS")
		w.AddParagraph().AddText(strings.Join(resume.Skills, " • "))
	}

	if len(resume.Projects) > 0 {
		addHeading(w, "PROJECTS")
		for _, prj := range resume.Projects {
			w.AddParagraph().AddText(prj.Name).Bold()
			w.AddParagraph().AddText(prj.Description)
			if prj.Technologies != "" {
				w.AddParagraph().AddText("Technologies: " + prj.Technologies).Size(docxMetaSize).Color(docxMetaColor)
			}
			if prj.Link != "" {
				w.AddParagraph().AddText("Link: " + prj.Link).Size(docxMetaSize).Color(docxMetaColor)
			}
		}
	}

	if len(resume.Certifications) > 0 {
		addHeading(w, "CERTIFICATIONS")
		for _, cert := range resume.Certifications {
			line := "• " + cert.Name
			if cert.Link != "" {
				line += " - " + cert.Link
			}
			w.AddParagraph().AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addHeading(w *docx.Docx, text string) {
	p := w.AddParagraph()
	p.AddText(text).Size(docxHeadingSize).Bold()
}

// contactLine joins the non-empty contact fields into a single separator line.
func contactLine(info models.PersonalInfo) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{info.Email, info.Phone, info.Location, info.Website} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}
