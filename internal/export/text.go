package export

import (
	"bytes"
	"strings"
	"text/template"

	"resumeforge/pkg/models"
)

var textFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"rule": func(ch string, n int) string {
		return strings.Repeat(ch, n)
	},
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
}

// textTemplate lays the resume out in the ATS-friendly plain-text shape:
// the name in capitals over an equals rule sized to it, a contact block,
// then each non-empty section under a dashed heading.
var textTemplate = template.Must(template.New("resume").Funcs(textFuncs).Parse(
	`{{upper .PersonalInfo.Name}}
{{rule "=" (len .PersonalInfo.Name)}}

Email: {{.PersonalInfo.Email}}
Phone: {{.PersonalInfo.Phone}}
{{- if .PersonalInfo.Location}}
Location: {{.PersonalInfo.Location}}
{{- end}}
{{- if .PersonalInfo.Website}}
Website: {{.PersonalInfo.Website}}
{{- end}}
{{- if .Summary}}

PROFESSIONAL SUMMARY
{{rule "-" 20}}
{{.Summary}}
{{- end}}
{{- if .Experience}}

WORK EXPERIENCE
{{rule "-" 20}}
{{- range .Experience}}

{{.Title}} | {{.Company}}
{{.Duration}}{{if .Location}} | {{.Location}}{{end}}
{{.Description}}
{{- end}}
{{- end}}
{{- if .Education}}

EDUCATION
{{rule "-" 20}}
{{- range .Education}}

{{.Degree}} | {{.Institution}}
{{.Date}}{{if .GPA}} | GPA: {{.GPA}}{{end}}
{{- end}}
{{- end}}
{{- if .Skills}}

SKILLS
{{rule "-" 20}}
{{join .Skills " • "}}
{{- end}}
{{- if .Projects}}

PROJECTS
{{rule "-" 20}}
{{- range .Projects}}

{{.Name}}
{{.Description}}
{{- if .Technologies}}
Technologies: {{.Technologies}}
{{- end}}
{{- if .Link}}
Link: {{.Link}}
{{- end}}
{{- end}}
{{- end}}
{{- if .Certifications}}

CERTIFICATIONS
{{rule "-" 20}}
{{- range .Certifications}}
• {{.Name}}{{if .Link}} - {{.Link}}{{end}}
{{- end}}
{{- end}}
`))

// renderText renders the plain-text export.
func renderText(resume models.ExportableResume) ([]byte, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, resume); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
