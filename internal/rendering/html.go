package rendering

import (
	"html/template"
	"strings"

	"github.com/priya/resume-builder/internal/types"
)

// htmlResumeTemplate is the print layout handed to headless Chrome for PDF
// output. Styling is inlined so the page renders from a bare temp file.
const htmlResumeTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 18mm; }
  body { font-family: Georgia, 'Times New Roman', serif; font-size: 10.5pt; color: #111; }
  h1 { font-size: 20pt; margin: 0; text-align: center; }
  .contact { text-align: center; margin-bottom: 12px; }
  h2 { font-size: 11pt; letter-spacing: 1px; text-transform: uppercase;
       border-bottom: 1px solid #111; margin: 14px 0 6px; }
  .entry { margin-bottom: 6px; }
  .entry .head { display: flex; justify-content: space-between; }
  .entry .head .title { font-weight: bold; }
  ul { margin: 2px 0 0 18px; padding: 0; }
</style>
</head>
<body>
{{- with .Contact}}
<h1>{{.Name}}</h1>
<div class="contact">{{.Email}}{{if .PhoneNumber}} &middot; {{.PhoneNumber}}{{end}}{{if .LinkedIn}} &middot; {{.LinkedIn}}{{end}}</div>
{{- end}}
{{- with .Summary}}
<h2>Summary</h2>
<p>{{.Content}}</p>
{{- end}}
{{- if .Education}}
<h2>Education</h2>
{{- range .Education}}{{with .Payload}}
<div class="entry">
  <div class="head"><span class="title">{{.University}}</span><span>{{dates .StartDate .EndDate .IsPresent}}</span></div>
  <div>{{.Degree}}{{if .Major}}, {{.Major}}{{end}}{{if .CGPA}} &mdash; GPA {{.CGPA}}{{end}}</div>
</div>
{{- end}}{{- end}}
{{- end}}
{{- if .Experience}}
<h2>Experience</h2>
{{- range .Experience}}{{with .Payload}}
<div class="entry">
  <div class="head"><span class="title">{{.JobTitle}}, {{.Company}}</span><span>{{dates .StartDate .EndDate .IsPresent}}</span></div>
  {{- if .Location}}<div>{{.Location}}</div>{{end}}
  {{- if .Description}}
  <ul>{{range bullets .Description}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
</div>
{{- end}}{{- end}}
{{- end}}
{{- if .Skills}}
<h2>Skills</h2>
<div>{{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s.Payload.Name}}{{end}}</div>
{{- end}}
{{- if .Projects}}
<h2>Projects</h2>
{{- range .Projects}}{{with .Payload}}
<div class="entry">
  <div class="head"><span class="title">{{.Name}}</span>{{if .URL}}<span>{{.URL}}</span>{{end}}</div>
  {{- if .Description}}<div>{{.Description}}</div>{{end}}
</div>
{{- end}}{{- end}}
{{- end}}
{{- if .Certifications}}
<h2>Certifications</h2>
{{- range .Certifications}}{{with .Payload}}
<div class="entry">
  <div class="head"><span class="title">{{.Name}}</span>{{if not .IssuedDate.IsZero}}<span>{{.IssuedDate.String}}</span>{{end}}</div>
  <div>{{.IssuedBy}}</div>
</div>
{{- end}}{{- end}}
{{- end}}
{{- if .Involvements}}
<h2>Involvement</h2>
{{- range .Involvements}}{{with .Payload}}
<div class="entry">
  <div class="head"><span class="title">{{.Role}}, {{.Organization}}</span>{{if .Duration}}<span>{{.Duration}}</span>{{end}}</div>
  {{- if .Description}}<div>{{.Description}}</div>{{end}}
</div>
{{- end}}{{- end}}
{{- end}}
</body>
</html>
`

// htmlDates mirrors formatDateRange without LaTeX escaping; html/template
// handles its own escaping.
func htmlDates(start, end types.DateParts, isPresent bool) string {
	from := start.String()
	to := "Present"
	if !isPresent {
		to = end.String()
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " – " + to
	}
}

// RenderHTML renders the resume profile to the HTML print layout.
func RenderHTML(p *types.ResumeProfile) (string, error) {
	if p == nil {
		return "", &RenderError{Message: "nil resume profile"}
	}

	tmpl, err := template.New("resume-html").Funcs(template.FuncMap{
		"dates":   htmlDates,
		"bullets": splitBullets,
	}).Parse(htmlResumeTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse HTML template", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, p); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return out.String(), nil
}
