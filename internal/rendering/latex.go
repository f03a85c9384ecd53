package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/priya/resume-builder/internal/types"
)

// defaultLaTeXTemplate is the built-in one-column resume layout. A custom
// template file may be supplied instead; it receives the same ResumeProfile
// and funcs.
const defaultLaTeXTemplate = `\documentclass[10pt]{article}
\usepackage[margin=0.75in]{geometry}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}
\setlist[itemize]{noitemsep,topsep=2pt,leftmargin=1.2em}
\newcommand{\sectionrule}{\vspace{2pt}\hrule\vspace{6pt}}
\pagestyle{empty}
\begin{document}
{{- with .Contact}}
\begin{center}
  {\LARGE \textbf{ {{- escape .Name -}} }}\\[2pt]
  {{escape .Email}}{{if .PhoneNumber}} \textbar{} {{escape .PhoneNumber}}{{end}}{{if .LinkedIn}} \textbar{} {{escape .LinkedIn}}{{end}}
\end{center}
{{- end}}
{{- with .Summary}}

\textbf{SUMMARY}
\sectionrule
{{escape .Content}}
{{- end}}
{{- if .Education}}

\textbf{EDUCATION}
\sectionrule
{{- range .Education}}{{with .Payload}}
\textbf{ {{- escape .University -}} } \hfill {{dates .StartDate .EndDate .IsPresent}}\\
{{escape .Degree}}{{if .Major}}, {{escape .Major}}{{end}}{{if .CGPA}} \hfill GPA: {{escape .CGPA}}{{end}}
{{end}}{{- end}}
{{- end}}
{{- if .Experience}}

\textbf{EXPERIENCE}
\sectionrule
{{- range .Experience}}{{with .Payload}}
\textbf{ {{- escape .JobTitle -}} }, {{escape .Company}}{{if .Location}} -- {{escape .Location}}{{end}} \hfill {{dates .StartDate .EndDate .IsPresent}}\\
{{- if .Description}}
\begin{itemize}
{{- range bullets .Description}}
  \item {{escape .}}
{{- end}}
\end{itemize}
{{- end}}
{{end}}{{- end}}
{{- end}}
{{- if .Skills}}

\textbf{SKILLS}
\sectionrule
{{- range $i, $s := .Skills}}{{if $i}}, {{end}}{{escape $s.Payload.Name}}{{- end}}
{{- end}}
{{- if .Projects}}

\textbf{PROJECTS}
\sectionrule
{{- range .Projects}}{{with .Payload}}
\textbf{ {{- escape .Name -}} }{{if .URL}} \hfill \url{ {{- .URL -}} }{{end}}\\
{{- if .Description}}
{{escape .Description}}
{{- end}}
{{end}}{{- end}}
{{- end}}
{{- if .Certifications}}

\textbf{CERTIFICATIONS}
\sectionrule
{{- range .Certifications}}{{with .Payload}}
\textbf{ {{- escape .Name -}} }, {{escape .IssuedBy}}{{if not .IssuedDate.IsZero}} \hfill {{escape .IssuedDate.String}}{{end}}\\
{{end}}{{- end}}
{{- end}}
{{- if .Involvements}}

\textbf{INVOLVEMENT}
\sectionrule
{{- range .Involvements}}{{with .Payload}}
\textbf{ {{- escape .Role -}} }, {{escape .Organization}}{{if .Duration}} \hfill {{escape .Duration}}{{end}}\\
{{- if .Description}}
{{escape .Description}}
{{- end}}
{{end}}{{- end}}
{{- end}}
\end{document}
`

// templateFuncs are available to both the built-in and custom templates.
var templateFuncs = template.FuncMap{
	"escape":  EscapeLaTeX,
	"dates":   formatDateRange,
	"bullets": splitBullets,
}

// formatDateRange renders "May 2022 -- Present" style ranges. When isPresent
// is set the end date is ignored even if a stale value is stored.
func formatDateRange(start, end types.DateParts, isPresent bool) string {
	from := EscapeLaTeX(start.String())
	to := "Present"
	if !isPresent {
		to = EscapeLaTeX(end.String())
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " -- " + to
	}
}

// splitBullets turns a newline-separated description into bullet lines.
func splitBullets(description string) []string {
	var out []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// RenderLaTeX renders a resume profile to LaTeX source. An empty templatePath
// selects the built-in template.
func RenderLaTeX(p *types.ResumeProfile, templatePath string) (string, error) {
	if p == nil {
		return "", &RenderError{Message: "nil resume profile"}
	}

	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, p); err != nil {
		return "", &TemplateError{Message: "failed to execute resume template", Cause: err}
	}
	return out.String(), nil
}

func loadTemplate(templatePath string) (*template.Template, error) {
	source := defaultLaTeXTemplate
	if templatePath != "" {
		content, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		source = string(content)
	}

	tmpl, err := template.New("resume").Funcs(templateFuncs).Parse(source)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse resume template", Cause: err}
	}
	return tmpl, nil
}
