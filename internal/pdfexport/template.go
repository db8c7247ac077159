package pdfexport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"interview-prep-api/resume/model"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var (
	tmplOnce sync.Once
	tmpl     *template.Template
	tmplErr  error
)

func resumeTemplate() (*template.Template, error) {
	tmplOnce.Do(func() {
		tmpl, tmplErr = template.New("resume.html.tmpl").Funcs(template.FuncMap{
			"join":        func(items []string) string { return strings.Join(items, ", ") },
			"dateRange":   dateRange,
			"contactLine": contactLine,
		}).ParseFS(templateFS, "templates/resume.html.tmpl")
	})
	return tmpl, tmplErr
}

// RenderHTML renders r as a printable HTML page. Values are escaped by html/template.
func RenderHTML(r model.ResumeData) (string, error) {
	t, err := resumeTemplate()
	if err != nil {
		return "", fmt.Errorf("parse resume template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " - Present"
	case start == "":
		return end
	}
	return start + " - " + end
}

func contactLine(c model.ContactInfo) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Email, c.Phone, c.Location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}
