package resumes

import (
	"strings"

	"interview-prep-api/resume/model"
)

// RenderDocument flattens a resume to plain text. Output depends only on r.
func RenderDocument(r model.ResumeData) string {
	var b strings.Builder
	line := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	section := func(title string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.ToUpper(title))
		b.WriteByte('\n')
	}

	c := r.ContactInfo
	line(c.Name)
	line(joinNonEmpty(" | ", c.Email, c.Phone, c.Location))
	line(joinNonEmpty(" | ", c.LinkedIn, c.Website))

	if s := strings.TrimSpace(r.Summary); s != "" {
		section("Summary")
		line(s)
	}

	if len(r.Skills.Technical)+len(r.Skills.Soft)+len(r.Skills.Tools) > 0 {
		section("Skills")
		if len(r.Skills.Technical) > 0 {
			line("Technical: " + strings.Join(r.Skills.Technical, ", "))
		}
		if len(r.Skills.Tools) > 0 {
			line("Tools: " + strings.Join(r.Skills.Tools, ", "))
		}
		if len(r.Skills.Soft) > 0 {
			line("Soft: " + strings.Join(r.Skills.Soft, ", "))
		}
	}

	if len(r.Experience) > 0 {
		section("Experience")
		for _, e := range r.Experience {
			line(joinNonEmpty(" - ", e.Title, e.Company))
			line(joinNonEmpty(" | ", e.Location, dateRange(e.StartDate, e.EndDate)))
			for _, d := range e.Description {
				if d = strings.TrimSpace(d); d != "" {
					line("• " + d)
				}
			}
		}
	}

	if len(r.Education) > 0 {
		section("Education")
		for _, e := range r.Education {
			degree := joinNonEmpty(" in ", e.Degree, e.Field)
			line(joinNonEmpty(" - ", degree, e.Institution))
			line(joinNonEmpty(" | ", e.Location, e.GraduationDate, prefixed("GPA: ", e.GPA)))
		}
	}

	if len(r.Projects) > 0 {
		section("Projects")
		for _, p := range r.Projects {
			line(p.Name)
			line(p.Description)
			if len(p.Technologies) > 0 {
				line("Technologies: " + strings.Join(p.Technologies, ", "))
			}
			line(p.Link)
		}
	}

	if len(r.Certifications) > 0 {
		section("Certifications")
		for _, c := range r.Certifications {
			line(joinNonEmpty(" - ", c.Name, c.Issuer, c.Date))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return end
	}
}

func prefixed(prefix, v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return prefix + strings.TrimSpace(v)
}
