package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ResumeData is the structured resume exchanged with the generation service and stored in
// envelopes. TailoringNotes is only present on tailored output.
type ResumeData struct {
	ContactInfo    ContactInfo     `json:"contactInfo"`
	Summary        string          `json:"summary,omitempty"`
	Skills         Skills          `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	TailoringNotes *TailoringNotes `json:"tailoring_notes,omitempty"`
}

// ContactInfo holds the resume header.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Skills groups skills by category.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// Experience is one work history entry.
type Experience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description []string `json:"description"`
}

// Education is one education entry.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree,omitempty"`
	Field          string `json:"field,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// Project is a notable project.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Certification is a certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// TailoringNotes explains what the generation service changed.
type TailoringNotes struct {
	KeyChanges      []string `json:"keyChanges,omitempty"`
	KeywordsAdded   []string `json:"keywordsAdded,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Validate checks the semantic rules a JSON schema cannot express.
func (r ResumeData) Validate() error {
	if strings.TrimSpace(r.ContactInfo.Name) == "" {
		return errors.New("contactInfo.name is required")
	}
	for field, link := range map[string]string{
		"contactInfo.linkedin": r.ContactInfo.LinkedIn,
		"contactInfo.website":  r.ContactInfo.Website,
	} {
		if link != "" && !isWebLink(link) {
			return fmt.Errorf("%s must be a URL", field)
		}
	}
	for i, exp := range r.Experience {
		if strings.TrimSpace(exp.Company) == "" && strings.TrimSpace(exp.Title) == "" {
			return fmt.Errorf("experience[%d] needs a company or title", i)
		}
	}
	for i, edu := range r.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			return fmt.Errorf("education[%d].institution is required", i)
		}
	}
	return nil
}

// isWebLink accepts full URLs and scheme-less profile links such as linkedin.com/in/x.
func isWebLink(value string) bool {
	value = strings.TrimSpace(value)
	if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return strings.Contains(parsed.Host, ".")
}
