package resumes

import (
	"encoding/json"
	"time"

	"interview-prep-api/resume/model"
)

// Envelope is persisted once per tailoring event and never partially updated.
type Envelope struct {
	CompanyName    string           `json:"companyName"`
	RoleTitle      string           `json:"roleTitle"`
	CreatedAt      string           `json:"createdAt"`
	OriginalResume json.RawMessage  `json:"originalResume"`
	TailoredResume model.ResumeData `json:"tailoredResume"`
	JobDescription string           `json:"jobDescription"`
	Document       string           `json:"document"`
}

// ParsedEnvelope is persisted once per parsed upload.
type ParsedEnvelope struct {
	OriginalFileName string           `json:"originalFileName"`
	UploadedAt       string           `json:"uploadedAt"`
	OriginalKey      string           `json:"originalKey,omitempty"`
	ParsedResume     model.ResumeData `json:"parsedResume"`
	RawText          string           `json:"rawText"`
}

// isoTime formats t like JavaScript's toISOString.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
