package resumes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-prep-api/resume/model"
)

func TestRenderDocumentIsDeterministic(t *testing.T) {
	var r model.ResumeData
	require.NoError(t, json.Unmarshal([]byte(tailoredReply), &r))
	r.Projects = []model.Project{{Name: "Engine", Technologies: []string{"Go"}}}
	r.Certifications = []model.Certification{{Name: "AWS SA", Issuer: "Amazon"}}

	want := `Ada Lovelace
ada@example.com

SUMMARY
Engineer focused on reliable computation.

SKILLS
Technical: Go, AWS
Tools: Terraform
Soft: Mentoring

EXPERIENCE
Lead Engineer - Analytical Engines
2020 - Present
• Built the difference engine pipeline

EDUCATION
BSc in Mathematics - University of London

PROJECTS
Engine
Technologies: Go

CERTIFICATIONS
AWS SA - Amazon`

	assert.Equal(t, want, RenderDocument(r))
	assert.Equal(t, RenderDocument(r), RenderDocument(r))
}

func TestRenderDocumentEmptyResume(t *testing.T) {
	assert.Equal(t, "", RenderDocument(model.ResumeData{}))
}

func TestDecodeResume(t *testing.T) {
	r, err := DecodeResume(json.RawMessage(tailoredReply), true)
	require.NoError(t, err)
	require.NotNil(t, r.TailoringNotes)
	assert.Equal(t, []string{"Emphasised Go"}, r.TailoringNotes.KeyChanges)

	bad := []string{
		`{"contactInfo":{"name":"A"},"skills":{},"experience":[]}`,
		`{"contactInfo":{"name":"A"},"skills":{"technical":"Go"},"experience":[],"education":[]}`,
		`[]`,
	}
	for _, raw := range bad {
		_, err := DecodeResume(json.RawMessage(raw), false)
		assert.ErrorIs(t, err, ErrGeneration, raw)
	}

	nameless := `{"contactInfo":{"name":""},"skills":{},"experience":[],"education":[]}`
	_, err = DecodeResume(json.RawMessage(nameless), false)
	assert.NoError(t, err)
	_, err = DecodeResume(json.RawMessage(nameless), true)
	assert.ErrorIs(t, err, ErrGeneration)
}
