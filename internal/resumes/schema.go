package resumes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"interview-prep-api/resume/model"
)

//go:embed schema/resume_data.schema.json
var resumeSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func resumeSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	})
	return schema, schemaErr
}

// DecodeResume validates raw generation output against the ResumeData schema and decodes it.
// Strict mode also applies model.ResumeData.Validate. Every failure wraps ErrGeneration.
func DecodeResume(raw json.RawMessage, strict bool) (model.ResumeData, error) {
	s, err := resumeSchema()
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return model.ResumeData{}, fmt.Errorf("%w: schema validation failed: %s", ErrGeneration, strings.Join(msgs, "; "))
	}

	var out model.ResumeData
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if strict {
		if err := out.Validate(); err != nil {
			return model.ResumeData{}, fmt.Errorf("%w: %v", ErrGeneration, err)
		}
	}
	return out, nil
}
