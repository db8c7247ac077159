package resumes

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/events"
	"interview-prep-api/internal/shared/storage/object"
)

type fakeCompleter struct {
	mu     sync.Mutex
	reply  string
	err    error
	system []string
	user   []string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, system, user string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.system = append(f.system, system)
	f.user = append(f.user, user)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.reply), nil
}

const tailoredReply = `{
  "contactInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
  "summary": "Engineer focused on reliable computation.",
  "skills": {"technical": ["Go", "AWS"], "soft": ["Mentoring"], "tools": ["Terraform"]},
  "experience": [{"company": "Analytical Engines", "title": "Lead Engineer", "startDate": "2020", "description": ["Built the difference engine pipeline"]}],
  "education": [{"institution": "University of London", "degree": "BSc", "field": "Mathematics"}],
  "tailoring_notes": {"keyChanges": ["Emphasised Go"], "keywordsAdded": ["AWS"]}
}`

const originalResume = `{"contactInfo":{"name":"Ada Lovelace"},"experience":[],"education":[],"skills":{"technical":["Go"]}}`

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(store object.ObjectStore, llmReply string, llmErr error) (*Service, *fakeCompleter, *events.RecordingPublisher) {
	completer := &fakeCompleter{reply: llmReply, err: llmErr}
	pub := &events.RecordingPublisher{}
	svc := &Service{
		LLM:    completer,
		Store:  store,
		Docs:   &documents.Service{Store: store},
		Events: pub,
		Now:    func() time.Time { return fixedNow },
	}
	return svc, completer, pub
}
