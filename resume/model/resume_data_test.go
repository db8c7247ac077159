package model

import "testing"

func TestResumeDataValidate(t *testing.T) {
	valid := ResumeData{
		ContactInfo: ContactInfo{Name: "Ada Lovelace", LinkedIn: "linkedin.com/in/ada"},
		Experience:  []Experience{{Company: "Analytical Engines", Title: "Engineer"}},
		Education:   []Education{{Institution: "University of London"}},
	}

	tests := []struct {
		name    string
		mutate  func(r *ResumeData)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *ResumeData) {}},
		{name: "missing name", mutate: func(r *ResumeData) { r.ContactInfo.Name = " " }, wantErr: true},
		{name: "bad website", mutate: func(r *ResumeData) { r.ContactInfo.Website = "ftp://example.com" }, wantErr: true},
		{name: "full website", mutate: func(r *ResumeData) { r.ContactInfo.Website = "https://ada.dev" }},
		{name: "empty experience entry", mutate: func(r *ResumeData) { r.Experience = append(r.Experience, Experience{}) }, wantErr: true},
		{name: "education without institution", mutate: func(r *ResumeData) { r.Education[0].Institution = "" }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			r.Experience = append([]Experience(nil), valid.Experience...)
			r.Education = append([]Education(nil), valid.Education...)
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
