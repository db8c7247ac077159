package health

import (
	"context"
	"database/sql"
	"time"
)

// Service reports which backing dependencies the process is running with.
type Service struct {
	ObjectStore string
	DB          *sql.DB
	LLM         bool
	Speech      bool
}

// Report is the body of the health endpoint.
type Report struct {
	OK          bool   `json:"ok"`
	ObjectStore string `json:"objectStore"`
	Database    string `json:"database"`
	LLM         bool   `json:"llm"`
	Speech      bool   `json:"speech"`
}

// NewService constructs a new health service.
func NewService(objectStore string, db *sql.DB, llm, speech bool) *Service {
	return &Service{ObjectStore: objectStore, DB: db, LLM: llm, Speech: speech}
}

// Status pings the database when one is configured. OK is false only when that ping fails.
func (s *Service) Status(ctx context.Context) Report {
	r := Report{OK: true, ObjectStore: s.ObjectStore, Database: "memory", LLM: s.LLM, Speech: s.Speech}
	if r.ObjectStore == "" {
		r.ObjectStore = "not_configured"
	}
	if s.DB != nil {
		r.Database = "postgres"
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			r.OK = false
			r.Database = "unreachable"
		}
	}
	return r
}
