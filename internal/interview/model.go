package interview

import "interview-prep-api/resume/model"

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
)

// Question is one mock interview question.
type Question struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// QuestionsInput describes the role to prepare for. At least one of
// JobDescription and RoleTitle is required.
type QuestionsInput struct {
	JobDescription string            `json:"jobDescription"`
	RoleTitle      string            `json:"roleTitle"`
	ResumeData     *model.ResumeData `json:"resumeData"`
	Count          int               `json:"count"`
	Type           string            `json:"type"`
}

// ScoreInput is one answered question.
type ScoreInput struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// Score is the heuristic evaluation of an answer.
type Score struct {
	Score           int      `json:"score"`
	WordCount       int      `json:"wordCount"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Feedback        []string `json:"feedback"`
}

var questionTypes = map[string]bool{
	"":              true,
	"mixed":         true,
	"behavioral":    true,
	"technical":     true,
	"situational":   true,
	"role-specific": true,
}

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}
