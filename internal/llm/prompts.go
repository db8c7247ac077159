package llm

import _ "embed"

var (
	//go:embed prompts/tailor_v1.txt
	promptTailor string
	//go:embed prompts/parse_v1.txt
	promptParse string
	//go:embed prompts/analyze_job_v1.txt
	promptAnalyzeJob string
	//go:embed prompts/interview_questions_v1.txt
	promptInterviewQuestions string
)

// TailorPrompt is the system prompt for resume tailoring.
func TailorPrompt() string { return promptTailor }

// ParsePrompt is the system prompt for structuring extracted resume text.
func ParsePrompt() string { return promptParse }

// AnalyzeJobPrompt is the system prompt for job description analysis.
func AnalyzeJobPrompt() string { return promptAnalyzeJob }

// InterviewQuestionsPrompt is the system prompt for mock interview questions.
func InterviewQuestionsPrompt() string { return promptInterviewQuestions }
