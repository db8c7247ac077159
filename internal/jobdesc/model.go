package jobdesc

// Analysis is the structured view of a job posting.
type Analysis struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	RequiredSkills   []string `json:"requiredSkills"`
	PreferredSkills  []string `json:"preferredSkills"`
	Responsibilities []string `json:"responsibilities"`
	ExperienceLevel  string   `json:"experienceLevel"`
	Keywords         []string `json:"keywords"`
}

var experienceLevels = map[string]bool{
	"entry":   true,
	"mid":     true,
	"senior":  true,
	"lead":    true,
	"unknown": true,
}
