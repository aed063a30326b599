package suggestions

import "time"

// Suggestion is one AI-generated improvement attached to a resume.
type Suggestion struct {
	ID          int64     `json:"id"`
	ResumeID    int64     `json:"resumeId"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	Improvement string    `json:"improvement"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSuggestion is the input to Repo.Create.
type NewSuggestion struct {
	ResumeID    int64
	Category    string
	Content     string
	Improvement string
}
