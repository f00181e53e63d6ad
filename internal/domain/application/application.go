package application

import (
	"time"

	"campushire/internal/common"
)

type Status string

const (
	StatusApplied     Status = "applied"
	StatusUnderReview Status = "under_review"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

// PersonalInfo and Education are captured at submission time and stay frozen
// even if the student edits their profile afterwards.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Education struct {
	College        string   `json:"college"`
	Degree         string   `json:"degree"`
	Status         string   `json:"status"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	CGPA           *float64 `json:"cgpa,omitempty"`
}

type Answer struct {
	ID         common.UUID `json:"id"`
	QuestionID common.UUID `json:"question_id"`
	Answer     string      `json:"answer"`
}

type Application struct {
	ID              common.UUID  `json:"id"`
	OpportunityID   common.UUID  `json:"opportunity_id"`
	StudentID       common.UUID  `json:"student_id"`
	Status          Status       `json:"status"`
	PersonalInfo    PersonalInfo `json:"personal_info"`
	Education       Education    `json:"education"`
	Skills          []string     `json:"skills"`
	Projects        string       `json:"projects,omitempty"`
	Extracurricular string       `json:"extracurricular,omitempty"`
	Resume          string       `json:"resume"`
	CoverLetterFile string       `json:"cover_letter_file,omitempty"`
	CoverLetterText string       `json:"cover_letter_text,omitempty"`
	Eligible        bool         `json:"eligible"`
	Answers         []Answer     `json:"answers,omitempty"`
	AppliedAt       time.Time    `json:"applied_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
