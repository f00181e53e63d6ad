package opportunity

import (
	"time"

	"campushire/internal/common"
)

type Type string

const (
	TypeInternship Type = "internship"
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeRemote     Type = "remote"
)

type ExperienceLevel string

const (
	ExperienceFresher    ExperienceLevel = "fresher"
	ExperienceZeroToTwo  ExperienceLevel = "0-2"
	ExperienceTwoToFive  ExperienceLevel = "2-5"
	ExperienceFivePlus   ExperienceLevel = "5+"
)

// Eligibility holds the posting's declared thresholds. A nil field means
// "no constraint"; an empty AllowedBranches set likewise.
type Eligibility struct {
	MinCGPA                *float64 `json:"min_cgpa,omitempty"`
	MinTenthPercent        *float64 `json:"min_tenth_percent,omitempty"`
	MinTwelfthPercent      *float64 `json:"min_twelfth_percent,omitempty"`
	RequiredGraduationYear *int     `json:"required_graduation_year,omitempty"`
	AllowedBranches        []string `json:"allowed_branches,omitempty"`
}

type Question struct {
	ID       common.UUID `json:"id"`
	Prompt   string      `json:"prompt"`
	Position int         `json:"position"`
}

type Opportunity struct {
	ID               common.UUID     `json:"id"`
	CompanyID        common.UUID     `json:"company_id"`
	Title            string          `json:"title"`
	Type             Type            `json:"type"`
	Location         string          `json:"location"`
	Salary           string          `json:"salary"`
	Description      string          `json:"description"`
	Requirements     []string        `json:"requirements"`
	Responsibilities []string        `json:"responsibilities"`
	Benefits         []string        `json:"benefits"`
	Skills           []string        `json:"skills"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	Eligibility      Eligibility     `json:"eligibility"`
	Vacancies        int             `json:"vacancies"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	Active           bool            `json:"active"`
	Questions        []Question      `json:"questions,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PendingOpportunity is an inactive posting annotated for the review queue.
type PendingOpportunity struct {
	Opportunity
	CompanyDisplayName string `json:"company_display_name"`
}
