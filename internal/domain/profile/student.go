package profile

import (
	"time"

	"campushire/internal/common"
)

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// StudentProfile extends a student user. Completion is recomputed on every
// mutation, never read back stale.
type StudentProfile struct {
	UserID             common.UUID   `json:"user_id"`
	College            string        `json:"college"`
	Course             string        `json:"course"`
	Branch             string        `json:"branch"`
	GraduationYear     *int          `json:"graduation_year,omitempty"`
	TenthPercent       *float64      `json:"tenth_percent,omitempty"`
	TwelfthPercent     *float64      `json:"twelfth_percent,omitempty"`
	CGPA               *float64      `json:"cgpa,omitempty"`
	Phone              string        `json:"phone"`
	Skills             []string      `json:"skills"`
	SocialLinks        SocialLinks   `json:"social_links"`
	Resume             string        `json:"resume,omitempty"`
	SavedOpportunities []common.UUID `json:"saved_opportunities"`
	Completion         int           `json:"completion"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (p StudentProfile) HasSaved(opportunityID common.UUID) bool {
	for _, id := range p.SavedOpportunities {
		if id == opportunityID {
			return true
		}
	}
	return false
}
