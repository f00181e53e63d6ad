package profile

import (
	"time"

	"campushire/internal/common"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

type CompanyLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

type CompanyProfile struct {
	UserID             common.UUID   `json:"user_id"`
	CompanyName        string        `json:"company_name"`
	Industry           string        `json:"industry"`
	Website            string        `json:"website"`
	Size               string        `json:"size"`
	Founded            *int          `json:"founded,omitempty"`
	ContactPerson      string        `json:"contact_person"`
	Phone              string        `json:"phone"`
	Description        string        `json:"description"`
	Address            Address       `json:"address"`
	SocialLinks        CompanyLinks  `json:"social_links"`
	Logo               string        `json:"logo,omitempty"`
	PostedOpportunities []common.UUID `json:"posted_opportunities"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
