package opportunity

import (
	"context"

	"campushire/internal/common"
)

// ListFilter narrows the public listing. Empty fields do not filter.
type ListFilter struct {
	Search     string
	Type       Type
	Experience ExperienceLevel
}

type Repository interface {
	Create(ctx context.Context, o Opportunity) (*Opportunity, error)
	Update(ctx context.Context, o Opportunity) (*Opportunity, error)
	SetActive(ctx context.Context, id common.UUID, active bool) (*Opportunity, error)
	GetByID(ctx context.Context, id common.UUID) (*Opportunity, error)
	ListActive(ctx context.Context, filter ListFilter, limit, offset int) ([]Opportunity, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Opportunity, error)
	ListPending(ctx context.Context) ([]Opportunity, error)
	ListQuestions(ctx context.Context, opportunityID common.UUID) ([]Question, error)
	DeleteCascade(ctx context.Context, id common.UUID) error
}
