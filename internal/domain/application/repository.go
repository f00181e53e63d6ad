package application

import (
	"context"

	"campushire/internal/common"
)

// ListFilter narrows listings. Search matches the snapshotted applicant name
// and email, case-insensitively.
type ListFilter struct {
	Status        Status
	OpportunityID common.UUID
	Search        string
}

type Repository interface {
	// Create persists the application together with its answers in one
	// transaction. A unique-constraint violation on (opportunity, student)
	// surfaces as a conflict error.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID, filter ListFilter) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID, filter ListFilter) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	ListAnswers(ctx context.Context, applicationID common.UUID) ([]Answer, error)
}
