package profile

import (
	"context"

	"campushire/internal/common"
)

type StudentRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
	Upsert(ctx context.Context, p StudentProfile) (*StudentProfile, error)
	SetResume(ctx context.Context, userID common.UUID, resume string, completion int) error
	SetSavedOpportunities(ctx context.Context, userID common.UUID, saved []common.UUID) error
}

type CompanyRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
	Upsert(ctx context.Context, p CompanyProfile) (*CompanyProfile, error)
	AppendPosted(ctx context.Context, userID, opportunityID common.UUID) error
	CompanyNamesByUserIDs(ctx context.Context, userIDs []common.UUID) (map[common.UUID]string, error)
}
