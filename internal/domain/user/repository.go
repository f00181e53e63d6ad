package user

import (
	"context"

	"campushire/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
