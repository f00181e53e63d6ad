package analytics

import (
	"context"
	"time"

	"campushire/internal/common"
)

type Repository interface {
	CountApplicationsByCompany(ctx context.Context, companyID common.UUID) (int, error)
	CountApplicationsByCompanySince(ctx context.Context, companyID common.UUID, since time.Time) (int, error)
	StatusBreakdownByCompany(ctx context.Context, companyID common.UUID) (map[string]int, error)
	DailyApplicationCounts(ctx context.Context, companyID common.UUID, since time.Time) ([]DailyCount, error)
	TopOpportunityCounts(ctx context.Context, companyID common.UUID, limit int) ([]OpportunityCount, error)
	CollegeBreakdown(ctx context.Context, companyID common.UUID, limit int) ([]CollegeCount, error)
	SkillBreakdown(ctx context.Context, companyID common.UUID, limit int) ([]SkillCount, error)
	SalariesByCompany(ctx context.Context, companyID common.UUID) ([]string, error)

	CountStudentApplications(ctx context.Context, studentID common.UUID, statuses []string) (int, error)

	CountOpportunities(ctx context.Context, active *bool) (int, error)
	CountAllApplications(ctx context.Context) (int, error)
	CountDistinctAcceptedStudents(ctx context.Context) (int, error)
	ActiveSalaries(ctx context.Context) ([]string, error)
}
