package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"campushire/internal/common"
	"campushire/internal/domain/analytics"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountApplicationsByCompany(ctx context.Context, companyID common.UUID) (int, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id WHERE o.company_id = $1`, companyID)
}

func (r *AnalyticsRepository) CountApplicationsByCompanySince(ctx context.Context, companyID common.UUID, since time.Time) (int, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id WHERE o.company_id = $1 AND a.applied_at >= $2`, companyID, since)
}

func (r *AnalyticsRepository) StatusBreakdownByCompany(ctx context.Context, companyID common.UUID) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.status, COUNT(*) FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE o.company_id = $1 GROUP BY a.status`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate statuses", err)
	}
	defer rows.Close()
	breakdown := map[string]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		breakdown[status] = count
	}
	return breakdown, nil
}

func (r *AnalyticsRepository) DailyApplicationCounts(ctx context.Context, companyID common.UUID, since time.Time) ([]analytics.DailyCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT to_char(date_trunc('day', a.applied_at), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE o.company_id = $1 AND a.applied_at >= $2
		GROUP BY day ORDER BY day ASC`, companyID, since)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate daily counts", err)
	}
	defer rows.Close()
	var items []analytics.DailyCount
	for rows.Next() {
		var d analytics.DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan daily count", err)
		}
		items = append(items, d)
	}
	return items, nil
}

func (r *AnalyticsRepository) TopOpportunityCounts(ctx context.Context, companyID common.UUID, limit int) ([]analytics.OpportunityCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.id, o.title, COUNT(a.id)
		FROM opportunities o
		LEFT JOIN applications a ON a.opportunity_id = o.id
		WHERE o.company_id = $1
		GROUP BY o.id, o.title ORDER BY COUNT(a.id) DESC, o.created_at DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate opportunities", err)
	}
	defer rows.Close()
	var items []analytics.OpportunityCount
	for rows.Next() {
		var c analytics.OpportunityCount
		if err := rows.Scan(&c.OpportunityID, &c.Title, &c.Applications); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan opportunity count", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *AnalyticsRepository) CollegeBreakdown(ctx context.Context, companyID common.UUID, limit int) ([]analytics.CollegeCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.college, COUNT(*)
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE o.company_id = $1 AND a.college <> ''
		GROUP BY a.college ORDER BY COUNT(*) DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate colleges", err)
	}
	defer rows.Close()
	var items []analytics.CollegeCount
	for rows.Next() {
		var c analytics.CollegeCount
		if err := rows.Scan(&c.College, &c.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan college count", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *AnalyticsRepository) SkillBreakdown(ctx context.Context, companyID common.UUID, limit int) ([]analytics.SkillCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT skill, COUNT(*)
		FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id,
		unnest(a.skills) AS skill
		WHERE o.company_id = $1
		GROUP BY skill ORDER BY COUNT(*) DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate skills", err)
	}
	defer rows.Close()
	var items []analytics.SkillCount
	for rows.Next() {
		var c analytics.SkillCount
		if err := rows.Scan(&c.Skill, &c.Count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan skill count", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *AnalyticsRepository) SalariesByCompany(ctx context.Context, companyID common.UUID) ([]string, error) {
	return r.queryStrings(ctx, `SELECT salary FROM opportunities WHERE company_id = $1 AND salary <> ''`, companyID)
}

func (r *AnalyticsRepository) CountStudentApplications(ctx context.Context, studentID common.UUID, statuses []string) (int, error) {
	if len(statuses) == 0 {
		return r.countOne(ctx, `SELECT COUNT(*) FROM applications WHERE student_id = $1`, studentID)
	}
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications WHERE student_id = $1 AND status = ANY($2)`,
		studentID, pq.Array(statuses))
}

func (r *AnalyticsRepository) CountOpportunities(ctx context.Context, active *bool) (int, error) {
	if active == nil {
		return r.countOne(ctx, `SELECT COUNT(*) FROM opportunities`)
	}
	return r.countOne(ctx, `SELECT COUNT(*) FROM opportunities WHERE active = $1`, *active)
}

func (r *AnalyticsRepository) CountAllApplications(ctx context.Context) (int, error) {
	return r.countOne(ctx, `SELECT COUNT(*) FROM applications`)
}

func (r *AnalyticsRepository) CountDistinctAcceptedStudents(ctx context.Context) (int, error) {
	return r.countOne(ctx, `SELECT COUNT(DISTINCT student_id) FROM applications WHERE status = 'accepted'`)
}

func (r *AnalyticsRepository) ActiveSalaries(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT salary FROM opportunities WHERE active = TRUE AND salary <> ''`)
}

func (r *AnalyticsRepository) countOne(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to aggregate", err)
	}
	return count, nil
}

func (r *AnalyticsRepository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to query", err)
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan", err)
		}
		items = append(items, s)
	}
	return items, nil
}
