package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"campushire/internal/common"
	"campushire/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentProfileColumns = `user_id, college, course, branch, graduation_year, tenth_percent, twelfth_percent, cgpa,
	phone, skills, linkedin, github, portfolio, resume, saved_opportunities, completion, created_at, updated_at`

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	return scanStudentProfile(row)
}

func (r *StudentProfileRepository) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (`+studentProfileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id) DO UPDATE SET
			college = EXCLUDED.college,
			course = EXCLUDED.course,
			branch = EXCLUDED.branch,
			graduation_year = EXCLUDED.graduation_year,
			tenth_percent = EXCLUDED.tenth_percent,
			twelfth_percent = EXCLUDED.twelfth_percent,
			cgpa = EXCLUDED.cgpa,
			phone = EXCLUDED.phone,
			skills = EXCLUDED.skills,
			linkedin = EXCLUDED.linkedin,
			github = EXCLUDED.github,
			portfolio = EXCLUDED.portfolio,
			resume = EXCLUDED.resume,
			saved_opportunities = EXCLUDED.saved_opportunities,
			completion = EXCLUDED.completion,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.College, p.Course, p.Branch, p.GraduationYear, p.TenthPercent, p.TwelfthPercent, p.CGPA,
		p.Phone, pq.Array(p.Skills), p.SocialLinks.LinkedIn, p.SocialLinks.GitHub, p.SocialLinks.Portfolio,
		nullString(p.Resume), pq.Array(uuidStrings(p.SavedOpportunities)), p.Completion, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert student profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *StudentProfileRepository) SetResume(ctx context.Context, userID common.UUID, resume string, completion int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE student_profiles SET resume = $1, completion = $2, updated_at = $3 WHERE user_id = $4`,
		nullString(resume), completion, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set resume", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return nil
}

func (r *StudentProfileRepository) SetSavedOpportunities(ctx context.Context, userID common.UUID, saved []common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE student_profiles SET saved_opportunities = $1, updated_at = $2 WHERE user_id = $3`,
		pq.Array(uuidStrings(saved)), time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update saved opportunities", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return nil
}

func scanStudentProfile(row *sql.Row) (*profile.StudentProfile, error) {
	var (
		p      profile.StudentProfile
		resume sql.NullString
		saved  []string
	)
	err := row.Scan(&p.UserID, &p.College, &p.Course, &p.Branch, &p.GraduationYear, &p.TenthPercent, &p.TwelfthPercent, &p.CGPA,
		&p.Phone, pq.Array(&p.Skills), &p.SocialLinks.LinkedIn, &p.SocialLinks.GitHub, &p.SocialLinks.Portfolio,
		&resume, pq.Array(&saved), &p.Completion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	p.Resume = resume.String
	p.SavedOpportunities = uuidsFromStrings(saved)
	return &p, nil
}

func uuidStrings(ids []common.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func uuidsFromStrings(values []string) []common.UUID {
	out := make([]common.UUID, len(values))
	for i, v := range values {
		out[i] = common.UUID(v)
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
