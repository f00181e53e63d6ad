package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"campushire/internal/common"
	"campushire/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, opportunity_id, student_id, status,
	full_name, email, phone, linkedin,
	college, degree, education_status, graduation_year, cgpa,
	skills, projects, extracurricular, resume, cover_letter_file, cover_letter_text,
	eligible, applied_at, updated_at`

const applicationColumnsQualified = `a.id, a.opportunity_id, a.student_id, a.status,
	a.full_name, a.email, a.phone, a.linkedin,
	a.college, a.degree, a.education_status, a.graduation_year, a.cgpa,
	a.skills, a.projects, a.extracurricular, a.resume, a.cover_letter_file, a.cover_letter_text,
	a.eligible, a.applied_at, a.updated_at`

// Create persists the application and its answers atomically. The unique
// (opportunity_id, student_id) constraint turns a concurrent duplicate into
// a conflict error instead of a second row.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	if app.ID.IsZero() {
		app.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to open transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		app.ID, app.OpportunityID, app.StudentID, app.Status,
		app.PersonalInfo.FullName, app.PersonalInfo.Email, app.PersonalInfo.Phone, app.PersonalInfo.LinkedIn,
		app.Education.College, app.Education.Degree, app.Education.Status, app.Education.GraduationYear, app.Education.CGPA,
		pq.Array(app.Skills), app.Projects, app.Extracurricular, app.Resume, nullString(app.CoverLetterFile), app.CoverLetterText,
		app.Eligible, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "application already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	for i := range app.Answers {
		if app.Answers[i].ID.IsZero() {
			app.Answers[i].ID = common.NewUUID()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO application_answers (id, application_id, question_id, answer)
			VALUES ($1, $2, $3, $4)`,
			app.Answers[i].ID, app.ID, app.Answers[i].QuestionID, app.Answers[i].Answer); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to insert answer", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	var app application.Application
	if err := scanApplication(row.Scan, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE opportunity_id = $1 AND student_id = $2`, opportunityID, studentID)
	var app application.Application
	if err := scanApplication(row.Scan, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE student_id = $1`
	args := []any{studentID}
	query, args = appendApplicationFilter(query, args, filter)
	query += ` ORDER BY applied_at DESC`
	return r.queryApplications(ctx, query, args...)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID, filter application.ListFilter) ([]application.Application, error) {
	query := `SELECT ` + applicationColumnsQualified + ` FROM applications a
		JOIN opportunities o ON o.id = a.opportunity_id
		WHERE o.company_id = $1`
	args := []any{companyID}
	query, args = appendApplicationFilter(query, args, filter)
	query += ` ORDER BY a.applied_at DESC`
	return r.queryApplications(ctx, query, args...)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to open transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM application_answers WHERE application_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete answers", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit delete", err)
	}
	return nil
}

func (r *ApplicationRepository) ListAnswers(ctx context.Context, applicationID common.UUID) ([]application.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT aa.id, aa.question_id, aa.answer FROM application_answers aa
		JOIN opportunity_questions q ON q.id = aa.question_id
		WHERE aa.application_id = $1 ORDER BY q.position ASC`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list answers", err)
	}
	defer rows.Close()
	var items []application.Answer
	for rows.Next() {
		var a application.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Answer); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan answer", err)
		}
		items = append(items, a)
	}
	return items, nil
}

func appendApplicationFilter(query string, args []any, filter application.ListFilter) (string, []any) {
	alias := ""
	if strings.Contains(query, "applications a") {
		alias = "a."
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND %sstatus = $%d`, alias, len(args))
	}
	if !filter.OpportunityID.IsZero() {
		args = append(args, filter.OpportunityID)
		query += fmt.Sprintf(` AND %sopportunity_id = $%d`, alias, len(args))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (%sfull_name ILIKE $%d OR %semail ILIKE $%d)`, alias, len(args), alias, len(args))
	}
	return query, args
}

func (r *ApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := scanApplication(rows.Scan, &app); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}

func scanApplication(scan func(dest ...any) error, app *application.Application) error {
	var coverLetterFile sql.NullString
	err := scan(&app.ID, &app.OpportunityID, &app.StudentID, &app.Status,
		&app.PersonalInfo.FullName, &app.PersonalInfo.Email, &app.PersonalInfo.Phone, &app.PersonalInfo.LinkedIn,
		&app.Education.College, &app.Education.Degree, &app.Education.Status, &app.Education.GraduationYear, &app.Education.CGPA,
		pq.Array(&app.Skills), &app.Projects, &app.Extracurricular, &app.Resume, &coverLetterFile, &app.CoverLetterText,
		&app.Eligible, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return err
	}
	app.CoverLetterFile = coverLetterFile.String
	return nil
}
