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
	"campushire/internal/domain/opportunity"
)

type OpportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

const opportunityColumns = `id, company_id, title, opportunity_type, location, salary, description,
	requirements, responsibilities, benefits, skills, experience_level,
	min_cgpa, min_tenth_percent, min_twelfth_percent, required_graduation_year, allowed_branches,
	vacancies, deadline, active, created_at, updated_at`

func (r *OpportunityRepository) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	if o.ID.IsZero() {
		o.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to open transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO opportunities (`+opportunityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		o.ID, o.CompanyID, o.Title, o.Type, o.Location, o.Salary, o.Description,
		pq.Array(o.Requirements), pq.Array(o.Responsibilities), pq.Array(o.Benefits), pq.Array(o.Skills), o.ExperienceLevel,
		o.Eligibility.MinCGPA, o.Eligibility.MinTenthPercent, o.Eligibility.MinTwelfthPercent,
		o.Eligibility.RequiredGraduationYear, pq.Array(o.Eligibility.AllowedBranches),
		o.Vacancies, o.Deadline, o.Active, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create opportunity", err)
	}
	if err := insertQuestions(ctx, tx, o.ID, o.Questions); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit opportunity", err)
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OpportunityRepository) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	o.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to open transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE opportunities SET
			title = $1, opportunity_type = $2, location = $3, salary = $4, description = $5,
			requirements = $6, responsibilities = $7, benefits = $8, skills = $9, experience_level = $10,
			min_cgpa = $11, min_tenth_percent = $12, min_twelfth_percent = $13,
			required_graduation_year = $14, allowed_branches = $15,
			vacancies = $16, deadline = $17, updated_at = $18
		WHERE id = $19 AND company_id = $20`,
		o.Title, o.Type, o.Location, o.Salary, o.Description,
		pq.Array(o.Requirements), pq.Array(o.Responsibilities), pq.Array(o.Benefits), pq.Array(o.Skills), o.ExperienceLevel,
		o.Eligibility.MinCGPA, o.Eligibility.MinTenthPercent, o.Eligibility.MinTwelfthPercent,
		o.Eligibility.RequiredGraduationYear, pq.Array(o.Eligibility.AllowedBranches),
		o.Vacancies, o.Deadline, o.UpdatedAt, o.ID, o.CompanyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update opportunity", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", sql.ErrNoRows)
	}

	// Questions are replaced wholesale. Answers reference question rows, so
	// only postings without applications should be edited this way; the
	// service enforces that.
	if o.Questions != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM opportunity_questions WHERE opportunity_id = $1`, o.ID); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to clear questions", err)
		}
		if err := insertQuestions(ctx, tx, o.ID, o.Questions); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit opportunity", err)
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OpportunityRepository) SetActive(ctx context.Context, id common.UUID, active bool) (*opportunity.Opportunity, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE opportunities SET active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update opportunity", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id common.UUID) (*opportunity.Opportunity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)
	var o opportunity.Opportunity
	if err := scanOpportunity(row.Scan, &o); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "opportunity not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load opportunity", err)
	}
	return &o, nil
}

func (r *OpportunityRepository) ListActive(ctx context.Context, filter opportunity.ListFilter, limit, offset int) ([]opportunity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE active = TRUE`
	args := []any{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		ph := next()
		query += ` AND (title ILIKE ` + ph + ` OR description ILIKE ` + ph + ` OR location ILIKE ` + ph + `)`
		args = append(args, "%"+search+"%")
	}
	if filter.Type != "" {
		query += ` AND opportunity_type = ` + next()
		args = append(args, filter.Type)
	}
	if filter.Experience != "" {
		query += ` AND experience_level = ` + next()
		args = append(args, filter.Experience)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + next()
	args = append(args, limit)
	query += ` OFFSET ` + next()
	args = append(args, offset)

	return r.queryOpportunities(ctx, query, args...)
}

func (r *OpportunityRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]opportunity.Opportunity, error) {
	return r.queryOpportunities(ctx, `SELECT `+opportunityColumns+` FROM opportunities
		WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *OpportunityRepository) ListPending(ctx context.Context) ([]opportunity.Opportunity, error) {
	return r.queryOpportunities(ctx, `SELECT `+opportunityColumns+` FROM opportunities
		WHERE active = FALSE ORDER BY created_at DESC`)
}

func (r *OpportunityRepository) ListQuestions(ctx context.Context, opportunityID common.UUID) ([]opportunity.Question, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, prompt, position FROM opportunity_questions
		WHERE opportunity_id = $1 ORDER BY position ASC`, opportunityID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list questions", err)
	}
	defer rows.Close()
	var items []opportunity.Question
	for rows.Next() {
		var q opportunity.Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Position); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan question", err)
		}
		items = append(items, q)
	}
	return items, nil
}

// DeleteCascade removes the posting, its questions, its applications and
// their answers, and the owner's posted-list entry, all in one transaction.
func (r *OpportunityRepository) DeleteCascade(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to open transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE company_profiles
		SET posted_opportunities = array_remove(posted_opportunities, $1::text)
		WHERE user_id = (SELECT company_id FROM opportunities WHERE id = $1)`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to detach posted opportunity", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM application_answers WHERE application_id IN
		(SELECT id FROM applications WHERE opportunity_id = $1)`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete answers", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE opportunity_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete applications", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM opportunity_questions WHERE opportunity_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete questions", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete opportunity", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "opportunity not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit delete", err)
	}
	return nil
}

func (r *OpportunityRepository) queryOpportunities(ctx context.Context, query string, args ...any) ([]opportunity.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list opportunities", err)
	}
	defer rows.Close()
	var items []opportunity.Opportunity
	for rows.Next() {
		var o opportunity.Opportunity
		if err := scanOpportunity(rows.Scan, &o); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan opportunity", err)
		}
		items = append(items, o)
	}
	return items, nil
}

func scanOpportunity(scan func(dest ...any) error, o *opportunity.Opportunity) error {
	return scan(&o.ID, &o.CompanyID, &o.Title, &o.Type, &o.Location, &o.Salary, &o.Description,
		pq.Array(&o.Requirements), pq.Array(&o.Responsibilities), pq.Array(&o.Benefits), pq.Array(&o.Skills), &o.ExperienceLevel,
		&o.Eligibility.MinCGPA, &o.Eligibility.MinTenthPercent, &o.Eligibility.MinTwelfthPercent,
		&o.Eligibility.RequiredGraduationYear, pq.Array(&o.Eligibility.AllowedBranches),
		&o.Vacancies, &o.Deadline, &o.Active, &o.CreatedAt, &o.UpdatedAt)
}

func insertQuestions(ctx context.Context, tx *sql.Tx, opportunityID common.UUID, questions []opportunity.Question) error {
	for i, q := range questions {
		id := q.ID
		if id.IsZero() {
			id = common.NewUUID()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO opportunity_questions (id, opportunity_id, prompt, position)
			VALUES ($1, $2, $3, $4)`, id, opportunityID, q.Prompt, i); err != nil {
			return common.NewError(common.CodeInternal, "failed to insert question", err)
		}
	}
	return nil
}
