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

type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

const companyProfileColumns = `user_id, company_name, industry, website, company_size, founded, contact_person, phone, description,
	address_street, address_city, address_state, address_country, address_zip,
	linkedin, twitter, facebook, logo, posted_opportunities, created_at, updated_at`

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyProfileColumns+` FROM company_profiles WHERE user_id = $1`, userID)
	return scanCompanyProfile(row)
}

func (r *CompanyProfileRepository) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO company_profiles (`+companyProfileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			industry = EXCLUDED.industry,
			website = EXCLUDED.website,
			company_size = EXCLUDED.company_size,
			founded = EXCLUDED.founded,
			contact_person = EXCLUDED.contact_person,
			phone = EXCLUDED.phone,
			description = EXCLUDED.description,
			address_street = EXCLUDED.address_street,
			address_city = EXCLUDED.address_city,
			address_state = EXCLUDED.address_state,
			address_country = EXCLUDED.address_country,
			address_zip = EXCLUDED.address_zip,
			linkedin = EXCLUDED.linkedin,
			twitter = EXCLUDED.twitter,
			facebook = EXCLUDED.facebook,
			logo = EXCLUDED.logo,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.CompanyName, p.Industry, p.Website, p.Size, p.Founded, p.ContactPerson, p.Phone, p.Description,
		p.Address.Street, p.Address.City, p.Address.State, p.Address.Country, p.Address.Zip,
		p.SocialLinks.LinkedIn, p.SocialLinks.Twitter, p.SocialLinks.Facebook,
		nullString(p.Logo), pq.Array(uuidStrings(p.PostedOpportunities)), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert company profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *CompanyProfileRepository) AppendPosted(ctx context.Context, userID, opportunityID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE company_profiles
		SET posted_opportunities = array_append(posted_opportunities, $1), updated_at = $2
		WHERE user_id = $3 AND NOT ($1 = ANY(posted_opportunities))`,
		opportunityID.String(), time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to append posted opportunity", err)
	}
	return nil
}

func (r *CompanyProfileRepository) CompanyNamesByUserIDs(ctx context.Context, userIDs []common.UUID) (map[common.UUID]string, error) {
	names := make(map[common.UUID]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, company_name FROM company_profiles WHERE user_id = ANY($1)`,
		pq.Array(uuidStrings(userIDs)))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load company names", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   common.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company name", err)
		}
		names[id] = name
	}
	return names, nil
}

func scanCompanyProfile(row *sql.Row) (*profile.CompanyProfile, error) {
	var (
		p      profile.CompanyProfile
		logo   sql.NullString
		posted []string
	)
	err := row.Scan(&p.UserID, &p.CompanyName, &p.Industry, &p.Website, &p.Size, &p.Founded, &p.ContactPerson, &p.Phone, &p.Description,
		&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.Country, &p.Address.Zip,
		&p.SocialLinks.LinkedIn, &p.SocialLinks.Twitter, &p.SocialLinks.Facebook,
		&logo, pq.Array(&posted), &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company profile", err)
	}
	p.Logo = logo.String
	p.PostedOpportunities = uuidsFromStrings(posted)
	return &p, nil
}
