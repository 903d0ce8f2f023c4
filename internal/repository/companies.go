package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/entity"
)

// ErrCompanyNotFound indicates no company matches the given identifier.
var ErrCompanyNotFound = errors.New("company not found")

// CompaniesRepository describes persistence operations for companies.
type CompaniesRepository interface {
	List(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	Industries(ctx context.Context) ([]string, error)
	TechRoles(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (dto.CompanyStats, error)
	BulkUpsert(ctx context.Context, records []BulkCompanyInput) (BulkUpsertResult, error)
}

// BulkCompanyInput represents the minimal fields required for CSV ingestion.
type BulkCompanyInput struct {
	Name            string
	Summary         string
	Industries      []string
	Website         *string
	Logo            *string
	TechRoles       []string
	PreferredSkills []string
	ContactName     *string
	ContactEmail    *string
	ContactPhone    *string
	ShowContact     bool
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool pgxPool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `
        id,
        name,
        summary,
        industries,
        website,
        logo,
        tech_roles,
        preferred_skills,
        contact_name,
        contact_email,
        contact_phone,
        show_contact,
        created_at,
        updated_at
`

// List retrieves companies matching the provided filter together with the
// total match count (before pagination), sorted by name.
func (r *PGXCompaniesRepository) List(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR summary ILIKE $%d)", idx, idx+1))
		args = append(args, pattern, pattern)
		idx += 2
	}
	if filter.Industry != "" {
		clauses = append(clauses, tagMatchClause("industries", idx))
		args = append(args, filter.Industry)
		idx++
	}
	if filter.TechRole != "" {
		clauses = append(clauses, tagMatchClause("tech_roles", idx))
		args = append(args, filter.TechRole)
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM companies" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	listQuery := "SELECT " + companyColumns + " FROM companies" + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// GetByID fetches a single company.
func (r *PGXCompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE id = $1"
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	defer rows.Close()

	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, ErrCompanyNotFound
	}
	return &companies[0], nil
}

// Create inserts a new company row and fills in the generated fields.
func (r *PGXCompaniesRepository) Create(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	query := `
        INSERT INTO companies (
            name, summary, industries, website, logo,
            tech_roles, preferred_skills,
            contact_name, contact_email, contact_phone, show_contact
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, query,
		company.Name,
		company.Summary,
		joinTags(company.Industries),
		company.Website,
		company.Logo,
		joinTags(company.TechRoles),
		joinTags(company.PreferredSkills),
		company.ContactName,
		company.ContactEmail,
		company.ContactPhone,
		company.ShowContact,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing company.
func (r *PGXCompaniesRepository) Update(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	query := `
        UPDATE companies SET
            name = $1,
            summary = $2,
            industries = $3,
            website = $4,
            logo = $5,
            tech_roles = $6,
            preferred_skills = $7,
            contact_name = $8,
            contact_email = $9,
            contact_phone = $10,
            show_contact = $11,
            updated_at = NOW()
        WHERE id = $12
        RETURNING updated_at
    `
	err := r.pool.QueryRow(ctx, query,
		company.Name,
		company.Summary,
		joinTags(company.Industries),
		company.Website,
		company.Logo,
		joinTags(company.TechRoles),
		joinTags(company.PreferredSkills),
		company.ContactName,
		company.ContactEmail,
		company.ContactPhone,
		company.ShowContact,
		company.ID,
	).Scan(&company.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company by id.
func (r *PGXCompaniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

// Industries returns the distinct industry tags present in the catalogue.
func (r *PGXCompaniesRepository) Industries(ctx context.Context) ([]string, error) {
	return r.distinctTags(ctx, "industries")
}

// TechRoles returns the distinct tech-role tags present in the catalogue.
func (r *PGXCompaniesRepository) TechRoles(ctx context.Context) ([]string, error) {
	return r.distinctTags(ctx, "tech_roles")
}

func (r *PGXCompaniesRepository) distinctTags(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
        SELECT DISTINCT TRIM(tag) AS tag
        FROM companies, unnest(string_to_array(%s, ',')) AS tag
        WHERE TRIM(tag) <> ''
        ORDER BY tag ASC
    `, column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", column, err)
	}
	defer rows.Close()

	return scanStrings(rows, column)
}

// Stats reports catalogue-level counts.
func (r *PGXCompaniesRepository) Stats(ctx context.Context) (dto.CompanyStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM companies),
            (SELECT COUNT(DISTINCT TRIM(tag))
               FROM companies, unnest(string_to_array(industries, ',')) AS tag
              WHERE TRIM(tag) <> ''),
            (SELECT COUNT(*) FROM companies WHERE logo IS NOT NULL AND logo <> '')
    `
	var stats dto.CompanyStats
	var total, industries, withLogo sql.NullInt64
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &industries, &withLogo); err != nil {
		return stats, fmt.Errorf("company stats: %w", err)
	}
	stats.Total = int(total.Int64)
	stats.Industries = int(industries.Int64)
	stats.WithLogo = int(withLogo.Int64)
	return stats, nil
}

const companyUpsertSQL = `
        INSERT INTO companies (
            name, summary, industries, website, logo,
            tech_roles, preferred_skills,
            contact_name, contact_email, contact_phone, show_contact, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
        ON CONFLICT (name) DO UPDATE SET
            summary = EXCLUDED.summary,
            industries = EXCLUDED.industries,
            website = EXCLUDED.website,
            logo = EXCLUDED.logo,
            tech_roles = EXCLUDED.tech_roles,
            preferred_skills = EXCLUDED.preferred_skills,
            contact_name = EXCLUDED.contact_name,
            contact_email = EXCLUDED.contact_email,
            contact_phone = EXCLUDED.contact_phone,
            show_contact = EXCLUDED.show_contact,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsert persists a batch of companies with idempotent semantics,
// keyed by company name.
func (r *PGXCompaniesRepository) BulkUpsert(ctx context.Context, records []BulkCompanyInput) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		var inserted bool
		err := tx.QueryRow(ctx, companyUpsertSQL,
			record.Name,
			record.Summary,
			joinTags(record.Industries),
			record.Website,
			record.Logo,
			joinTags(record.TechRoles),
			joinTags(record.PreferredSkills),
			record.ContactName,
			record.ContactEmail,
			record.ContactPhone,
			record.ShowContact,
		).Scan(&inserted)
		if err != nil {
			return result, fmt.Errorf("bulk upsert company %q: %w", record.Name, err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	var companies []entity.Company
	for rows.Next() {
		var (
			c               entity.Company
			industries      sql.NullString
			website         sql.NullString
			logo            sql.NullString
			techRoles       sql.NullString
			preferredSkills sql.NullString
			contactName     sql.NullString
			contactEmail    sql.NullString
			contactPhone    sql.NullString
		)

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Summary,
			&industries,
			&website,
			&logo,
			&techRoles,
			&preferredSkills,
			&contactName,
			&contactEmail,
			&contactPhone,
			&c.ShowContact,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}

		c.Industries = splitTags(industries.String)
		c.TechRoles = splitTags(techRoles.String)
		c.PreferredSkills = splitTags(preferredSkills.String)
		c.Website = nullStringToPtr(website)
		c.Logo = nullStringToPtr(logo)
		c.ContactName = nullStringToPtr(contactName)
		c.ContactEmail = nullStringToPtr(contactEmail)
		c.ContactPhone = nullStringToPtr(contactPhone)

		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

func scanStrings(rows pgx.Rows, what string) ([]string, error) {
	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return values, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid && value.String != "" {
		val := value.String
		return &val
	}
	return nil
}
