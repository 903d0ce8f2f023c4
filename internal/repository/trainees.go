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

// ErrTraineeNotFound indicates no trainee matches the given identifier.
var ErrTraineeNotFound = errors.New("trainee not found")

// TraineesRepository describes persistence operations for trainees.
type TraineesRepository interface {
	List(ctx context.Context, filter dto.TraineeFilter) ([]entity.Trainee, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Trainee, error)
	Create(ctx context.Context, trainee *entity.Trainee) error
	Update(ctx context.Context, trainee *entity.Trainee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Featured(ctx context.Context, limit int) ([]entity.Trainee, error)
	Universities(ctx context.Context) ([]string, error)
	Majors(ctx context.Context) ([]string, error)
	Industries(ctx context.Context) ([]string, error)
	PopularSkills(ctx context.Context, limit int) ([]dto.Skill, error)
	Stats(ctx context.Context) (dto.TraineeStats, error)
	BulkUpsert(ctx context.Context, records []BulkTraineeInput) (BulkUpsertResult, error)
}

// BulkTraineeInput represents the fields accepted during CSV ingestion.
type BulkTraineeInput struct {
	FullName            string
	Status              string
	University          string
	Major               string
	PreferredIndustries []string
	TechStack           []string
	SelfIntroduction    *string
	CVLink              *string
	PortfolioLink       *string
	ProfilePhoto        *string
	LinkedIn            *string
}

// PGXTraineesRepository implements TraineesRepository using pgx.
type PGXTraineesRepository struct {
	pool pgxPool
}

// NewPGXTraineesRepository wires a pgx backed repository.
func NewPGXTraineesRepository(pool pgxPool) *PGXTraineesRepository {
	return &PGXTraineesRepository{pool: pool}
}

const traineeColumns = `
        id,
        full_name,
        status,
        university,
        major,
        preferred_industries,
        tech_stack,
        self_introduction,
        cv_link,
        portfolio_link,
        profile_photo,
        linkedin,
        featured,
        created_at,
        updated_at
`

// List retrieves trainees matching the provided filter together with the
// total match count, sorted by full name.
func (r *PGXTraineesRepository) List(ctx context.Context, filter dto.TraineeFilter) ([]entity.Trainee, int, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf(
			"(full_name ILIKE $%d OR university ILIKE $%d OR major ILIKE $%d OR self_introduction ILIKE $%d)",
			idx, idx+1, idx+2, idx+3,
		))
		args = append(args, pattern, pattern, pattern, pattern)
		idx += 4
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(status) = LOWER($%d)", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.University != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(university) = LOWER($%d)", idx))
		args = append(args, filter.University)
		idx++
	}
	if filter.Major != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(major) = LOWER($%d)", idx))
		args = append(args, filter.Major)
		idx++
	}
	if filter.Industry != "" {
		clauses = append(clauses, tagMatchClause("preferred_industries", idx))
		args = append(args, filter.Industry)
		idx++
	}
	if filter.Skill != "" {
		clauses = append(clauses, tagMatchClause("tech_stack", idx))
		args = append(args, filter.Skill)
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM trainees" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trainees: %w", err)
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

	listQuery := "SELECT " + traineeColumns + " FROM trainees" + where +
		fmt.Sprintf(" ORDER BY full_name ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trainees: %w", err)
	}
	defer rows.Close()

	trainees, err := scanTrainees(rows)
	if err != nil {
		return nil, 0, err
	}
	return trainees, total, nil
}

// GetByID fetches a single trainee.
func (r *PGXTraineesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Trainee, error) {
	query := "SELECT " + traineeColumns + " FROM trainees WHERE id = $1"
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get trainee: %w", err)
	}
	defer rows.Close()

	trainees, err := scanTrainees(rows)
	if err != nil {
		return nil, err
	}
	if len(trainees) == 0 {
		return nil, ErrTraineeNotFound
	}
	return &trainees[0], nil
}

// Create inserts a new trainee row and fills in the generated fields.
func (r *PGXTraineesRepository) Create(ctx context.Context, trainee *entity.Trainee) error {
	if trainee == nil {
		return fmt.Errorf("trainee payload is nil")
	}

	query := `
        INSERT INTO trainees (
            full_name, status, university, major,
            preferred_industries, tech_stack, self_introduction,
            cv_link, portfolio_link, profile_photo, linkedin, featured
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, query,
		trainee.FullName,
		trainee.Status,
		trainee.University,
		trainee.Major,
		joinTags(trainee.PreferredIndustries),
		joinTags(trainee.TechStack),
		trainee.SelfIntroduction,
		trainee.CVLink,
		trainee.PortfolioLink,
		trainee.ProfilePhoto,
		trainee.LinkedIn,
		trainee.Featured,
	).Scan(&trainee.ID, &trainee.CreatedAt, &trainee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert trainee: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing trainee.
func (r *PGXTraineesRepository) Update(ctx context.Context, trainee *entity.Trainee) error {
	if trainee == nil {
		return fmt.Errorf("trainee payload is nil")
	}

	query := `
        UPDATE trainees SET
            full_name = $1,
            status = $2,
            university = $3,
            major = $4,
            preferred_industries = $5,
            tech_stack = $6,
            self_introduction = $7,
            cv_link = $8,
            portfolio_link = $9,
            profile_photo = $10,
            linkedin = $11,
            featured = $12,
            updated_at = NOW()
        WHERE id = $13
        RETURNING updated_at
    `
	err := r.pool.QueryRow(ctx, query,
		trainee.FullName,
		trainee.Status,
		trainee.University,
		trainee.Major,
		joinTags(trainee.PreferredIndustries),
		joinTags(trainee.TechStack),
		trainee.SelfIntroduction,
		trainee.CVLink,
		trainee.PortfolioLink,
		trainee.ProfilePhoto,
		trainee.LinkedIn,
		trainee.Featured,
		trainee.ID,
	).Scan(&trainee.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTraineeNotFound
		}
		return fmt.Errorf("update trainee: %w", err)
	}
	return nil
}

// Delete removes a trainee by id.
func (r *PGXTraineesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM trainees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trainee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTraineeNotFound
	}
	return nil
}

// Featured returns the most recently updated featured trainees.
func (r *PGXTraineesRepository) Featured(ctx context.Context, limit int) ([]entity.Trainee, error) {
	if limit <= 0 {
		limit = 6
	}
	query := "SELECT " + traineeColumns + " FROM trainees WHERE featured ORDER BY updated_at DESC LIMIT $1"
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured trainees: %w", err)
	}
	defer rows.Close()

	return scanTrainees(rows)
}

// Universities returns the distinct universities present in the catalogue.
func (r *PGXTraineesRepository) Universities(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "university")
}

// Majors returns the distinct majors present in the catalogue.
func (r *PGXTraineesRepository) Majors(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "major")
}

func (r *PGXTraineesRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
        SELECT DISTINCT %s FROM trainees
        WHERE TRIM(%s) <> ''
        ORDER BY %s ASC
    `, column, column, column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", column, err)
	}
	defer rows.Close()

	return scanStrings(rows, column)
}

// Industries returns the distinct preferred-industry tags.
func (r *PGXTraineesRepository) Industries(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT TRIM(tag) AS tag
        FROM trainees, unnest(string_to_array(preferred_industries, ',')) AS tag
        WHERE TRIM(tag) <> ''
        ORDER BY tag ASC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list preferred industries: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows, "preferred industries")
}

// PopularSkills returns tech-stack tags ranked by how many trainees carry them.
func (r *PGXTraineesRepository) PopularSkills(ctx context.Context, limit int) ([]dto.Skill, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT TRIM(tag) AS name, COUNT(*) AS uses
        FROM trainees, unnest(string_to_array(tech_stack, ',')) AS tag
        WHERE TRIM(tag) <> ''
        GROUP BY TRIM(tag)
        ORDER BY uses DESC, name ASC
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular skills: %w", err)
	}
	defer rows.Close()

	var skills []dto.Skill
	for rows.Next() {
		var skill dto.Skill
		if err := rows.Scan(&skill.Name, &skill.Count); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return skills, nil
}

// Stats reports catalogue-level counts per status.
func (r *PGXTraineesRepository) Stats(ctx context.Context) (dto.TraineeStats, error) {
	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = $1),
            COUNT(*) FILTER (WHERE status = $2)
        FROM trainees
    `
	var stats dto.TraineeStats
	err := r.pool.QueryRow(ctx, query, entity.StatusCurrentTrainee, entity.StatusAlumni).
		Scan(&stats.Total, &stats.CurrentTrainees, &stats.Alumni)
	if err != nil {
		return stats, fmt.Errorf("trainee stats: %w", err)
	}
	return stats, nil
}

const traineeUpsertSQL = `
        INSERT INTO trainees (
            full_name, status, university, major,
            preferred_industries, tech_stack, self_introduction,
            cv_link, portfolio_link, profile_photo, linkedin, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
        ON CONFLICT (full_name, university) DO UPDATE SET
            status = EXCLUDED.status,
            major = EXCLUDED.major,
            preferred_industries = EXCLUDED.preferred_industries,
            tech_stack = EXCLUDED.tech_stack,
            self_introduction = EXCLUDED.self_introduction,
            cv_link = EXCLUDED.cv_link,
            portfolio_link = EXCLUDED.portfolio_link,
            profile_photo = EXCLUDED.profile_photo,
            linkedin = EXCLUDED.linkedin,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsert persists a batch of trainees with idempotent semantics,
// keyed by full name and university.
func (r *PGXTraineesRepository) BulkUpsert(ctx context.Context, records []BulkTraineeInput) (BulkUpsertResult, error) {
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
		err := tx.QueryRow(ctx, traineeUpsertSQL,
			record.FullName,
			record.Status,
			record.University,
			record.Major,
			joinTags(record.PreferredIndustries),
			joinTags(record.TechStack),
			record.SelfIntroduction,
			record.CVLink,
			record.PortfolioLink,
			record.ProfilePhoto,
			record.LinkedIn,
		).Scan(&inserted)
		if err != nil {
			return result, fmt.Errorf("bulk upsert trainee %q: %w", record.FullName, err)
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

func scanTrainees(rows pgx.Rows) ([]entity.Trainee, error) {
	var trainees []entity.Trainee
	for rows.Next() {
		var (
			tr                  entity.Trainee
			preferredIndustries sql.NullString
			techStack           sql.NullString
			selfIntroduction    sql.NullString
			cvLink              sql.NullString
			portfolioLink       sql.NullString
			profilePhoto        sql.NullString
			linkedin            sql.NullString
		)

		err := rows.Scan(
			&tr.ID,
			&tr.FullName,
			&tr.Status,
			&tr.University,
			&tr.Major,
			&preferredIndustries,
			&techStack,
			&selfIntroduction,
			&cvLink,
			&portfolioLink,
			&profilePhoto,
			&linkedin,
			&tr.Featured,
			&tr.CreatedAt,
			&tr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trainee: %w", err)
		}

		tr.PreferredIndustries = splitTags(preferredIndustries.String)
		tr.TechStack = splitTags(techStack.String)
		tr.SelfIntroduction = nullStringToPtr(selfIntroduction)
		tr.CVLink = nullStringToPtr(cvLink)
		tr.PortfolioLink = nullStringToPtr(portfolioLink)
		tr.ProfilePhoto = nullStringToPtr(profilePhoto)
		tr.LinkedIn = nullStringToPtr(linkedin)

		trainees = append(trainees, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trainees: %w", err)
	}
	return trainees, nil
}
