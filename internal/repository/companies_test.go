package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/velizhask/KADA-Connect/internal/dto"
)

func companyScan(dest ...any) error {
	created := time.Now()
	*dest[0].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	*dest[1].(*string) = "Acme Robotics"
	*dest[2].(*string) = "Builds robots"
	*dest[3].(*sql.NullString) = sql.NullString{String: "Manufacturing, Software", Valid: true}
	*dest[4].(*sql.NullString) = sql.NullString{String: "https://acme.example", Valid: true}
	*dest[5].(*sql.NullString) = sql.NullString{String: "", Valid: true}
	*dest[6].(*sql.NullString) = sql.NullString{String: "Backend,Data", Valid: true}
	*dest[7].(*sql.NullString) = sql.NullString{}
	*dest[8].(*sql.NullString) = sql.NullString{String: "Jane", Valid: true}
	*dest[9].(*sql.NullString) = sql.NullString{String: "jane@acme.example", Valid: true}
	*dest[10].(*sql.NullString) = sql.NullString{}
	*dest[11].(*bool) = true
	*dest[12].(*time.Time) = created
	*dest[13].(*time.Time) = created
	return nil
}

func TestScanCompanies(t *testing.T) {
	rows := &stubRows{scans: []func(dest ...any) error{companyScan}}
	companies, err := scanCompanies(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}

	company := companies[0]
	if company.Name != "Acme Robotics" {
		t.Fatalf("unexpected company: %+v", company)
	}
	if len(company.Industries) != 2 || company.Industries[0] != "Manufacturing" || company.Industries[1] != "Software" {
		t.Fatalf("expected industries split into tags, got %v", company.Industries)
	}
	if len(company.TechRoles) != 2 || company.TechRoles[1] != "Data" {
		t.Fatalf("expected tech roles split, got %v", company.TechRoles)
	}
	if company.Logo != nil {
		t.Fatalf("expected empty logo column to map to nil, got %v", *company.Logo)
	}
	if company.Website == nil || *company.Website != "https://acme.example" {
		t.Fatalf("expected website set, got %v", company.Website)
	}
	if !company.ShowContact || company.ContactEmail == nil {
		t.Fatalf("expected contact fields preserved, got %+v", company)
	}
}

func TestPGXCompaniesRepository_List_FilterArgs(t *testing.T) {
	var countQuery, listQuery string
	var countArgs, listArgs []any

	repo := NewPGXCompaniesRepository(&stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			countQuery = query
			countArgs = args
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*int) = 57
				return nil
			}}
		},
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			listQuery = query
			listArgs = args
			return &stubRows{scans: []func(dest ...any) error{companyScan}}, nil
		},
	})

	companies, total, err := repo.List(context.Background(), dto.CompanyFilter{
		Q:        "robot",
		Industry: "Software",
		Page:     3,
		Limit:    20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 57 || len(companies) != 1 {
		t.Fatalf("unexpected result: total=%d companies=%d", total, len(companies))
	}

	// Count runs with the filter args only; the list adds limit and offset.
	if len(countArgs) != 3 {
		t.Fatalf("expected 3 count args, got %v", countArgs)
	}
	if len(listArgs) != 5 || listArgs[3] != 20 || listArgs[4] != 40 {
		t.Fatalf("expected limit/offset appended, got %v", listArgs)
	}
	if countQuery == "" || listQuery == "" {
		t.Fatalf("expected queries captured")
	}
}

func TestPGXCompaniesRepository_List_Clamps(t *testing.T) {
	var listArgs []any
	repo := NewPGXCompaniesRepository(&stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*int) = 0
				return nil
			}}
		},
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			listArgs = args
			return &stubRows{}, nil
		},
	})

	if _, _, err := repo.List(context.Background(), dto.CompanyFilter{Page: -2, Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listArgs) != 2 || listArgs[0] != 100 || listArgs[1] != 0 {
		t.Fatalf("expected clamped limit 100 and offset 0, got %v", listArgs)
	}
}

func TestPGXCompaniesRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPGXCompaniesRepository(&stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{}, nil
		},
	})

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestPGXCompaniesRepository_CreateValidation(t *testing.T) {
	repo := &PGXCompaniesRepository{}
	if err := repo.Create(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil company")
	}
	if err := repo.Update(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil company")
	}
}

func TestPGXCompaniesRepository_BulkUpsertEmpty(t *testing.T) {
	repo := &PGXCompaniesRepository{}
	res, err := repo.BulkUpsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("expected zero summary, got %+v", res)
	}
}
