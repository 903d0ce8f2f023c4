package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/entity"
	"github.com/velizhask/KADA-Connect/internal/repository"
)

type mockCompaniesRepository struct {
	list       func(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error)
	getByID    func(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	create     func(ctx context.Context, company *entity.Company) error
	update     func(ctx context.Context, company *entity.Company) error
	delete     func(ctx context.Context, id uuid.UUID) error
	industries func(ctx context.Context) ([]string, error)
	techRoles  func(ctx context.Context) ([]string, error)
	stats      func(ctx context.Context) (dto.CompanyStats, error)
	bulkUpsert func(ctx context.Context, records []repository.BulkCompanyInput) (repository.BulkUpsertResult, error)
}

func (m *mockCompaniesRepository) List(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, 0, errors.New("List not implemented")
}

func (m *mockCompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("GetByID not implemented")
}

func (m *mockCompaniesRepository) Create(ctx context.Context, company *entity.Company) error {
	if m.create != nil {
		return m.create(ctx, company)
	}
	return errors.New("Create not implemented")
}

func (m *mockCompaniesRepository) Update(ctx context.Context, company *entity.Company) error {
	if m.update != nil {
		return m.update(ctx, company)
	}
	return errors.New("Update not implemented")
}

func (m *mockCompaniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("Delete not implemented")
}

func (m *mockCompaniesRepository) Industries(ctx context.Context) ([]string, error) {
	if m.industries != nil {
		return m.industries(ctx)
	}
	return nil, errors.New("Industries not implemented")
}

func (m *mockCompaniesRepository) TechRoles(ctx context.Context) ([]string, error) {
	if m.techRoles != nil {
		return m.techRoles(ctx)
	}
	return nil, errors.New("TechRoles not implemented")
}

func (m *mockCompaniesRepository) Stats(ctx context.Context) (dto.CompanyStats, error) {
	if m.stats != nil {
		return m.stats(ctx)
	}
	return dto.CompanyStats{}, errors.New("Stats not implemented")
}

func (m *mockCompaniesRepository) BulkUpsert(ctx context.Context, records []repository.BulkCompanyInput) (repository.BulkUpsertResult, error) {
	if m.bulkUpsert != nil {
		return m.bulkUpsert(ctx, records)
	}
	return repository.BulkUpsertResult{}, errors.New("BulkUpsert not implemented")
}

func TestCompaniesService_ListCompanies(t *testing.T) {
	contact := "pak.budi@example.com"
	repo := &mockCompaniesRepository{
		list: func(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error) {
			if filter.Page != 1 || filter.Limit != 20 {
				t.Fatalf("expected clamped defaults, got page=%d limit=%d", filter.Page, filter.Limit)
			}
			return []entity.Company{
				{Name: "Open Co", ShowContact: true, ContactEmail: &contact},
				{Name: "Quiet Co", ShowContact: false, ContactEmail: &contact},
			}, 42, nil
		},
	}

	service := NewCompaniesService(repo, nil)
	page, err := service.ListCompanies(context.Background(), dto.CompanyFilter{Page: 0, Limit: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Pagination.Total != 42 || page.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if page.Data[0].ContactEmail == nil {
		t.Fatalf("expected contact kept when ShowContact is true")
	}
	if page.Data[1].ContactEmail != nil {
		t.Fatalf("expected contact hidden when ShowContact is false")
	}
}

func TestCompaniesService_ListCompanies_ClampsLimit(t *testing.T) {
	repo := &mockCompaniesRepository{
		list: func(ctx context.Context, filter dto.CompanyFilter) ([]entity.Company, int, error) {
			if filter.Limit != 100 {
				t.Fatalf("expected limit clamped to 100, got %d", filter.Limit)
			}
			return nil, 0, nil
		},
	}
	service := NewCompaniesService(repo, nil)
	if _, err := service.ListCompanies(context.Background(), dto.CompanyFilter{Limit: 5000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompaniesService_CreateCompany(t *testing.T) {
	var captured *entity.Company
	repo := &mockCompaniesRepository{
		create: func(ctx context.Context, company *entity.Company) error {
			captured = company
			return nil
		},
	}
	service := NewCompaniesService(repo, NewContactValidator("ID"))

	website := "example.com"
	email := " Contact@Example.COM "
	created, err := service.CreateCompany(context.Background(), dto.CompanyRequest{
		Name:         "  KADA Labs ",
		Summary:      "Builds training platforms",
		Industries:   []string{" Education ", ""},
		Website:      &website,
		ContactEmail: &email,
		ShowContact:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "KADA Labs" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if captured.Website == nil || *captured.Website != "https://example.com" {
		t.Fatalf("expected normalised website, got %v", captured.Website)
	}
	if captured.ContactEmail == nil || *captured.ContactEmail != "contact@example.com" {
		t.Fatalf("expected normalised email, got %v", captured.ContactEmail)
	}
	if len(captured.Industries) != 1 || captured.Industries[0] != "Education" {
		t.Fatalf("expected cleaned industries, got %v", captured.Industries)
	}

	var validationErr ValidationError
	if _, err := service.CreateCompany(context.Background(), dto.CompanyRequest{Summary: "x", Industries: []string{"Tech"}}); !errors.As(err, &validationErr) {
		t.Fatalf("expected missing name error, got %v", err)
	}
	if _, err := service.CreateCompany(context.Background(), dto.CompanyRequest{Name: "x", Summary: "y"}); !errors.As(err, &validationErr) {
		t.Fatalf("expected missing industries error, got %v", err)
	}

	badEmail := "not-an-email"
	if _, err := service.CreateCompany(context.Background(), dto.CompanyRequest{
		Name: "x", Summary: "y", Industries: []string{"Tech"}, ContactEmail: &badEmail,
	}); !errors.As(err, &validationErr) {
		t.Fatalf("expected invalid email error, got %v", err)
	}
}

func TestCompaniesService_ImportCompaniesCSV(t *testing.T) {
	var captured []repository.BulkCompanyInput
	repo := &mockCompaniesRepository{
		bulkUpsert: func(ctx context.Context, records []repository.BulkCompanyInput) (repository.BulkUpsertResult, error) {
			captured = records
			return repository.BulkUpsertResult{Inserted: 1, Updated: 1, Total: 2}, nil
		},
	}
	service := NewCompaniesService(repo, nil)

	csvData := strings.Join([]string{
		"name,summary,industries,website,tech_roles,show_contact",
		"KADA Labs,Training platforms,Education;Technology,https://kada.example,Backend;Frontend,true",
		",missing name row,,,,",
		"Quiet Co,Consulting,Finance,,,no",
	}, "\n")

	summary, err := service.ImportCompaniesCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(captured) != 2 {
		t.Fatalf("expected 2 records after skipping blank row, got %d", len(captured))
	}
	if len(captured[0].Industries) != 2 || captured[0].Industries[1] != "Technology" {
		t.Fatalf("expected split industries, got %v", captured[0].Industries)
	}
	if !captured[0].ShowContact || captured[1].ShowContact {
		t.Fatalf("unexpected show_contact parsing: %+v", captured)
	}

	var csvErr CSVValidationError
	if _, err := service.ImportCompaniesCSV(context.Background(), strings.NewReader("")); !errors.As(err, &csvErr) {
		t.Fatalf("expected empty csv error, got %v", err)
	}
	if _, err := service.ImportCompaniesCSV(context.Background(), strings.NewReader("foo,bar\n1,2")); !errors.As(err, &csvErr) {
		t.Fatalf("expected missing columns error, got %v", err)
	}
}
