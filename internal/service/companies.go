package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/entity"
	"github.com/velizhask/KADA-Connect/internal/repository"
)

// ValidationError indicates that a request payload is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// CompaniesService exposes read/write operations for the company catalogue.
type CompaniesService struct {
	repo      repository.CompaniesRepository
	validator *ContactValidator
}

// NewCompaniesService creates a new instance of CompaniesService.
func NewCompaniesService(repo repository.CompaniesRepository, validator *ContactValidator) *CompaniesService {
	if validator == nil {
		validator = NewContactValidator("")
	}
	return &CompaniesService{repo: repo, validator: validator}
}

// ListCompanies returns one page of companies matching the filter. Contact
// details are stripped from companies that opted out of showing them.
func (s *CompaniesService) ListCompanies(ctx context.Context, filter dto.CompanyFilter) (dto.Page[entity.Company], error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	companies, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.Page[entity.Company]{}, err
	}
	for i := range companies {
		if !companies[i].ShowContact {
			companies[i].HideContact()
		}
	}
	return dto.NewPage(companies, filter.Page, filter.Limit, total), nil
}

// GetCompany returns a single company by id.
func (s *CompaniesService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !company.ShowContact {
		company.HideContact()
	}
	return company, nil
}

// CreateCompany validates and persists a new company.
func (s *CompaniesService) CreateCompany(ctx context.Context, req dto.CompanyRequest) (*entity.Company, error) {
	company, err := s.companyFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateCompany validates and persists changes to an existing company.
func (s *CompaniesService) UpdateCompany(ctx context.Context, id uuid.UUID, req dto.CompanyRequest) (*entity.Company, error) {
	company, err := s.companyFromRequest(req)
	if err != nil {
		return nil, err
	}
	company.ID = id
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes a company by id.
func (s *CompaniesService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Industries returns the distinct industry tags across all companies.
func (s *CompaniesService) Industries(ctx context.Context) ([]string, error) {
	return s.repo.Industries(ctx)
}

// TechRoles returns the distinct tech role tags across all companies.
func (s *CompaniesService) TechRoles(ctx context.Context) ([]string, error) {
	return s.repo.TechRoles(ctx)
}

// Stats returns catalogue-level counts.
func (s *CompaniesService) Stats(ctx context.Context) (dto.CompanyStats, error) {
	return s.repo.Stats(ctx)
}

func (s *CompaniesService) companyFromRequest(req dto.CompanyRequest) (*entity.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ValidationError{Message: "name is required"}
	}
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		return nil, ValidationError{Message: "summary is required"}
	}
	if len(cleanTags(req.Industries)) == 0 {
		return nil, ValidationError{Message: "at least one industry is required"}
	}

	company := &entity.Company{
		Name:            name,
		Summary:         summary,
		Industries:      cleanTags(req.Industries),
		TechRoles:       cleanTags(req.TechRoles),
		PreferredSkills: cleanTags(req.PreferredSkills),
		ContactName:     normalizeString(ptrValue(req.ContactName)),
		ShowContact:     req.ShowContact,
	}

	if website := ptrValue(req.Website); strings.TrimSpace(website) != "" {
		normalized, err := s.validator.Website(website)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("invalid website: %s", website)}
		}
		company.Website = &normalized
	}
	company.Logo = normalizeString(ptrValue(req.Logo))

	if email := ptrValue(req.ContactEmail); strings.TrimSpace(email) != "" {
		normalized, err := s.validator.Email(email)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("invalid contact email: %s", email)}
		}
		company.ContactEmail = &normalized
	}
	if phone := ptrValue(req.ContactPhone); strings.TrimSpace(phone) != "" {
		normalized, err := s.validator.Phone(phone)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("invalid contact phone: %s", phone)}
		}
		company.ContactPhone = &normalized
	}

	return company, nil
}

var companyCSVHeaders = []string{"name", "summary", "industries"}

// ImportCompaniesCSV ingests company rows from a CSV reader. Rows missing
// a name or summary are skipped; malformed optional values fail the whole
// import so a partial upload never lands silently.
func (s *CompaniesService) ImportCompaniesCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	index, valErr := buildHeaderIndex(header, companyCSVHeaders)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var records []repository.BulkCompanyInput
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		name := cellAt(row, index, "name")
		summary := cellAt(row, index, "summary")
		if name == "" || summary == "" {
			continue
		}

		records = append(records, repository.BulkCompanyInput{
			Name:            name,
			Summary:         summary,
			Industries:      splitList(cellAt(row, index, "industries")),
			Website:         normalizeString(cellAt(row, index, "website")),
			Logo:            normalizeString(cellAt(row, index, "logo")),
			TechRoles:       splitList(cellAt(row, index, "tech_roles")),
			PreferredSkills: splitList(cellAt(row, index, "preferred_skills")),
			ContactName:     normalizeString(cellAt(row, index, "contact_name")),
			ContactEmail:    normalizeString(cellAt(row, index, "contact_email")),
			ContactPhone:    normalizeString(cellAt(row, index, "contact_phone")),
			ShowContact:     parseBool(cellAt(row, index, "show_contact")),
		})
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}
	return UploadSummary{Inserted: result.Inserted, Updated: result.Updated, Total: result.Total}, nil
}

func clampPage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func buildHeaderIndex(header, required []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func cellAt(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitList parses a multi-value CSV cell. Both semicolons and commas
// separate entries so exports from spreadsheets in either convention load.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ','
	})
	return cleanTags(fields)
}

func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func ptrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
