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

// TraineesService exposes read/write operations for the trainee catalogue.
type TraineesService struct {
	repo      repository.TraineesRepository
	validator *ContactValidator
}

// NewTraineesService creates a new instance of TraineesService.
func NewTraineesService(repo repository.TraineesRepository, validator *ContactValidator) *TraineesService {
	if validator == nil {
		validator = NewContactValidator("")
	}
	return &TraineesService{repo: repo, validator: validator}
}

// ListTrainees returns one page of trainees matching the filter.
func (s *TraineesService) ListTrainees(ctx context.Context, filter dto.TraineeFilter) (dto.Page[entity.Trainee], error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	if filter.Status != "" && !entity.ValidStatus(filter.Status) {
		return dto.Page[entity.Trainee]{}, ValidationError{Message: fmt.Sprintf("unknown status %q", filter.Status)}
	}

	trainees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.Page[entity.Trainee]{}, err
	}
	return dto.NewPage(trainees, filter.Page, filter.Limit, total), nil
}

// GetTrainee returns a single trainee by id.
func (s *TraineesService) GetTrainee(ctx context.Context, id uuid.UUID) (*entity.Trainee, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateTrainee validates and persists a new trainee profile.
func (s *TraineesService) CreateTrainee(ctx context.Context, req dto.TraineeRequest) (*entity.Trainee, error) {
	trainee, err := s.traineeFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, trainee); err != nil {
		return nil, err
	}
	return trainee, nil
}

// UpdateTrainee validates and persists changes to an existing profile.
func (s *TraineesService) UpdateTrainee(ctx context.Context, id uuid.UUID, req dto.TraineeRequest) (*entity.Trainee, error) {
	trainee, err := s.traineeFromRequest(req)
	if err != nil {
		return nil, err
	}
	trainee.ID = id
	if err := s.repo.Update(ctx, trainee); err != nil {
		return nil, err
	}
	return trainee, nil
}

// DeleteTrainee removes a trainee by id.
func (s *TraineesService) DeleteTrainee(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// FeaturedTrainees returns profiles flagged for the landing page.
func (s *TraineesService) FeaturedTrainees(ctx context.Context, limit int) ([]entity.Trainee, error) {
	return s.repo.Featured(ctx, limit)
}

// Universities returns the distinct universities across all trainees.
func (s *TraineesService) Universities(ctx context.Context) ([]string, error) {
	return s.repo.Universities(ctx)
}

// Majors returns the distinct majors across all trainees.
func (s *TraineesService) Majors(ctx context.Context) ([]string, error) {
	return s.repo.Majors(ctx)
}

// Industries returns the distinct preferred industry tags.
func (s *TraineesService) Industries(ctx context.Context) ([]string, error) {
	return s.repo.Industries(ctx)
}

// PopularSkills returns tech stack tags ordered by how many profiles
// carry them.
func (s *TraineesService) PopularSkills(ctx context.Context, limit int) ([]dto.Skill, error) {
	return s.repo.PopularSkills(ctx, limit)
}

// StatusOptions returns the valid trainee status values in display order.
func (s *TraineesService) StatusOptions() []string {
	options := make([]string, len(entity.TraineeStatuses))
	copy(options, entity.TraineeStatuses)
	return options
}

// Stats returns catalogue-level counts.
func (s *TraineesService) Stats(ctx context.Context) (dto.TraineeStats, error) {
	return s.repo.Stats(ctx)
}

func (s *TraineesService) traineeFromRequest(req dto.TraineeRequest) (*entity.Trainee, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, ValidationError{Message: "fullName is required"}
	}
	if !entity.ValidStatus(req.Status) {
		return nil, ValidationError{Message: fmt.Sprintf("status must be one of: %s", strings.Join(entity.TraineeStatuses, ", "))}
	}
	university := strings.TrimSpace(req.University)
	if university == "" {
		return nil, ValidationError{Message: "university is required"}
	}
	major := strings.TrimSpace(req.Major)
	if major == "" {
		return nil, ValidationError{Message: "major is required"}
	}

	trainee := &entity.Trainee{
		FullName:            fullName,
		Status:              req.Status,
		University:          university,
		Major:               major,
		PreferredIndustries: cleanTags(req.PreferredIndustries),
		TechStack:           cleanTags(req.TechStack),
		SelfIntroduction:    normalizeString(ptrValue(req.SelfIntroduction)),
		CVLink:              normalizeString(ptrValue(req.CVLink)),
		ProfilePhoto:        normalizeString(ptrValue(req.ProfilePhoto)),
		Featured:            req.Featured,
	}

	if link := ptrValue(req.PortfolioLink); strings.TrimSpace(link) != "" {
		normalized, err := s.validator.Website(link)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("invalid portfolio link: %s", link)}
		}
		trainee.PortfolioLink = &normalized
	}
	if link := ptrValue(req.LinkedIn); strings.TrimSpace(link) != "" {
		normalized, err := s.validator.Website(link)
		if err != nil {
			return nil, ValidationError{Message: fmt.Sprintf("invalid linkedin link: %s", link)}
		}
		trainee.LinkedIn = &normalized
	}

	return trainee, nil
}

var traineeCSVHeaders = []string{"full_name", "status", "university", "major"}

// ImportTraineesCSV ingests trainee rows from a CSV reader. Rows missing
// any required column are skipped; an unknown status fails the import.
func (s *TraineesService) ImportTraineesCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	index, valErr := buildHeaderIndex(header, traineeCSVHeaders)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []repository.BulkTraineeInput
		rowNum  = 1
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		fullName := cellAt(row, index, "full_name")
		status := cellAt(row, index, "status")
		university := cellAt(row, index, "university")
		major := cellAt(row, index, "major")
		if fullName == "" || university == "" || major == "" {
			continue
		}
		if !entity.ValidStatus(status) {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("unknown status %q on row %d", status, rowNum)}
		}

		records = append(records, repository.BulkTraineeInput{
			FullName:            fullName,
			Status:              status,
			University:          university,
			Major:               major,
			PreferredIndustries: splitList(cellAt(row, index, "preferred_industries")),
			TechStack:           splitList(cellAt(row, index, "tech_stack")),
			SelfIntroduction:    normalizeString(cellAt(row, index, "self_introduction")),
			CVLink:              normalizeString(cellAt(row, index, "cv_link")),
			PortfolioLink:       normalizeString(cellAt(row, index, "portfolio_link")),
			ProfilePhoto:        normalizeString(cellAt(row, index, "profile_photo")),
			LinkedIn:            normalizeString(cellAt(row, index, "linkedin")),
		})
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}
	return UploadSummary{Inserted: result.Inserted, Updated: result.Updated, Total: result.Total}, nil
}
