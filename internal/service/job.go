package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobtracker/jobtracker-go/internal/model"
	"github.com/jobtracker/jobtracker-go/internal/repository"
)

var (
	ErrCompanyRequired = errors.New("company is required")
	ErrRoleRequired    = errors.New("role is required")
	ErrInvalidStatus   = errors.New("status must be one of Applied, Interview, Offer, Rejected")
	ErrJobNotFound     = errors.New("job not found")
)

// JobService handles job CRUD scoped to the authenticated user.
type JobService struct {
	repo JobRepository
	now  func() time.Time
}

// NewJobService creates a new JobService.
func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo, now: time.Now}
}

func (s *JobService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// List returns every job owned by userID.
func (s *JobService) List(ctx context.Context, userID string) ([]model.Job, error) {
	jobs, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return jobs, nil
}

// Create stores a new job owned by userID. An empty status defaults to Applied.
func (s *JobService) Create(ctx context.Context, userID string, req model.CreateJobRequest) (model.Job, error) {
	company := strings.TrimSpace(req.Company)
	role := strings.TrimSpace(req.Role)
	if company == "" {
		return model.Job{}, ErrCompanyRequired
	}
	if role == "" {
		return model.Job{}, ErrRoleRequired
	}

	status := req.Status
	if status == "" {
		status = model.StatusApplied
	}
	if !status.Valid() {
		return model.Job{}, ErrInvalidStatus
	}

	// Version 7 ids sort by creation time, so listing by id keeps creation order.
	id, err := uuid.NewV7()
	if err != nil {
		return model.Job{}, fmt.Errorf("generate job id: %w", err)
	}

	ts := s.timestamp()
	job := model.Job{
		ID:        id.String(),
		Company:   company,
		Role:      role,
		Status:    status,
		OwnerID:   userID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := s.repo.Create(ctx, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// UpdateStatus changes only the status of a job owned by userID.
// A job that does not exist or belongs to someone else yields ErrJobNotFound.
func (s *JobService) UpdateStatus(ctx context.Context, userID, jobID string, status model.Status) (model.Job, error) {
	if !status.Valid() {
		return model.Job{}, ErrInvalidStatus
	}

	job, err := s.repo.UpdateStatus(ctx, userID, jobID, status, s.timestamp())
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.Job{}, ErrJobNotFound
		}
		return model.Job{}, err
	}
	return *job, nil
}

// Delete removes a job owned by userID. Deleting a job that is already gone,
// or was never the caller's, succeeds.
func (s *JobService) Delete(ctx context.Context, userID, jobID string) error {
	err := s.repo.Delete(ctx, userID, jobID)
	if errors.Is(err, repository.ErrJobNotFound) {
		slog.Debug("delete matched no job", "user_id", userID, "job_id", jobID)
		return nil
	}
	return err
}
