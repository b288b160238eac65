package service

import (
	"context"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/model"
)

// UserRepository is the credential store used by AuthService.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// JobRepository is the job store used by JobService. Implementations match
// existing records on id AND owner id, never on id alone.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	// ListByOwner returns the owner's jobs ordered by id.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Job, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status model.Status, at time.Time) (*model.Job, error)
	Delete(ctx context.Context, ownerID, id string) error
}
