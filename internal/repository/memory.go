package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/model"
)

// MemoryUserRepository keeps users in process memory. Used for local runs and tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// MemoryJobRepository keeps jobs in process memory in insertion order.
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs []model.Job
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{}
}

func (r *MemoryJobRepository) Create(_ context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *MemoryJobRepository) ListByOwner(_ context.Context, ownerID string) ([]model.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := []model.Job{}
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// indexOf must be called with r.mu held.
func (r *MemoryJobRepository) indexOf(ownerID, id string) int {
	for i, j := range r.jobs {
		if j.ID == id && j.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (r *MemoryJobRepository) GetByID(_ context.Context, ownerID, id string) (*model.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrJobNotFound
	}
	job := r.jobs[i]
	return &job, nil
}

func (r *MemoryJobRepository) UpdateStatus(_ context.Context, ownerID, id string, status model.Status, at time.Time) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrJobNotFound
	}
	r.jobs[i].Status = status
	r.jobs[i].UpdatedAt = at
	job := r.jobs[i]
	return &job, nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return ErrJobNotFound
	}
	r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
	return nil
}
