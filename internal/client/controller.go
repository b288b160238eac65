package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/jobtracker/jobtracker-go/internal/model"
)

// Screen is the top-level view the controller is showing.
type Screen int

const (
	Unauthenticated Screen = iota
	Authenticated
)

func (s Screen) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// FilterAll shows every job regardless of status.
const FilterAll = "All"

// RegisteredNotice is returned after a successful registration.
const RegisteredNotice = "Registration successful! Please login."

// ErrNotAuthenticated is returned by job operations attempted without a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the subset of the REST client the controller drives.
type API interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListJobs(ctx context.Context, token string) ([]model.Job, error)
	CreateJob(ctx context.Context, token string, req model.CreateJobRequest) (model.Job, error)
	UpdateStatus(ctx context.Context, token, id string, status model.Status) (model.Job, error)
	DeleteJob(ctx context.Context, token, id string) error
}

// Form is the new-job form.
type Form struct {
	Company string
	Role    string
	Status  model.Status
}

// State is a snapshot of everything the UI renders.
type State struct {
	Screen   Screen
	Jobs     []model.Job
	Form     Form
	Filter   string
	Token    string
	Email    string
	Password string
	IsLogin  bool
}

// Stats holds per-status counts of the current job list.
type Stats struct {
	Total  int
	Counts map[model.Status]int
}

// Controller is the single owner of client state. The job list only changes
// through a full refresh or by reconciling against a server-returned record.
type Controller struct {
	api    API
	tokens TokenStore
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	fetchSeq   uint64
	appliedSeq uint64
}

// NewController restores a persisted token; a stored token starts the
// controller on the authenticated screen. Call Refresh to load jobs.
func NewController(api API, tokens TokenStore, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		api:    api,
		tokens: tokens,
		logger: logger,
		state: State{
			Form:    Form{Status: model.StatusApplied},
			Filter:  FilterAll,
			IsLogin: true,
			Jobs:    []model.Job{},
		},
	}

	token, err := tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token != "" {
		c.state.Token = token
		c.state.Screen = Authenticated
	}
	return c, nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Jobs = slices.Clone(c.state.Jobs)
	return s
}

func (c *Controller) SetCredentials(email, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Email = email
	c.state.Password = password
}

// SetLoginMode switches the auth form between login and register.
func (c *Controller) SetLoginMode(isLogin bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLogin = isLogin
}

func (c *Controller) SetForm(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Status == "" {
		f.Status = model.StatusApplied
	}
	c.state.Form = f
}

// SetFilter selects which jobs Visible returns. Anything other than a known
// status shows all jobs.
func (c *Controller) SetFilter(filter string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !model.Status(filter).Valid() {
		filter = FilterAll
	}
	c.state.Filter = filter
}

// SubmitAuth submits the auth form in its current mode. A successful login
// stores the token and loads the job list; a successful registration flips
// the form to login mode and returns a notice.
func (c *Controller) SubmitAuth(ctx context.Context) (string, error) {
	c.mu.Lock()
	email, password, isLogin := c.state.Email, c.state.Password, c.state.IsLogin
	c.mu.Unlock()

	if !isLogin {
		if _, err := c.api.Register(ctx, email, password); err != nil {
			return "", err
		}
		c.mu.Lock()
		c.state.IsLogin = true
		c.state.Password = ""
		c.mu.Unlock()
		return RegisteredNotice, nil
	}

	token, err := c.api.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	if err := c.tokens.Save(token); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}

	c.mu.Lock()
	c.state.Token = token
	c.state.Screen = Authenticated
	c.state.Password = ""
	c.state.Jobs = []model.Job{}
	c.mu.Unlock()

	return "", c.Refresh(ctx)
}

// Logout clears the session and the local job list.
func (c *Controller) Logout() error {
	c.mu.Lock()
	c.clearSessionLocked()
	c.mu.Unlock()
	return c.tokens.Clear()
}

func (c *Controller) clearSessionLocked() {
	c.state.Token = ""
	c.state.Jobs = []model.Job{}
	c.state.Screen = Unauthenticated
	// Responses still in flight belong to the old session.
	c.appliedSeq = c.fetchSeq
}

// Refresh replaces the job list with the server's. A response that resolves
// after a newer one has been applied is dropped. A 401 ends the session.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Screen != Authenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	c.fetchSeq++
	seq := c.fetchSeq
	token := c.state.Token
	c.mu.Unlock()

	jobs, err := c.api.ListJobs(ctx, token)

	c.mu.Lock()
	if seq <= c.appliedSeq || token != c.state.Token {
		c.mu.Unlock()
		c.logger.Debug("discarding stale job list", "seq", seq)
		return nil
	}
	c.appliedSeq = seq

	if err != nil {
		if IsUnauthorized(err) {
			c.clearSessionLocked()
			c.mu.Unlock()
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.logger.Error("failed to clear token", "error", clearErr)
			}
			return err
		}
		c.mu.Unlock()
		return err
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	c.state.Jobs = jobs
	c.mu.Unlock()
	return nil
}

// AddJob submits the form and appends the created record.
func (c *Controller) AddJob(ctx context.Context) (model.Job, error) {
	c.mu.Lock()
	token, form := c.state.Token, c.state.Form
	c.mu.Unlock()
	if token == "" {
		return model.Job{}, ErrNotAuthenticated
	}

	job, err := c.api.CreateJob(ctx, token, model.CreateJobRequest{
		Company: strings.TrimSpace(form.Company),
		Role:    strings.TrimSpace(form.Role),
		Status:  form.Status,
	})
	if err != nil {
		return model.Job{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.state.Token {
		return job, nil
	}
	c.state.Jobs = append(c.state.Jobs, job)
	c.state.Form.Company = ""
	c.state.Form.Role = ""
	return job, nil
}

// UpdateStatus changes a job's status and replaces the local record by id.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Job, error) {
	c.mu.Lock()
	token := c.state.Token
	c.mu.Unlock()
	if token == "" {
		return model.Job{}, ErrNotAuthenticated
	}

	job, err := c.api.UpdateStatus(ctx, token, id, status)
	if err != nil {
		return model.Job{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.state.Token {
		return job, nil
	}
	for i := range c.state.Jobs {
		if c.state.Jobs[i].ID == job.ID {
			c.state.Jobs[i] = job
		}
	}
	return job, nil
}

// DeleteJob removes a job and drops the local record by id.
func (c *Controller) DeleteJob(ctx context.Context, id string) error {
	c.mu.Lock()
	token := c.state.Token
	c.mu.Unlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	if err := c.api.DeleteJob(ctx, token, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.state.Token {
		return nil
	}
	c.state.Jobs = slices.DeleteFunc(c.state.Jobs, func(j model.Job) bool {
		return j.ID == id
	})
	return nil
}

// Stats counts the current job list by status.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Counts: make(map[model.Status]int, len(model.Statuses))}
	for _, s := range model.Statuses {
		stats.Counts[s] = 0
	}
	for _, j := range c.state.Jobs {
		stats.Total++
		stats.Counts[j.Status]++
	}
	return stats
}

// Visible returns the jobs matching the current filter.
func (c *Controller) Visible() []model.Job {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Filter == FilterAll {
		return slices.Clone(c.state.Jobs)
	}
	visible := make([]model.Job, 0, len(c.state.Jobs))
	for _, j := range c.state.Jobs {
		if string(j.Status) == c.state.Filter {
			visible = append(visible, j)
		}
	}
	return visible
}
