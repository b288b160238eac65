package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/model"
	"github.com/jobtracker/jobtracker-go/internal/repository"
	"github.com/jobtracker/jobtracker-go/internal/server"
	"github.com/jobtracker/jobtracker-go/internal/service"
)

const testSecret = "client-test-secret"

func newTestAPI(t *testing.T) *Client {
	t.Helper()
	authService := service.NewAuthService(repository.NewMemoryUserRepository(), testSecret, time.Hour)
	jobService := service.NewJobService(repository.NewMemoryJobRepository())

	srv := httptest.NewServer(server.NewRouter(authService, jobService, []string{"*"}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestClientHealth(t *testing.T) {
	c := newTestAPI(t)
	got, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if got != "backend is alive" {
		t.Errorf("Health() = %q", got)
	}
}

func TestClientJobLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestAPI(t)

	msg, err := c.Register(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if msg != "User registered successfully" {
		t.Errorf("Register() message = %q", msg)
	}

	token, err := c.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	job, err := c.CreateJob(ctx, token, model.CreateJobRequest{Company: "Acme", Role: "SWE", Status: model.StatusApplied})
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}
	if job.ID == "" || job.Company != "Acme" {
		t.Fatalf("CreateJob() = %+v", job)
	}

	updated, err := c.UpdateStatus(ctx, token, job.ID, model.StatusOffer)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != model.StatusOffer || updated.Role != "SWE" {
		t.Errorf("UpdateStatus() = %+v", updated)
	}

	for i := 0; i < 2; i++ {
		if err := c.DeleteJob(ctx, token, job.ID); err != nil {
			t.Fatalf("DeleteJob() #%d error = %v", i+1, err)
		}
	}

	jobs, err := c.ListJobs(ctx, token)
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("ListJobs() = %d jobs, want 0", len(jobs))
	}
}

func TestClientAPIErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestAPI(t)

	tests := []struct {
		name       string
		call       func() error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "unknown account",
			call: func() error {
				_, err := c.Login(ctx, "nobody@x.com", "pw")
				return err
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Account not found. Please register first.",
		},
		{
			name: "missing token",
			call: func() error {
				_, err := c.ListJobs(ctx, "")
				return err
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, unauthorized",
		},
		{
			name: "bad token",
			call: func() error {
				_, err := c.ListJobs(ctx, "garbage")
				return err
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.wantStatus || apiErr.Message != tt.wantMsg {
				t.Errorf("APIError = %d %q, want %d %q", apiErr.Status, apiErr.Message, tt.wantStatus, tt.wantMsg)
			}
			if got := IsUnauthorized(err); got != (tt.wantStatus == http.StatusUnauthorized) {
				t.Errorf("IsUnauthorized() = %v", got)
			}
		})
	}
}
