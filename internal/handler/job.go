package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobtracker/jobtracker-go/internal/middleware"
	"github.com/jobtracker/jobtracker-go/internal/model"
	"github.com/jobtracker/jobtracker-go/internal/service"
)

const maxJobIDLength = 36

// JobHandler handles HTTP requests for the caller's jobs.
type JobHandler struct {
	service *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{service: svc}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("unauthorized"))
	}
	return userID, ok
}

func jobIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxJobIDLength {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid job id"))
		return "", false
	}
	return id, true
}

// HandleList handles GET /jobs requests.
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	jobs, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// HandleCreate handles POST /jobs requests.
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	job, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyRequired),
			errors.Is(err, service.ErrRoleRequired),
			errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// HandleUpdateStatus handles PATCH /jobs/{id} requests.
func (h *JobHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := jobIDParam(w, r)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	job, err := h.service.UpdateStatus(r.Context(), userID, jobID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrJobNotFound):
			writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// HandleDelete handles DELETE /jobs/{id} requests. It succeeds whether or not
// a matching job existed.
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	jobID, ok := jobIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, jobID); err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Job deleted"})
}
