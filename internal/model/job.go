package model

import "time"

// Status is the stage a job application has reached.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Job is a single tracked application. It belongs to exactly one user.
type Job struct {
	ID        string    `json:"id" bson:"_id"`
	Company   string    `json:"company" bson:"company"`
	Role      string    `json:"role" bson:"role"`
	Status    Status    `json:"status" bson:"status"`
	OwnerID   string    `json:"ownerId" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Status  Status `json:"status"`
}

// UpdateStatusRequest is the body of PATCH /jobs/{id}. Only the status is mutable.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
