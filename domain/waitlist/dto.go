package waitlist

import (
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
)

const (
	MessageAdded        = "Added to waitlist!"
	MessageRequired     = "Name and Email are required."
	MessageAlreadyAdded = "Email already added."
	MessageUnavailable  = "Something went wrong."
)

// SubmitRequest is the landing-page form payload. Presence is checked by the
// service after trimming, so binding only caps the length.
type SubmitRequest struct {
	Name  string `json:"name" binding:"max=255"`
	Email string `json:"email" binding:"max=255"`
}

type SubmissionResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func ToSubmissionResponse(entry *models.WaitlistEntry) SubmissionResponse {
	if entry == nil {
		return SubmissionResponse{}
	}
	return SubmissionResponse{
		Name:      entry.Name,
		Email:     entry.Email,
		CreatedAt: entry.CreatedAt.UTC().Format(constants.RFC3339DateTimeFormat),
	}
}
