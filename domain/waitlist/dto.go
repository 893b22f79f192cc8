package waitlist

import (
	"strings"

	"github.com/jammapp/waitlist-api/internal/models"
	"github.com/jammapp/waitlist-api/pkg/constants"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type SignupRequest struct {
	Email  string `json:"email" binding:"required,email,max=255"`
	School string `json:"school" binding:"required,min=1,max=255"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type SignupResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

type SubscriberResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	School       string `json:"school,omitempty"`
	SubscribedAt string `json:"subscribedAt"`
}

var schoolTitleCaser = cases.Title(language.English)

// NormalizeSchool tidies the free-text affiliation users type into the
// signup form ("university of toronto" -> "University Of Toronto").
func NormalizeSchool(school string) string {
	return schoolTitleCaser.String(strings.TrimSpace(school))
}

func ToSubscriberResponse(entry *models.WaitlistEntry) SubscriberResponse {
	if entry == nil {
		return SubscriberResponse{}
	}
	return SubscriberResponse{
		ID:           entry.ID,
		Email:        entry.Email,
		School:       entry.School,
		SubscribedAt: entry.SubscribedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

func ToSubscriberResponses(entries []*models.WaitlistEntry) []SubscriberResponse {
	responses := make([]SubscriberResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToSubscriberResponse(entry))
	}
	return responses
}
