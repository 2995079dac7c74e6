// internal/app/features/applications/types.go
package applications

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"github.com/dalemusser/candidacyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/candidacyhub/internal/app/system/lifecycle"
	"github.com/dalemusser/candidacyhub/internal/app/system/limits"
	"github.com/dalemusser/candidacyhub/internal/app/system/normalize"
	"github.com/dalemusser/candidacyhub/internal/domain/models"
)

// applicationForm is the submit/re-submit request body.
type applicationForm struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Stake    string `json:"stake"`
	Ward     string `json:"ward"`
	Gender   string `json:"gender"`
	MoreInfo string `json:"more_info"`
	Status   string `json:"status"` // draft | awaiting; empty means draft
}

// validate normalizes the form in place and reports the first
// malformed field.
func (f *applicationForm) validate() error {
	f.FullName = htmlsanitize.StripAll(normalize.Name(f.FullName))
	f.Email = normalize.Email(f.Email)
	f.Phone = normalize.Phone(f.Phone)
	f.Stake = normalize.Place(f.Stake)
	f.Ward = normalize.Place(f.Ward)
	f.Gender = normalize.Gender(f.Gender)
	f.MoreInfo = htmlsanitize.StripAll(strings.TrimSpace(f.MoreInfo))
	f.Status = normalize.Status(f.Status)

	if f.FullName == "" {
		return apperrors.Validation("full_name is required")
	}
	if f.Email == "" {
		return apperrors.Validation("email is required")
	}
	if !strings.Contains(f.Email, "@") {
		return apperrors.Validation("email is not a valid address")
	}
	if f.Stake == "" {
		return apperrors.Validation("stake is required")
	}
	if f.Ward == "" {
		return apperrors.Validation("ward is required")
	}
	if f.Age < 1 || f.Age > 120 {
		return apperrors.Validation("age must be between 1 and 120")
	}

	switch f.Status {
	case "":
		f.Status = lifecycle.AppDraft
	case lifecycle.AppDraft, lifecycle.AppAwaiting:
		// submit statuses; decisions go through /{id}/status
	default:
		return apperrors.Validation("status must be draft or awaiting")
	}
	return nil
}

// model maps the validated form onto an Application owned by userID.
func (f *applicationForm) model(userID primitive.ObjectID) models.Application {
	return models.Application{
		UserID:   userID,
		FullName: f.FullName,
		Age:      f.Age,
		Email:    f.Email,
		Phone:    f.Phone,
		Stake:    f.Stake,
		Ward:     f.Ward,
		Gender:   f.Gender,
		MoreInfo: f.MoreInfo,
		Status:   f.Status,
	}
}

// statusRequest is the decision request body.
type statusRequest struct {
	Status string `json:"status"`
}

// memoForm is the create/update body for reviewer memos.
type memoForm struct {
	Content string `json:"content"`
}

func (f *memoForm) validate() error {
	f.Content = htmlsanitize.Sanitize(strings.TrimSpace(f.Content))
	if f.Content == "" {
		return apperrors.Validation("content is required")
	}
	return nil
}

// applicationResponse carries the record plus the derived link to the
// recommendation side, which is never persisted on applications.
type applicationResponse struct {
	models.Application
	LinkedRecommendationID *primitive.ObjectID `json:"linked_recommendation_id,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSONLimited(w, r, v, limits.MaxJSONBodySize)
}

// decodeNoteJSON applies the tighter memo body cap.
func decodeNoteJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSONLimited(w, r, v, limits.MaxNoteBodySize)
}

func decodeJSONLimited(w http.ResponseWriter, r *http.Request, v any, max int64) error {
	body := http.MaxBytesReader(w, r.Body, max)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperrors.Validation("request body is not valid JSON")
	}
	return nil
}
