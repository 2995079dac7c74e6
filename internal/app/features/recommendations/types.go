// internal/app/features/recommendations/types.go
package recommendations

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

// recommendationForm is the create/update request body. Email is
// optional; leaders often do not have their candidate's address, in
// which case matching falls back to the candidate's name.
type recommendationForm struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Stake    string `json:"stake"`
	Ward     string `json:"ward"`
	Gender   string `json:"gender"`
	MoreInfo string `json:"more_info"`
	Status   string `json:"status"` // draft | submitted; empty means draft
}

func (f *recommendationForm) validate() error {
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
	if f.Email != "" && !strings.Contains(f.Email, "@") {
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
		f.Status = lifecycle.RecDraft
	case lifecycle.RecDraft, lifecycle.RecSubmitted:
		// authoring statuses; decisions go through /{id}/status
	default:
		return apperrors.Validation("status must be draft or submitted")
	}
	return nil
}

// model maps the validated form onto a Recommendation authored by
// leaderID.
func (f *recommendationForm) model(leaderID primitive.ObjectID) models.Recommendation {
	return models.Recommendation{
		LeaderID: leaderID,
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

// statusRequest is the decision (or cancel-submission) request body.
type statusRequest struct {
	Status string `json:"status"`
}

// commentForm is the create/update body for reviewer comments.
type commentForm struct {
	Content string `json:"content"`
}

func (f *commentForm) validate() error {
	f.Content = htmlsanitize.Sanitize(strings.TrimSpace(f.Content))
	if f.Content == "" {
		return apperrors.Validation("content is required")
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSONLimited(w, r, v, limits.MaxJSONBodySize)
}

// decodeNoteJSON applies the tighter comment body cap.
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
