package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.NotFound("application"), http.StatusNotFound},
		{apperrors.Authorization("no"), http.StatusForbidden},
		{apperrors.InvalidTransition("application", "draft", "approved"), http.StatusConflict},
		{apperrors.ImmutableRecord("recommendation", "approved"), http.StatusConflict},
		{apperrors.DuplicateRecommendation(), http.StatusConflict},
		{apperrors.Validation("bad"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := apperrors.HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", apperrors.NotFound("memo"))
	if got := apperrors.KindOf(wrapped); got != apperrors.KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", got)
	}
	if got := apperrors.KindOf(errors.New("plain")); got != apperrors.KindUnknown {
		t.Errorf("KindOf(plain) = %v, want KindUnknown", got)
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[apperrors.Kind]string{
		apperrors.KindNotFound:                "not_found",
		apperrors.KindAuthorization:           "forbidden",
		apperrors.KindInvalidTransition:       "invalid_transition",
		apperrors.KindImmutableRecord:         "immutable_record",
		apperrors.KindDuplicateRecommendation: "duplicate_recommendation",
		apperrors.KindValidation:              "validation",
		apperrors.KindUnknown:                 "internal",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestError_MessageIncludesResource(t *testing.T) {
	err := apperrors.NotFound("application")
	if err.Error() != "application: not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
