// internal/app/system/lifecycle/lifecycle.go

// Package lifecycle implements the two status machines for
// applications and recommendations.
//
// Application: draft → awaiting → {approved, rejected}.
// Recommendation: draft → submitted → {approved, rejected}, plus
// submitted → draft (cancel submission).
//
// Both machines allow a same-state re-save while not decided, and
// both become immutable once a terminal status is reached: any
// further transition, field update, or delete fails with an
// immutable-record error regardless of role.
package lifecycle

import (
	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
)

// Application statuses.
const (
	AppDraft    = "draft"
	AppAwaiting = "awaiting"
	AppApproved = "approved"
	AppRejected = "rejected"
)

// Recommendation statuses.
const (
	RecDraft     = "draft"
	RecSubmitted = "submitted"
	RecApproved  = "approved"
	RecRejected  = "rejected"
)

// IsTerminal reports whether status is approved or rejected. The two
// vocabularies share their terminal values.
func IsTerminal(status string) bool {
	return status == AppApproved || status == AppRejected
}

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case AppDraft, AppAwaiting, AppApproved, AppRejected:
		return true
	}
	return false
}

// ValidRecommendationStatus reports whether s is a known recommendation status.
func ValidRecommendationStatus(s string) bool {
	switch s {
	case RecDraft, RecSubmitted, RecApproved, RecRejected:
		return true
	}
	return false
}

// appTransitions holds the allowed application transitions, keyed by
// current status. Same-state entries are no-op re-saves, listed so a
// re-submit while awaiting does not error.
var appTransitions = map[string][]string{
	AppDraft:    {AppDraft, AppAwaiting},
	AppAwaiting: {AppAwaiting, AppApproved, AppRejected},
}

// recTransitions holds the allowed recommendation transitions.
// submitted → draft is the explicit cancel-submission path.
var recTransitions = map[string][]string{
	RecDraft:     {RecDraft, RecSubmitted},
	RecSubmitted: {RecSubmitted, RecDraft, RecApproved, RecRejected},
}

func allowed(table map[string][]string, from, to string) bool {
	for _, t := range table[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CheckApplicationTransition validates a requested application status
// change. A terminal current status fails with ImmutableRecord; an
// illegal non-terminal change fails with InvalidTransition; nil means
// the transition (possibly a same-state no-op) may proceed.
func CheckApplicationTransition(from, to string) error {
	if IsTerminal(from) {
		return apperrors.ImmutableRecord("application", from)
	}
	if !ValidApplicationStatus(to) {
		return apperrors.Validation("unknown application status " + to)
	}
	if !allowed(appTransitions, from, to) {
		return apperrors.InvalidTransition("application", from, to)
	}
	return nil
}

// CheckRecommendationTransition validates a requested recommendation
// status change, with the same error contract as applications.
func CheckRecommendationTransition(from, to string) error {
	if IsTerminal(from) {
		return apperrors.ImmutableRecord("recommendation", from)
	}
	if !ValidRecommendationStatus(to) {
		return apperrors.Validation("unknown recommendation status " + to)
	}
	if !allowed(recTransitions, from, to) {
		return apperrors.InvalidTransition("recommendation", from, to)
	}
	return nil
}

// CheckMutable rejects field updates and deletes on decided records.
// resource is "application" or "recommendation" for the error text.
func CheckMutable(resource, status string) error {
	if IsTerminal(status) {
		return apperrors.ImmutableRecord(resource, status)
	}
	return nil
}
