// internal/app/system/apperrors/apperrors.go

// Package apperrors defines the error kinds the core surfaces to the
// transport layer. Every rejection a handler returns is one of these;
// the errors feature maps each kind to a fixed HTTP status and
// message class.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies one of the fixed error classes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAuthorization
	KindInvalidTransition
	KindImmutableRecord
	KindDuplicateRecommendation
	KindValidation
)

// String returns the wire name of the kind, used in JSON error bodies.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "forbidden"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindImmutableRecord:
		return "immutable_record"
	case KindDuplicateRecommendation:
		return "duplicate_recommendation"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is the single error type the core returns for domain
// rejections. Resource names the record type involved ("application",
// "recommendation", "memo", "comment", "user") when known.
type Error struct {
	Kind     Kind
	Resource string
	Msg      string
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return e.Resource + ": " + e.Msg
	}
	return e.Msg
}

// NotFound reports that the identified resource does not exist. It is
// checked before any authorization decision.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Msg: "not found"}
}

// Authorization reports a role, ownership, or leader-status check
// failure.
func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

// InvalidTransition reports a status change not in the allowed graph
// for a non-terminal record.
func InvalidTransition(resource, from, to string) *Error {
	return &Error{
		Kind:     KindInvalidTransition,
		Resource: resource,
		Msg:      fmt.Sprintf("cannot transition from %q to %q", from, to),
	}
}

// ImmutableRecord reports a mutation, deletion, or transition attempt
// on a record already in a terminal status.
func ImmutableRecord(resource, status string) *Error {
	return &Error{
		Kind:     KindImmutableRecord,
		Resource: resource,
		Msg:      fmt.Sprintf("record is %s and can no longer be changed", status),
	}
}

// DuplicateRecommendation reports that the candidate is already
// recommended, either by the same leader or through an existing link.
func DuplicateRecommendation() *Error {
	return &Error{
		Kind:     KindDuplicateRecommendation,
		Resource: "recommendation",
		Msg:      "this candidate has already been recommended",
	}
}

// Validation reports malformed input (missing required field, age out
// of range, bad email shape).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// KindOf extracts the Kind from err, or KindUnknown if err is not an
// apperrors.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the status code the transport returns.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindInvalidTransition, KindImmutableRecord, KindDuplicateRecommendation:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
