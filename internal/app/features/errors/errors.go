// internal/app/features/errors/errors.go

// Package errors writes the JSON responses every feature handler
// shares: a success encoder and the error envelope that maps domain
// rejections onto HTTP statuses.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/candidacyhub/internal/app/system/apperrors"
	"go.uber.org/zap"
)

// envelope is the body for every error response:
//
//	{ "error": { "kind": "forbidden", "message": "…" } }
type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status. Encoding failures are
// logged by net/http; by then the status line is already gone out, so
// there is nothing more useful to do.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its HTTP status and writes the error
// envelope. Domain rejections pass their message through; anything
// unrecognized becomes a 500 with a generic message and gets logged.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	kind := apperrors.KindOf(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("internal error", zap.Error(err))
		}
		msg = "internal error"
	}

	WriteJSON(w, status, envelope{Error: body{
		Kind:    kind.String(),
		Message: msg,
	}})
}
