package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
	"github.com/seaward/blobtree/pkg/pathkit"
	"github.com/seaward/blobtree/pkg/policy"
)

// ErrorResponse is the JSON error envelope returned by every failing
// route.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine code and human message.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: requestIDFrom(r.Context()),
	}})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, locator.ErrInvalidLocator), errors.Is(err, pathkit.ErrNoBase):
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATOR", err.Error())
	case errors.Is(err, policy.ErrExtensionNotAllowed):
		writeError(w, r, http.StatusUnprocessableEntity, "EXTENSION_NOT_ALLOWED", err.Error())
	case blobstore.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
	case blobstore.IsAccessDenied(err):
		writeError(w, r, http.StatusForbidden, "ACCESS_DENIED", err.Error())
	case blobstore.IsUnavailable(err):
		writeError(w, r, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
