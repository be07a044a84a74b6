package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.status, ErrorResponse{Error: e.message})
}

// The client-visible error vocabulary. Credential and reset failures are
// deliberately generic so responses cannot confirm whether an account or
// token exists.
var (
	errAuthRequired       = apiError{http.StatusUnauthorized, "authentication required"}
	errInvalidToken       = apiError{http.StatusUnauthorized, "invalid or expired token"}
	errInvalidCredentials = apiError{http.StatusUnauthorized, "invalid email or password"}
	errInvalidSecretKey   = apiError{http.StatusUnauthorized, "invalid secret key"}
	errWrongPassword      = apiError{http.StatusUnauthorized, "current password is incorrect"}
	errAdminOnly          = apiError{http.StatusForbidden, "admin access required"}
	errUserOnly           = apiError{http.StatusForbidden, "user account required"}
	errNotOwner           = apiError{http.StatusForbidden, "you do not have access to this task"}
	errNotFound           = apiError{http.StatusNotFound, "not found"}
	errEmailTaken         = apiError{http.StatusBadRequest, "email already in use"}
	errInvalidReset       = apiError{http.StatusBadRequest, "invalid or expired reset token"}
	errServer             = apiError{http.StatusInternalServerError, "internal server error"}
)

func badRequest(w http.ResponseWriter, message string) {
	apiError{http.StatusBadRequest, message}.WriteError(w)
}

// writeServiceError maps service sentinels onto the HTTP taxonomy. Anything
// unmapped is a 500; its detail goes to the logs, never the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		errInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		errEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		errNotFound.WriteError(w)
	case errors.Is(err, service.ErrNotOwner):
		errNotOwner.WriteError(w)
	case errors.Is(err, service.ErrInvalidResetToken):
		errInvalidReset.WriteError(w)
	case errors.Is(err, service.ErrInvalidSecretKey):
		errInvalidSecretKey.WriteError(w)
	case errors.Is(err, service.ErrWrongPassword):
		errWrongPassword.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		errServer.WriteError(w)
	}
}
