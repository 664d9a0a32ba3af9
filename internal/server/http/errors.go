package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/policy"
	"github.com/vmtecnologia/usersvc/internal/server/services"
)

var errMalformedBody = errors.New("malformed request body")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

var statusTable = []struct {
	err    error
	status int
}{
	{policy.ErrPasswordMissing, http.StatusBadRequest},
	{policy.ErrPasswordTooWeak, http.StatusBadRequest},
	{policy.ErrUsernameMissing, http.StatusBadRequest},
	{policy.ErrEmailInvalid, http.StatusBadRequest},
	{auth.ErrPasswordTooLong, http.StatusBadRequest},
	{services.ErrCredentialsIncomplete, http.StatusBadRequest},
	{services.ErrInvalidID, http.StatusBadRequest},
	{services.ErrInvalidPage, http.StatusBadRequest},
	{errMalformedBody, http.StatusBadRequest},
	{services.ErrIdentityNotFound, http.StatusUnauthorized},
	{services.ErrIncorrectCredential, http.StatusUnauthorized},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrEmailAlreadyExists, http.StatusConflict},
	{services.ErrUsernameAlreadyExists, http.StatusConflict},
}

// statusFor maps a service error to its HTTP status; unknown errors are 500.
func statusFor(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
