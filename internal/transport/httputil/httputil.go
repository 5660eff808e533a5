package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "aegis/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies; every endpoint here carries small JSON.
const maxBodyBytes = 1 << 20

// ErrorResponse is the uniform rejection envelope.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes a bounded JSON request body into v.
func DecodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid request body")
	}
	return nil
}

// WriteError maps a domain error onto the rejection envelope.
//
// Every token rejection is a uniform 401: the response never reveals whether
// the token was malformed, expired, revoked, or stale, so a probing client
// learns nothing. IP blocks are 403 with a stable code and no duration. An
// unreachable store is 503; the caller may retry, but is never let through.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Message: "Something went wrong.",
		})
		return
	}

	switch domainErr.Code {
	case dErrors.CodeMalformedToken,
		dErrors.CodeExpiredToken,
		dErrors.CodeTokenRevoked,
		dErrors.CodeStaleSecurityVersion,
		dErrors.CodeExpiredRefreshToken,
		dErrors.CodeRefreshReuseDetected,
		dErrors.CodeUnauthorized:
		WriteJSON(w, http.StatusUnauthorized, &ErrorResponse{
			Message: "Please sign in again.",
		})
	case dErrors.CodeAccountLocked:
		WriteJSON(w, http.StatusForbidden, &ErrorResponse{
			Message: "This account is locked.",
			Code:    "ACCOUNT_LOCKED",
		})
	case dErrors.CodeIPBlocked:
		WriteBlocked(w)
	case dErrors.CodeStoreUnavailable, dErrors.CodeTimeout:
		WriteJSON(w, http.StatusServiceUnavailable, &ErrorResponse{
			Message: "Service temporarily unavailable. Please try again later.",
		})
	case dErrors.CodeValidation, dErrors.CodeInvalidInput:
		WriteJSON(w, http.StatusBadRequest, &ErrorResponse{
			Message: domainErr.Message,
			Errors:  []string{domainErr.Message},
		})
	case dErrors.CodeNotFound:
		WriteJSON(w, http.StatusNotFound, &ErrorResponse{
			Message: "Not found.",
		})
	case dErrors.CodeConflict:
		WriteJSON(w, http.StatusConflict, &ErrorResponse{
			Message: "Conflict.",
		})
	case dErrors.CodeForbidden:
		WriteJSON(w, http.StatusForbidden, &ErrorResponse{
			Message: "Forbidden.",
		})
	default:
		WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
			Message: "Something went wrong.",
		})
	}
}

// WriteBlocked writes the IP-block rejection. The block's kind and remaining
// duration are deliberately not disclosed.
func WriteBlocked(w http.ResponseWriter) {
	WriteJSON(w, http.StatusForbidden, &ErrorResponse{
		Message: "Too many failed attempts from this address.",
		Code:    "IP_BLOCKED",
	})
}
