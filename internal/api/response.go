package api

import (
	"encoding/json"
	"net/http"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes a successful JSON response. spec.md §6 documents flat
// response bodies for every endpoint, so unlike the teacher's wrapped
// {"data": ...} envelope, this writes data directly.
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, data)
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	domainErr, ok := err.(*domain.DomainError)
	if !ok {
		return http.StatusInternalServerError
	}

	// Mapping per spec.md §7: BadInput is the caller's fault (400);
	// StoreError aborts the call as a server-side failure (500);
	// ProviderError reaching the HTTP layer means an embedding call
	// failed — an ingest's chunk embedding (aborted before mutation) or
	// an ask's question embedding in the retriever (502, the upstream
	// dependency's fault). LM failures during an ask never reach here:
	// the responder downgrades them to a stub answer instead of an error.
	switch domainErr.Code {
	case domain.ErrCodeBadInput:
		return http.StatusBadRequest
	case domain.ErrCodeStoreError:
		return http.StatusInternalServerError
	case domain.ErrCodeProviderError:
		return http.StatusBadGateway
	case domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)
	Error(w, status, err.Error())
}
