package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/orgaccess/internal/domain"
	"github.com/dangerclosesec/orgaccess/internal/middleware"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Total int64 `json:"total"`
}

// PaginatedResponse wraps list results as {items, pagination:{page, total}}.
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// respondDomainError maps the error taxonomy onto HTTP statuses: missing
// references are 404, identifier collisions 409, business-rule violations
// 400, and anything else is an infrastructure failure.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrLicenseNotFound),
		errors.Is(err, domain.ErrLicensePoolNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSlugAlreadyExists),
		errors.Is(err, domain.ErrDomainAlreadyExists),
		errors.Is(err, domain.ErrCodeAlreadyExists),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrLicenseAlreadyHeld):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrOrganizationInactive),
		errors.Is(err, domain.ErrOrganizationHasMembers),
		errors.Is(err, domain.ErrNotActiveMember),
		errors.Is(err, domain.ErrMemberLimitReached),
		errors.Is(err, domain.ErrLastOwner),
		errors.Is(err, domain.ErrCodeRevoked),
		errors.Is(err, domain.ErrCodeAlreadyRevoked),
		errors.Is(err, domain.ErrCodeNotRevoked),
		errors.Is(err, domain.ErrCodeNotYetValid),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrCodeMaxUsesReached),
		errors.Is(err, domain.ErrLicensePoolInactive),
		errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrNotPoolLicense),
		errors.Is(err, domain.ErrSeatsBelowUsage):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// actorID extracts the acting user's id placed in the context by the auth
// middleware.
func actorID(r *http.Request) (uuid.UUID, bool) {
	raw, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads ?page= and ?per_page= with sane defaults.
func pageParams(r *http.Request) (page, perPage int) {
	page = 1
	perPage = 25
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 && v <= 100 {
		perPage = v
	}
	return page, perPage
}
