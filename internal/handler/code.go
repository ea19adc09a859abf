// internal/handler/code.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/orgaccess/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type CodeHandler struct {
	codeService *service.CodeService
}

func NewCodeHandler(codeService *service.CodeService) *CodeHandler {
	return &CodeHandler{codeService: codeService}
}

func (h *CodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	var input service.CreateCodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	code, err := h.codeService.Create(r.Context(), input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Code create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, code)
}

func (h *CodeHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	page, perPage := pageParams(r)

	codes, total, err := h.codeService.List(r.Context(), orgID, page, perPage)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, PaginatedResponse{
		Items:      codes,
		Pagination: Pagination{Page: page, Total: total},
	})
}

// Validate evaluates a code without redeeming it. Business failures come
// back as {valid:false, reason}, not as HTTP errors.
func (h *CodeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Code is required")
		return
	}

	result, err := h.codeService.Validate(r.Context(), code)
	if err != nil {
		slog.ErrorContext(r.Context(), "Code validation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *CodeHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid code ID")
		return
	}

	out, err := h.codeService.Revoke(r.Context(), id, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Code revoke error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, out)
}

func (h *CodeHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid code ID")
		return
	}

	out, err := h.codeService.Reactivate(r.Context(), id, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Code reactivate error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, out)
}
