// internal/handler/organization.go
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

type OrganizationHandler struct {
	orgService     *service.OrganizationService
	licenseService *service.LicenseService
}

func NewOrganizationHandler(orgService *service.OrganizationService, licenseService *service.LicenseService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:     orgService,
		licenseService: licenseService,
	}
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Create(r.Context(), input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Organization create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)

	orgs, total, err := h.orgService.List(r.Context(), page, perPage)
	if err != nil {
		slog.ErrorContext(r.Context(), "Organization list error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, PaginatedResponse{
		Items:      orgs,
		Pagination: Pagination{Page: page, Total: total},
	})
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Update(r.Context(), id, input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Organization update error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	force := r.URL.Query().Get("force") == "true"

	if err := h.orgService.Delete(r.Context(), id, force, actor); err != nil {
		slog.ErrorContext(r.Context(), "Organization delete error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Organization deleted"})
}

// AvailableSeats reports per-pool seat availability for the organization.
func (h *OrganizationHandler) AvailableSeats(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	seats, err := h.licenseService.GetAvailableSeats(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, seats)
}
