// internal/handler/license.go
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

type LicenseHandler struct {
	licenseService *service.LicenseService
}

func NewLicenseHandler(licenseService *service.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

func (h *LicenseHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	var input service.CreatePoolInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	pool, err := h.licenseService.CreatePool(r.Context(), input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "License pool create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, pool)
}

type AllocateSeatRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

func (h *LicenseHandler) AllocateSeat(w http.ResponseWriter, r *http.Request) {
	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid license pool ID")
		return
	}

	var req AllocateSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	lic, err := h.licenseService.AllocateSeat(r.Context(), poolID, req.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Seat allocation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, lic)
}

func (h *LicenseHandler) DeallocateSeat(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	licID, err := uuid.Parse(chi.URLParam(r, "licenseID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user license ID")
		return
	}

	if err := h.licenseService.DeallocateSeat(r.Context(), licID, actor); err != nil {
		slog.ErrorContext(r.Context(), "Seat deallocation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Seat deallocated"})
}

func (h *LicenseHandler) UpdatePool(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	poolID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid license pool ID")
		return
	}

	var input service.UpdatePoolInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	pool, err := h.licenseService.UpdateLicense(r.Context(), poolID, input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "License pool update error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pool)
}
