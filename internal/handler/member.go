// internal/handler/member.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/orgaccess/internal/model"
	"github.com/dangerclosesec/orgaccess/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type MemberHandler struct {
	membershipService *service.MembershipService
}

func NewMemberHandler(membershipService *service.MembershipService) *MemberHandler {
	return &MemberHandler{membershipService: membershipService}
}

type AddMemberRequest struct {
	UserID uuid.UUID        `json:"user_id"`
	Role   model.MemberRole `json:"role"`
}

func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Role == "" {
		req.Role = model.RoleMember
	}

	member, err := h.membershipService.AddMember(r.Context(), orgID, req.UserID, req.Role, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Member add error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	page, perPage := pageParams(r)
	activeOnly := r.URL.Query().Get("active") != "false"

	members, total, err := h.membershipService.ListMembers(r.Context(), orgID, activeOnly, page, perPage)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, PaginatedResponse{
		Items:      members,
		Pagination: Pagination{Page: page, Total: total},
	})
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input service.UpdateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	member, err := h.membershipService.UpdateMember(r.Context(), orgID, userID, input, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Member update error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	orgID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization ID")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.membershipService.RemoveMember(r.Context(), orgID, userID, actor); err != nil {
		slog.ErrorContext(r.Context(), "Member remove error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}

type JoinRequest struct {
	Code string `json:"code"`
}

// Join redeems a registration code for the authenticated user.
func (h *MemberHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Missing actor identity")
		return
	}

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "Code is required")
		return
	}

	out, err := h.membershipService.JoinWithCode(r.Context(), req.Code, actor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Join error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, out)
}
