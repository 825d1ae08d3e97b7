package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"hydropoints/internal/model"
	"hydropoints/internal/service"
	"hydropoints/internal/trust"
)

// TrustHandler handles trust score endpoints
type TrustHandler struct {
	trustSvc *service.TrustService
}

// NewTrustHandler creates a new trust handler
func NewTrustHandler(trustSvc *service.TrustService) *TrustHandler {
	return &TrustHandler{trustSvc: trustSvc}
}

// GovernanceResponse pairs the score with its reward policy
type GovernanceResponse struct {
	Score      *model.ScoreResult `json:"score"`
	Governance model.RewardPolicy `json:"governance"`
}

// GetScore handles GET /v1/users/{id}/trust
func (h *TrustHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	result, err := h.trustSvc.GetScore(r.Context(), userID)
	if err != nil {
		if errors.Is(err, trust.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Recompute handles POST /v1/users/{id}/trust/recompute
func (h *TrustHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	result, err := h.trustSvc.Recompute(r.Context(), userID)
	if err != nil {
		if errors.Is(err, trust.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Governance handles GET /v1/users/{id}/trust/governance
func (h *TrustHandler) Governance(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	result, policy, err := h.trustSvc.Governance(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, GovernanceResponse{Score: result, Governance: policy})
}
