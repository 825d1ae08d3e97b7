package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hydropoints/internal/service"
	"hydropoints/internal/trust"
)

// AdminHandler handles the batch sweep and threshold inspection endpoints
type AdminHandler struct {
	sweepSvc *service.SweepService
	trustSvc *service.TrustService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sweepSvc *service.SweepService, trustSvc *service.TrustService) *AdminHandler {
	return &AdminHandler{
		sweepSvc: sweepSvc,
		trustSvc: trustSvc,
	}
}

// TriggerSweep handles POST /v1/admin/sweep
func (h *AdminHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	// The sweep outlives the request; detach it from the request context
	go func() {
		if _, err := h.sweepSvc.RecomputeAll(context.Background()); err != nil {
			log.Printf("sweep failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sweeping"})
}

// GetSweepRun handles GET /v1/admin/sweep/{runId}
func (h *AdminHandler) GetSweepRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	run, err := h.sweepSvc.GetRun(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "sweep run not found")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// GetThresholds handles GET /v1/admin/thresholds
func (h *AdminHandler) GetThresholds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":    trust.ThresholdsVersion,
		"thresholds": h.trustSvc.Engine().Thresholds(),
	})
}
