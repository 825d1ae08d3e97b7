package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"hydropoints/internal/app"
)

// UserOverview returns the raw stored state for one user: profile, persisted
// score and window counts. It reads the repositories directly and never
// triggers a recompute, so admins can inspect a user without touching their
// score.
func UserOverview(deps *app.App, windowDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]
		ctx := r.Context()

		profile, err := deps.ProfileRepo.GetByID(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		score, err := deps.ScoreRepo.GetByUserID(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logs, err := deps.LogRepo.GetWindow(ctx, userID, windowDays)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scans, err := deps.ScanRepo.GetWindow(ctx, userID, windowDays)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"profile":   profile,
			"score":     score,
			"logCount":  len(logs),
			"scanCount": len(scans),
		})
	}
}
