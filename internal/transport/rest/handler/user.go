package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"hydropoints/internal/model"
	"hydropoints/internal/service"
	"hydropoints/internal/transport/rest/middleware"
	"hydropoints/internal/trust"
)

// UserHandler handles registration, profile, log and scan endpoints
type UserHandler struct {
	userSvc *service.UserService
	logSvc  *service.LogService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService, logSvc *service.LogService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		logSvc:  logSvc,
	}
}

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Nickname      string `json:"nickname"`
	HouseholdSize int    `json:"householdSize"`
}

// RegisterResponse is returned after registration
type RegisterResponse struct {
	Profile *model.UserProfile `json:"profile"`
	Token   string             `json:"token"`
}

// AddEntryRequest is the request body for logging an intake entry
type AddEntryRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// AddScanRequest is the request body for recording a barcode scan
type AddScanRequest struct {
	ScannedAt      string  `json:"scannedAt,omitempty"` // RFC3339, defaults to now
	DeclaredAmount float64 `json:"declaredAmount"`
	Label          string  `json:"label"`
	Barcode        string  `json:"barcode,omitempty"`
}

// Register handles POST /v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname is required")
		return
	}

	profile, token, err := h.userSvc.Register(r.Context(), req.Nickname, req.HouseholdSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{Profile: profile, Token: token})
}

// UpdateHousehold handles PUT /v1/users/{id}/household
func (h *UserHandler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	var req struct {
		Size int `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Size < 1 {
		writeError(w, http.StatusBadRequest, "household size must be positive")
		return
	}

	profile, err := h.userSvc.UpdateHousehold(r.Context(), userID, req.Size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// AddEntry handles POST /v1/users/{id}/logs
func (h *UserHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	entry := &model.DailyLogEntry{
		UserID: userID,
		Date:   date,
		Amount: req.Amount,
		Source: model.SourceManual,
	}
	if err := h.logSvc.AddEntry(r.Context(), entry); err != nil {
		if errors.Is(err, trust.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// GetEntries handles GET /v1/users/{id}/logs
func (h *UserHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	entries, err := h.logSvc.GetEntries(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// AddScan handles POST /v1/users/{id}/scans
func (h *UserHandler) AddScan(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !authorizedFor(r, userID) {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return
	}

	var req AddScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scannedAt := time.Now()
	if req.ScannedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScannedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "scannedAt must be RFC3339")
			return
		}
		scannedAt = parsed
	}

	scan := &model.ExternalScan{
		UserID:         userID,
		ScannedAt:      scannedAt,
		DeclaredAmount: req.DeclaredAmount,
		Label:          req.Label,
		Barcode:        req.Barcode,
	}
	if err := h.logSvc.AddScan(r.Context(), scan); err != nil {
		if errors.Is(err, trust.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, scan)
}

// authorizedFor checks the token's user matches the path user
func authorizedFor(r *http.Request, userID string) bool {
	return middleware.GetUserID(r.Context()) == userID
}
