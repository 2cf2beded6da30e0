package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service       *appraisal.Service
	Secret        string
	TokenTTL      time.Duration
	AdminUsername string
	AdminHash     string
}

func NewHandler(service *appraisal.Service, secret string, ttl time.Duration, adminUsername, adminHash string) *Handler {
	return &Handler{
		Service:       service,
		Secret:        secret,
		TokenTTL:      ttl,
		AdminUsername: adminUsername,
		AdminHash:     adminHash,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// HandleLogin maps a credential pair to either the administrator or
// the employee whose display name matches the username exactly. There
// is no per-employee password in this model.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("username", payload.Username, "username is required")
	validator.Required("password", payload.Password, "password is required")
	if validator.Reject(w, requestID) {
		return
	}

	if payload.Username == h.AdminUsername {
		if err := auth.CheckPassword(h.AdminHash, payload.Password); err == nil {
			h.issueToken(w, requestID, auth.Identity{Role: appraisal.RoleAdmin, Name: h.AdminUsername})
			return
		}
		api.Fail(w, http.StatusUnauthorized, "auth_failed", "invalid credentials", requestID)
		return
	}

	employees, err := h.Service.Snapshot(r.Context())
	if err != nil {
		slog.Warn("login snapshot load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return
	}
	emp, ok := appraisal.FindByName(employees, payload.Username)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "auth_failed", "invalid credentials", requestID)
		return
	}

	h.issueToken(w, requestID, auth.Identity{Role: appraisal.RoleEmployee, Name: emp.Name, EmployeeID: emp.ID})
}

func (h *Handler) issueToken(w http.ResponseWriter, requestID string, identity auth.Identity) {
	token, err := auth.GenerateToken(h.Secret, identity, h.TokenTTL)
	if err != nil {
		slog.Warn("token generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", requestID)
		return
	}
	api.Success(w, map[string]any{"token": token, "identity": identity}, requestID)
}
