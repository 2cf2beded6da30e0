package reportshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/reports"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service     *appraisal.Service
	DefaultYear int
}

func NewHandler(service *appraisal.Service, defaultYear int) *Handler {
	return &Handler{Service: service, DefaultYear: defaultYear}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.handleSummary)
	r.Get("/reports/employees/{employeeID}/appraisal.pdf", h.handleAppraisalPDF)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	if identity.Role != appraisal.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "permission_denied", "operation requires administrator role", requestID)
		return
	}

	employees, err := h.Service.Snapshot(r.Context())
	if err != nil {
		slog.Warn("summary load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return
	}
	api.Success(w, reports.BuildSummary(employees), requestID)
}

func (h *Handler) handleAppraisalPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if identity.Role != appraisal.RoleAdmin && identity.EmployeeID != employeeID {
		api.Fail(w, http.StatusForbidden, "permission_denied", "employees may only view their own record", requestID)
		return
	}

	employees, err := h.Service.Snapshot(r.Context())
	if err != nil {
		slog.Warn("appraisal pdf load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return
	}
	emp, found := appraisal.FindByID(employees, employeeID)
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}

	year := h.DefaultYear
	if raw := r.URL.Query().Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Report_%d.pdf", year))
	if err := reports.WriteAppraisalPDF(w, emp, year); err != nil {
		slog.Warn("appraisal pdf render failed", "err", err)
	}
}
