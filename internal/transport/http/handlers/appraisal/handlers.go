package appraisalhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/tabular"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service     *appraisal.Service
	DefaultYear int
}

func NewHandler(service *appraisal.Service, defaultYear int) *Handler {
	return &Handler{Service: service, DefaultYear: defaultYear}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleListEmployees)
	r.Post("/employees", h.handleAddEmployee)
	r.Get("/employees/{employeeID}", h.handleGetEmployee)
	r.Post("/employees/{employeeID}/goals", h.handleAddGoal)
	r.Delete("/employees/{employeeID}/goals/{goalID}", h.handleDeleteGoal)
	r.Post("/employees/{employeeID}/goals/{goalID}/tasks", h.handleCreateTask)
	r.Put("/employees/{employeeID}/goals/{goalID}/tasks/{taskID}", h.handleEditTask)
	r.Post("/employees/{employeeID}/goals/{goalID}/evaluate", h.handleEvaluateGoal)
	r.Post("/employees/{employeeID}/goals/{goalID}/tasks/{taskID}/evaluate", h.handleEvaluateTask)
	r.Post("/employees/{employeeID}/approve-all", h.handleApproveAll)
	r.Post("/records/import", h.handleImportReplace)
	r.Get("/records/export", h.handleExportRows)
	r.Get("/records/export.csv", h.handleExportCSV)
}

// GoalView decorates a goal with its derived phase and display rating.
type GoalView struct {
	appraisal.Goal
	EffectiveRating int        `json:"effectiveRating"`
	Phase           string     `json:"phase"`
	TaskViews       []TaskView `json:"taskViews"`
}

type TaskView struct {
	appraisal.Task
	EffectiveRating int    `json:"effectiveRating"`
	Phase           string `json:"phase"`
}

type EmployeeView struct {
	appraisal.Employee
	GoalViews []GoalView `json:"goalViews"`
}

func buildEmployeeView(emp appraisal.Employee, year int) EmployeeView {
	view := EmployeeView{Employee: emp, GoalViews: []GoalView{}}
	for _, goal := range emp.Goals {
		if year != 0 && goal.Year != year {
			continue
		}
		goalView := GoalView{
			Goal:            goal,
			EffectiveRating: appraisal.EffectiveGoalRating(goal),
			Phase:           goal.Phase(),
			TaskViews:       make([]TaskView, 0, len(goal.Tasks)),
		}
		if emp.IsFinalApproved {
			goalView.Phase = appraisal.PhaseFinalLocked
		}
		for _, task := range goal.Tasks {
			taskView := TaskView{
				Task:            task,
				EffectiveRating: appraisal.EffectiveTaskRating(task),
				Phase:           task.Phase(),
			}
			if emp.IsFinalApproved {
				taskView.Phase = appraisal.PhaseFinalLocked
			}
			goalView.TaskViews = append(goalView.TaskViews, taskView)
		}
		view.GoalViews = append(view.GoalViews, goalView)
	}
	return view
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	employees, err := h.Service.Snapshot(r.Context())
	if err != nil {
		slog.Warn("employee list load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return
	}

	if identity.Role != appraisal.RoleAdmin {
		own := make([]appraisal.Employee, 0, 1)
		if emp, found := appraisal.FindByID(employees, identity.EmployeeID); found {
			own = append(own, emp)
		}
		employees = own
	}

	year := h.queryYear(r, 0)
	views := make([]EmployeeView, 0, len(employees))
	for _, emp := range employees {
		views = append(views, buildEmployeeView(emp, year))
	}
	api.Success(w, views, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	requestID := middleware.GetRequestID(r.Context())
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
		slog.Warn("employee load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return
	}
	emp, found := appraisal.FindByID(employees, employeeID)
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	api.Success(w, buildEmployeeView(emp, h.queryYear(r, 0)), requestID)
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name     string `json:"name"`
		Position string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Required("name", payload.Name, "employee name is required")
	validator.Required("position", payload.Position, "position title is required")
	if validator.Reject(w, requestID) {
		return
	}

	if err := h.Service.AddEmployee(r.Context(), session, payload.Name, payload.Position); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Created(w, map[string]string{"name": payload.Name}, requestID)
}

func (h *Handler) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}

	var payload struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Required("title", payload.Title, "goal title is required")
	if validator.Reject(w, requestID) {
		return
	}
	if payload.Year != 0 {
		session.Year = payload.Year
	}

	if err := h.Service.AddGoal(r.Context(), session, payload.Title); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Created(w, map[string]string{"title": payload.Title}, requestID)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.DeleteGoal(r.Context(), session, goalID, confirmed); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"deleted": goalID}, requestID)
}

type taskPayload struct {
	Name          string `json:"name"`
	EstimatedDays int    `json:"estimatedDays"`
	ExpectedMonth string `json:"expectedMonth"`
}

func (h *Handler) decodeTaskPayload(w http.ResponseWriter, r *http.Request, requestID string) (appraisal.TaskInput, bool) {
	var payload taskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return appraisal.TaskInput{}, false
	}
	validator := shared.NewValidator()
	validator.Required("name", payload.Name, "task name is required")
	if payload.EstimatedDays < 0 {
		validator.Add("estimatedDays", "estimated days must not be negative")
	}
	if validator.Reject(w, requestID) {
		return appraisal.TaskInput{}, false
	}
	if strings.TrimSpace(payload.ExpectedMonth) == "" {
		payload.ExpectedMonth = appraisal.Months[0]
	}
	return appraisal.TaskInput{
		Name:          payload.Name,
		EstimatedDays: payload.EstimatedDays,
		ExpectedMonth: payload.ExpectedMonth,
	}, true
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeTaskPayload(w, r, requestID)
	if !ok {
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.UpsertTask(r.Context(), session, goalID, "", input); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Created(w, map[string]string{"name": input.Name}, requestID)
}

func (h *Handler) handleEditTask(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeTaskPayload(w, r, requestID)
	if !ok {
		return
	}

	goalID := chi.URLParam(r, "goalID")
	taskID := chi.URLParam(r, "taskID")
	if err := h.Service.UpsertTask(r.Context(), session, goalID, taskID, input); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"updated": taskID}, requestID)
}

type evaluatePayload struct {
	Outcome string `json:"outcome"`
	Rating  *int   `json:"rating"`
	Approve bool   `json:"approve"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request, taskID string) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}

	var payload evaluatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	validator := shared.NewValidator()
	validator.Required("outcome", payload.Outcome, "execution outcome is required")
	if payload.Rating != nil {
		validator.IntRange("rating", *payload.Rating, 0, 100, "rating must be between 0 and 100")
	}
	if validator.Reject(w, requestID) {
		return
	}

	input := appraisal.EvaluateInput{
		GoalID:  chi.URLParam(r, "goalID"),
		TaskID:  taskID,
		Outcome: payload.Outcome,
		Rating:  payload.Rating,
		Approve: payload.Approve,
	}
	if err := h.Service.Evaluate(r.Context(), session, input); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"evaluated": input.GoalID}, requestID)
}

func (h *Handler) handleEvaluateGoal(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, "")
}

func (h *Handler) handleEvaluateTask(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, chi.URLParam(r, "taskID"))
}

func (h *Handler) handleApproveAll(w http.ResponseWriter, r *http.Request) {
	session, requestID, ok := h.begin(w, r)
	if !ok {
		return
	}

	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	if err := h.Service.ApproveAll(r.Context(), session, payload.Confirm); err != nil {
		writeDomainError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"approved": session.EmployeeID}, requestID)
}

// handleImportReplace loads tabular rows and REPLACES the whole record
// set with the reconciled result. Employees absent from the upload do
// not survive; this mirrors the spreadsheet being the source of truth
// for a bulk load.
func (h *Handler) handleImportReplace(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var rows []tabular.Row
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		decoded, err := tabular.DecodeCSV(r.Body)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_csv", "failed to parse csv rows", requestID)
			return
		}
		rows = decoded
	} else {
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
			return
		}
	}

	session := appraisal.Session{
		Role:    identity.Role,
		ActorID: identity.EmployeeID,
		Year:    h.queryYear(r, h.DefaultYear),
	}
	if err := h.Service.ImportReplace(r.Context(), session, rows); err != nil {
		writeDomainError(w, err, requestID)
		return
	}

	employees, err := h.Service.Snapshot(r.Context())
	if err != nil {
		slog.Warn("post-import snapshot load failed", "err", err)
		api.Success(w, map[string]any{"rows": len(rows)}, requestID)
		return
	}
	api.Success(w, map[string]any{"rows": len(rows), "employees": len(employees)}, requestID)
}

func (h *Handler) handleExportRows(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.exportRows(w, r)
	if !ok {
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.exportRows(w, r)
	if !ok {
		return
	}

	year := h.queryYear(r, h.DefaultYear)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Report_%d.csv", year))
	if err := tabular.EncodeCSV(w, rows); err != nil {
		slog.Warn("csv export write failed", "err", err)
	}
}

// exportRows projects the full record set, so it is restricted to the
// administrator like import is.
func (h *Handler) exportRows(w http.ResponseWriter, r *http.Request) ([]tabular.Row, bool) {
	requestID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return nil, false
	}
	if identity.Role != appraisal.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "permission_denied", "operation requires administrator role", requestID)
		return nil, false
	}
	rows, err := h.Service.ExportRows(r.Context())
	if err != nil {
		slog.Warn("export failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "store_unavailable", "failed to load records", requestID)
		return nil, false
	}
	return rows, true
}

// begin resolves the identity and builds the workflow session for
// mutating endpoints targeting one employee.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request) (appraisal.Session, string, bool) {
	requestID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return appraisal.Session{}, requestID, false
	}

	session := appraisal.Session{
		Role:       identity.Role,
		ActorID:    identity.EmployeeID,
		EmployeeID: chi.URLParam(r, "employeeID"),
		Year:       h.queryYear(r, h.DefaultYear),
	}
	return session, requestID, true
}

func (h *Handler) queryYear(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return fallback
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return year
}

func writeDomainError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, appraisal.ErrPermissionDenied):
		api.Fail(w, http.StatusForbidden, "permission_denied", "operation requires administrator role", requestID)
	case errors.Is(err, appraisal.ErrFinalLocked):
		api.Fail(w, http.StatusLocked, "final_locked", "employee record is finally approved", requestID)
	case errors.Is(err, appraisal.ErrEmployeeNotFound),
		errors.Is(err, appraisal.ErrGoalNotFound),
		errors.Is(err, appraisal.ErrTaskNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, appraisal.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", "required field missing", requestID)
	case errors.Is(err, appraisal.ErrNotConfirmed):
		api.Fail(w, http.StatusBadRequest, "confirmation_required", "operation requires explicit confirmation", requestID)
	default:
		slog.Warn("workflow operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "operation_failed", "operation failed", requestID)
	}
}
