package committeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/committee"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *committee.Service
}

func NewHandler(service *committee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assignments", func(r chi.Router) {
		r.With(middleware.RequireRole(users.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/bulk", h.handleCreateBulk)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/period/{periodID}", h.handleListByPeriod)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/period/{periodID}/statistics", h.handleStatistics)
		r.Get("/mine/{periodID}", h.handleMine)
		r.With(middleware.RequireRole(users.RoleHR)).Patch("/{assignmentID}/role", h.handleUpdateRole)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/{assignmentID}", h.handleDelete)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/period/{periodID}", h.handleDeleteByPeriod)
	})
}

type createRequest struct {
	CommitteeID string `json:"committeeId"`
	EvaluateeID string `json:"evaluateeId"`
	PeriodID    string `json:"periodId"`
	Role        string `json:"role"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("committeeId", req.CommitteeID, "committee member is required")
	v.Required("evaluateeId", req.EvaluateeID, "evaluatee is required")
	v.Required("periodId", req.PeriodID, "period is required")
	if v.Reject(w, requestID) {
		return
	}

	assignment, err := h.Service.Create(r.Context(), req.CommitteeID, req.EvaluateeID, req.PeriodID, req.Role, user.UserID)
	if err != nil {
		writeAssignmentError(w, err, requestID)
		return
	}
	api.Created(w, assignment, requestID)
}

type bulkRequest struct {
	CommitteeIDs []string `json:"committeeIds"`
	EvaluateeIDs []string `json:"evaluateeIds"`
	PeriodID     string   `json:"periodId"`
}

func (h *Handler) handleCreateBulk(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("periodId", req.PeriodID, "period is required")
	if len(req.CommitteeIDs) == 0 {
		v.Add("committeeIds", "at least one committee member is required")
	}
	if len(req.EvaluateeIDs) == 0 {
		v.Add("evaluateeIds", "at least one evaluatee is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.CreateBulk(r.Context(), req.CommitteeIDs, req.EvaluateeIDs, req.PeriodID, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bulk_assign_failed", "failed to create assignments", requestID)
		return
	}
	api.Created(w, result, requestID)
}

func (h *Handler) handleListByPeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	assignments, err := h.Service.ListByPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignments_failed", "failed to list assignments", requestID)
		return
	}
	api.Success(w, assignments, requestID)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Statistics(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to load assignment statistics", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

// handleMine lists the caller's own assignments: committee members see their
// evaluatees, everyone else sees the committee assigned to them.
func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	periodID := chi.URLParam(r, "periodID")
	var (
		assignments []committee.Assignment
		err         error
	)
	if user.Role == users.RoleCommittee {
		assignments, err = h.Service.EvaluateesByCommittee(r.Context(), user.UserID, periodID)
	} else {
		assignments, err = h.Service.CommitteesByEvaluatee(r.Context(), user.UserID, periodID)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignments_failed", "failed to list assignments", requestID)
		return
	}
	api.Success(w, assignments, requestID)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	updated, err := h.Service.UpdateRole(r.Context(), chi.URLParam(r, "assignmentID"), req.Role)
	if err != nil {
		writeAssignmentError(w, err, requestID)
		return
	}
	if !updated {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", requestID)
		return
	}
	api.Success(w, map[string]string{"role": req.Role}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Service.Delete(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		writeAssignmentError(w, err, requestID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleDeleteByPeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	count, err := h.Service.DeleteByPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignments_delete_failed", "failed to delete assignments", requestID)
		return
	}
	api.Success(w, map[string]int64{"deleted": count}, requestID)
}

func writeAssignmentError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, committee.ErrDuplicateAssignment):
		api.Fail(w, http.StatusConflict, "duplicate_assignment", "this committee member is already assigned to the evaluatee for the period", requestID)
	case errors.Is(err, committee.ErrSelfAssignment):
		api.Fail(w, http.StatusConflict, "self_assignment", "a committee member cannot evaluate themselves", requestID)
	case errors.Is(err, committee.ErrInvalidRole):
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown committee role", requestID)
	case errors.Is(err, committee.ErrHasEvaluations):
		api.Fail(w, http.StatusConflict, "assignment_in_use", "the committee member has already scored records under this assignment", requestID)
	case errors.Is(err, committee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "assignment_failed", "failed to save assignment", requestID)
	}
}
