package evaluationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/evaluation"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
}

func NewHandler(service *evaluation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequireRole(users.RoleEvaluatee, users.RoleCommittee)).Put("/self", h.handleSaveSelf)
		r.With(middleware.RequireRole(users.RoleEvaluatee, users.RoleCommittee)).Post("/submit/{periodID}", h.handleSubmit)
		r.Get("/status/{periodID}", h.handleStatus)
		r.Get("/mine/{periodID}", h.handleMine)
		r.With(middleware.RequireRole(users.RoleCommittee)).Get("/worklist/{periodID}", h.handleWorklist)
		r.With(middleware.RequireRole(users.RoleCommittee)).Post("/{recordID}/evaluate", h.handleEvaluate)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/approve", h.handleApprove)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/{recordID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/period/{periodID}/summary", h.handlePeriodSummary)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/user/{userID}/period/{periodID}", h.handleForUser)
	})
}

type saveSelfRequest struct {
	CriteriaID string `json:"criteriaId"`
	PeriodID   string `json:"periodId"`
	evaluation.SelfSelection
}

func (h *Handler) handleSaveSelf(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req saveSelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("criteriaId", req.CriteriaID, "criteria is required")
	v.Required("periodId", req.PeriodID, "period is required")
	if v.Reject(w, requestID) {
		return
	}

	record, err := h.Service.SaveSelf(r.Context(), user.UserID, req.CriteriaID, req.PeriodID, req.SelfSelection)
	if err != nil {
		writeEvaluationError(w, err, requestID)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	count, err := h.Service.Submit(r.Context(), user.UserID, chi.URLParam(r, "periodID"))
	if err != nil {
		writeEvaluationError(w, err, requestID)
		return
	}
	api.Success(w, map[string]int64{"submittedCount": count}, requestID)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	status, err := h.Service.Status(r.Context(), user.UserID, chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "status_failed", "failed to load evaluation status", requestID)
		return
	}
	api.Success(w, status, requestID)
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	records, err := h.Service.ListByUserAndPeriod(r.Context(), user.UserID, chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluations_failed", "failed to list evaluations", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleWorklist(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	entries, err := h.Service.Worklist(r.Context(), user.UserID, chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worklist_failed", "failed to load worklist", requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var sel evaluation.CommitteeSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	record, err := h.Service.Evaluate(r.Context(), chi.URLParam(r, "recordID"), user.UserID, sel)
	if err != nil {
		writeEvaluationError(w, err, requestID)
		return
	}
	api.Success(w, record, requestID)
}

type approveRequest struct {
	RecordIDs []string `json:"recordIds"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if len(req.RecordIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "missing_records", "at least one record id is required", requestID)
		return
	}

	count, err := h.Service.Approve(r.Context(), req.RecordIDs, user.UserID)
	if err != nil {
		writeEvaluationError(w, err, requestID)
		return
	}
	api.Success(w, map[string]int64{"approvedCount": count}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	record, err := h.Service.Find(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		writeEvaluationError(w, err, requestID)
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Service.PeriodSummary(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to load period summary", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) handleForUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	records, err := h.Service.ListByUserAndPeriod(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluations_failed", "failed to list evaluations", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func writeEvaluationError(w http.ResponseWriter, err error, requestID string) {
	var state *evaluation.StateError
	switch {
	case errors.As(err, &state):
		api.FailWithDetails(w, http.StatusConflict, "invalid_state", "record is not in the required status", map[string]any{
			"currentStatus":  state.Current,
			"requiredStatus": state.Wanted,
		}, requestID)
	case errors.Is(err, evaluation.ErrScoreOutOfRange):
		api.Fail(w, http.StatusBadRequest, "score_out_of_range", "score must be between 0 and 4", requestID)
	case errors.Is(err, evaluation.ErrPeriodClosed):
		api.Fail(w, http.StatusConflict, "period_closed", "the evaluation period is not open", requestID)
	case errors.Is(err, evaluation.ErrNotAssigned):
		api.Fail(w, http.StatusForbidden, "not_assigned", "you are not assigned to evaluate this user", requestID)
	case errors.Is(err, evaluation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "record_not_found", "evaluation record not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "failed to save evaluation", requestID)
	}
}
