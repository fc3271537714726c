package periodhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/period"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *period.Service
}

func NewHandler(service *period.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/periods", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/active", h.handleActive)
		r.Get("/{periodID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleHR)).Put("/{periodID}", h.handleUpdate)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/{periodID}", h.handleDelete)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/{periodID}/statistics", h.handleStatistics)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var filter period.ListFilter
	switch r.URL.Query().Get("isActive") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	periods, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "periods_failed", "failed to list periods", requestID)
		return
	}
	api.Success(w, periods, requestID)
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	periods, err := h.Service.ActivePeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "periods_failed", "failed to list active periods", requestID)
		return
	}
	api.Success(w, periods, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	p, err := h.Service.Find(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, period.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_failed", "failed to load period", requestID)
		return
	}
	api.Success(w, p, requestID)
}

type periodRequest struct {
	PeriodName  string `json:"periodName"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsActive    *bool  `json:"isActive"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var req periodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("periodName", req.PeriodName, "period name is required")
	start, okStart := v.Date("startDate", req.StartDate)
	end, okEnd := v.Date("endDate", req.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	p, err := h.Service.Create(r.Context(), req.PeriodName, req.Description, start, end, user.UserID)
	if err != nil {
		writePeriodError(w, err, requestID)
		return
	}
	api.Created(w, p, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req periodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("periodName", req.PeriodName, "period name is required")
	start, okStart := v.Date("startDate", req.StartDate)
	end, okEnd := v.Date("endDate", req.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "periodID"), req.PeriodName, req.Description, start, end, isActive)
	if err != nil {
		writePeriodError(w, err, requestID)
		return
	}
	if !updated {
		api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
		return
	}
	p, err := h.Service.Find(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_failed", "failed to load period", requestID)
		return
	}
	api.Success(w, p, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Service.Delete(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, period.ErrHasEvaluations) {
			api.Fail(w, http.StatusConflict, "period_in_use", "period has evaluation records and cannot be deleted", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_delete_failed", "failed to delete period", requestID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Statistics(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, period.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to load statistics", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func writePeriodError(w http.ResponseWriter, err error, requestID string) {
	var overlap *period.OverlapError
	switch {
	case errors.As(err, &overlap):
		api.FailWithDetails(w, http.StatusConflict, "period_overlap", "period overlaps an existing active period", map[string]any{
			"conflictingPeriodId": overlap.ConflictID,
			"conflictingStart":    overlap.Start.Format("2006-01-02"),
			"conflictingEnd":      overlap.End.Format("2006-01-02"),
		}, requestID)
	case errors.Is(err, period.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "period_failed", "failed to save period", requestID)
	}
}
