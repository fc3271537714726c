package reporthandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/reports"
	"appraisal/internal/domain/scoring"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Scoring *scoring.Service
}

func NewHandler(service *reports.Service, scorer *scoring.Service) *Handler {
	return &Handler{Service: service, Scoring: scorer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/score/{periodID}", h.handleOwnScore)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/score/{periodID}/user/{userID}", h.handleUserScore)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/period/{periodID}", h.handlePeriodReport)
		r.With(middleware.RequireRole(users.RoleHR, users.RoleCommittee)).Get("/user/{userID}/period/{periodID}", h.handleUserReport)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/user/{userID}/period/{periodID}/pdf", h.handleUserReportPDF)
	})
}

func (h *Handler) handleOwnScore(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	score, err := h.Scoring.TotalScore(r.Context(), user.UserID, chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to compute score", requestID)
		return
	}
	api.Success(w, score, requestID)
}

func (h *Handler) handleUserScore(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	score, err := h.Scoring.TotalScore(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_failed", "failed to compute score", requestID)
		return
	}
	api.Success(w, score, requestID)
}

func (h *Handler) handlePeriodReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Service.PeriodReport(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build period report", requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleUserReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Service.UserReport(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "report_subject_not_found", "user or period not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleUserReportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Service.UserReport(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "periodID"))
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "report_subject_not_found", "user or period not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestID)
		return
	}

	pdf, err := reports.RenderUserPDF(report)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render report", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "evaluation-report-"+report.Subject.UserID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
