package rubrichandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/rubric"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *rubric.Service
}

func NewHandler(service *rubric.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/periods/{periodID}/topics", func(r chi.Router) {
		r.Get("/", h.handleListTopics)
		r.Get("/weights", h.handleTopicWeights)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/", h.handleCreateTopic)
	})
	r.Route("/topics/{topicID}", func(r chi.Router) {
		r.Get("/", h.handleGetTopic)
		r.With(middleware.RequireRole(users.RoleHR)).Put("/", h.handleUpdateTopic)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/", h.handleDeleteTopic)
		r.Get("/criteria", h.handleListCriteria)
		r.Get("/criteria/weights", h.handleCriterionWeights)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/criteria", h.handleCreateCriterion)
	})
	r.Route("/criteria/{criteriaID}", func(r chi.Router) {
		r.Get("/", h.handleGetCriterion)
		r.With(middleware.RequireRole(users.RoleHR)).Put("/", h.handleUpdateCriterion)
		r.With(middleware.RequireRole(users.RoleHR)).Delete("/", h.handleDeleteCriterion)
	})
}

func (h *Handler) handleListTopics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	topics, err := h.Service.TopicsByPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "topics_failed", "failed to list topics", requestID)
		return
	}
	api.Success(w, topics, requestID)
}

func (h *Handler) handleTopicWeights(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Service.TopicWeightSummary(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "weights_failed", "failed to load weight summary", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

type topicRequest struct {
	TopicName        string  `json:"topicName"`
	WeightPercentage float64 `json:"weightPercentage"`
	SortOrder        int     `json:"sortOrder"`
}

func (h *Handler) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("topicName", req.TopicName, "topic name is required")
	v.Range("weightPercentage", req.WeightPercentage, 0, 100, "weight must be between 0 and 100")
	if v.Reject(w, requestID) {
		return
	}

	topic, err := h.Service.CreateTopic(r.Context(), chi.URLParam(r, "periodID"), req.TopicName, req.WeightPercentage, req.SortOrder)
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Created(w, topic, requestID)
}

func (h *Handler) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	topic, err := h.Service.FindTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Success(w, topic, requestID)
}

func (h *Handler) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("topicName", req.TopicName, "topic name is required")
	v.Range("weightPercentage", req.WeightPercentage, 0, 100, "weight must be between 0 and 100")
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Service.UpdateTopic(r.Context(), chi.URLParam(r, "topicID"), req.TopicName, req.WeightPercentage, req.SortOrder)
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	if !updated {
		api.Fail(w, http.StatusNotFound, "topic_not_found", "topic not found", requestID)
		return
	}
	topic, err := h.Service.FindTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Success(w, topic, requestID)
}

func (h *Handler) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Service.DeleteTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "topic_not_found", "topic not found", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func (h *Handler) handleListCriteria(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	criteria, err := h.Service.CriteriaByTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "criteria_failed", "failed to list criteria", requestID)
		return
	}
	api.Success(w, criteria, requestID)
}

func (h *Handler) handleCriterionWeights(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Service.CriterionWeightSummary(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "weights_failed", "failed to load weight summary", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

type criterionRequest struct {
	CriteriaName     string              `json:"criteriaName"`
	WeightScore      float64             `json:"weightScore"`
	EvaluationType   string              `json:"evaluationType"`
	EvidenceRequired *bool               `json:"evidenceRequired"`
	EvidenceTypes    []string            `json:"evidenceTypes"`
	SortOrder        int                 `json:"sortOrder"`
	Options          []rubric.OptionSeed `json:"options"`
}

func (h *Handler) handleCreateCriterion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req criterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("criteriaName", req.CriteriaName, "criteria name is required")
	v.Range("weightScore", req.WeightScore, 0, 100, "weight must be between 0 and 100")
	if v.Reject(w, requestID) {
		return
	}

	evidenceRequired := true
	if req.EvidenceRequired != nil {
		evidenceRequired = *req.EvidenceRequired
	}

	criterion, err := h.Service.CreateCriterion(r.Context(), chi.URLParam(r, "topicID"), req.CriteriaName,
		req.WeightScore, req.EvaluationType, evidenceRequired, req.EvidenceTypes, req.SortOrder, req.Options)
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Created(w, criterion, requestID)
}

func (h *Handler) handleGetCriterion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	criterion, err := h.Service.FindCriterion(r.Context(), chi.URLParam(r, "criteriaID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Success(w, criterion, requestID)
}

func (h *Handler) handleUpdateCriterion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req criterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("criteriaName", req.CriteriaName, "criteria name is required")
	v.Range("weightScore", req.WeightScore, 0, 100, "weight must be between 0 and 100")
	if v.Reject(w, requestID) {
		return
	}

	evidenceRequired := true
	if req.EvidenceRequired != nil {
		evidenceRequired = *req.EvidenceRequired
	}

	updated, err := h.Service.UpdateCriterion(r.Context(), chi.URLParam(r, "criteriaID"), req.CriteriaName,
		req.WeightScore, req.EvaluationType, evidenceRequired, req.EvidenceTypes, req.SortOrder)
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	if !updated {
		api.Fail(w, http.StatusNotFound, "criteria_not_found", "criteria not found", requestID)
		return
	}
	criterion, err := h.Service.FindCriterion(r.Context(), chi.URLParam(r, "criteriaID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	api.Success(w, criterion, requestID)
}

func (h *Handler) handleDeleteCriterion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	deleted, err := h.Service.DeleteCriterion(r.Context(), chi.URLParam(r, "criteriaID"))
	if err != nil {
		writeRubricError(w, err, requestID)
		return
	}
	if !deleted {
		api.Fail(w, http.StatusNotFound, "criteria_not_found", "criteria not found", requestID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, requestID)
}

func writeRubricError(w http.ResponseWriter, err error, requestID string) {
	var overBudget *rubric.OverBudgetError
	switch {
	case errors.As(err, &overBudget):
		api.FailWithDetails(w, http.StatusBadRequest, "weight_budget_exceeded", "weight budget of 100 exceeded", map[string]any{
			"currentTotal":   overBudget.CurrentTotal,
			"attemptedTotal": overBudget.AttemptedTotal,
		}, requestID)
	case errors.Is(err, rubric.ErrInvalidWeight):
		api.Fail(w, http.StatusBadRequest, "invalid_weight", "weight must be greater than 0 and at most 100", requestID)
	case errors.Is(err, rubric.ErrInvalidType):
		api.Fail(w, http.StatusBadRequest, "invalid_evaluation_type", "unknown evaluation type", requestID)
	case errors.Is(err, rubric.ErrOptionsRequired):
		api.Fail(w, http.StatusBadRequest, "options_required", "custom evaluation type requires options", requestID)
	case errors.Is(err, rubric.ErrHasEvaluations):
		api.Fail(w, http.StatusConflict, "rubric_in_use", "existing evaluation records reference this entry", requestID)
	case errors.Is(err, rubric.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", "period not found", requestID)
	case errors.Is(err, rubric.ErrTopicNotFound):
		api.Fail(w, http.StatusNotFound, "topic_not_found", "topic not found", requestID)
	case errors.Is(err, rubric.ErrCriterionNotFound):
		api.Fail(w, http.StatusNotFound, "criteria_not_found", "criteria not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "rubric_failed", "failed to save rubric entry", requestID)
	}
}
