package userhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/auth"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *users.Service
}

func NewHandler(service *users.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.RequireRole(users.RoleHR)).Get("/", h.handleList)
		r.With(middleware.RequireRole(users.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(users.RoleHR)).Get("/{userID}", h.handleGet)
		r.With(middleware.RequireRole(users.RoleHR)).Patch("/{userID}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	role := r.URL.Query().Get("role")
	if role != "" && !users.ValidRole(role) {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role filter", requestID)
		return
	}
	list, err := h.Service.List(r.Context(), role)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "users_failed", "failed to list users", requestID)
		return
	}
	api.Success(w, list, requestID)
}

type createUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", req.Username, "username is required")
	v.Required("password", req.Password, "password is required")
	v.Required("fullName", req.FullName, "full name is required")
	v.Enum("role", req.Role, []string{users.RoleHR, users.RoleCommittee, users.RoleEvaluatee}, "unknown role")
	if v.Reject(w, requestID) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", requestID)
		return
	}

	id, err := h.Service.Create(r.Context(), req.Username, hash, req.Role, req.FullName, req.Email, req.Department, req.Position)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateUsername):
			api.Fail(w, http.StatusConflict, "duplicate_username", "username is already taken", requestID)
		case errors.Is(err, users.ErrInvalidRole):
			api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", requestID)
		}
		return
	}

	user, err := h.Service.Find(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to load created user", requestID)
		return
	}
	api.Created(w, user, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, err := h.Service.Find(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "user_failed", "failed to load user", requestID)
		return
	}
	api.Success(w, user, requestID)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Enum("status", req.Status, []string{users.StatusActive, users.StatusInactive}, "unknown status")
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "userID"), req.Status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", requestID)
		return
	}
	if !updated {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", requestID)
		return
	}
	api.Success(w, map[string]string{"status": req.Status}, requestID)
}
