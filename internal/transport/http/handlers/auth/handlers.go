package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/auth"
	"appraisal/internal/domain/users"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Users     *users.Service
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(usersSvc *users.Service, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{Users: usersSvc, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if req.Username == "" || req.Password == "" {
		api.Fail(w, http.StatusBadRequest, "missing_credentials", "username and password are required", requestID)
		return
	}

	creds, err := h.Users.FindCredentialsByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", requestID)
		return
	}
	if creds.Status != users.StatusActive {
		api.Fail(w, http.StatusUnauthorized, "account_inactive", "account is inactive", requestID)
		return
	}
	if err := auth.CheckPassword(creds.PasswordHash, req.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:   creds.ID,
		Username: creds.Username,
		Role:     creds.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", requestID)
		return
	}

	user, err := h.Users.Find(r.Context(), creds.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load user", requestID)
		return
	}
	api.Success(w, loginResponse{Token: token, User: user}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	profile, err := h.Users.Find(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}
