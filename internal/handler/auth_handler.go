package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Stewz00/go-phishguard/internal/httputil"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/middleware"
	"github.com/Stewz00/go-phishguard/internal/model"
	"github.com/Stewz00/go-phishguard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Register handles user registration and returns a token for the new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.authService.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httputil.RespondError(w, httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, service.ErrEmailInUse):
			httputil.RespondError(w, httputil.CodeEmailInUse, http.StatusConflict)
		default:
			logging.FromContext(r.Context()).Error("registration failed", "error", err)
			httputil.RespondError(w, httputil.CodeInternal, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, AuthResponse{Token: result.Token, User: newUserResponse(result.User)}, http.StatusOK)
}

// Login handles user authentication and returns a JWT token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.authService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httputil.RespondError(w, httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logging.FromContext(r.Context()).Error("login failed", "error", err)
		httputil.RespondError(w, httputil.CodeInternal, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, AuthResponse{Token: result.Token, User: newUserResponse(result.User)}, http.StatusOK)
}

// Me returns the profile of the authenticated caller
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, httputil.CodeMissingToken, http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetUser(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httputil.RespondError(w, httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}
		logging.FromContext(r.Context()).Error("profile lookup failed", "error", err)
		httputil.RespondError(w, httputil.CodeInternal, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, newUserResponse(user), http.StatusOK)
}
