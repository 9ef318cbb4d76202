package handler

import (
	"net/http"
	"time"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/user"
)

// RegisterRequest is the body of POST /api/auth/register.
// Length rules are enforced by the user service after normalisation.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message   string         `json:"message"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      *domain.Player `json:"user"`
}

// ProfileResponse wraps the current player's profile
type ProfileResponse struct {
	User *domain.Player `json:"user"`
}

// AuthHandler serves the account endpoints
type AuthHandler struct {
	userSvc user.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userSvc user.Service) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// HandleRegister creates an account and returns a session token
// @Summary Register a new account
// @Description Creates a player with starting coins and empty plots, and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account credentials"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ValidationErrorResponse "Invalid input or username taken"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
		return
	}

	session, err := h.userSvc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, r, "Register", err)
		return
	}

	logger.FromContext(r.Context()).Info("Player registered", "playerID", session.Player.ID)
	respondJSON(w, http.StatusCreated, newAuthResponse(MsgRegisterSuccess, session))
}

// HandleLogin verifies credentials and returns a session token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Account credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse "Wrong username or password"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	session, err := h.userSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}

	respondJSON(w, http.StatusOK, newAuthResponse(MsgLoginSuccess, session))
}

// HandleMe returns the authenticated player's profile
// @Summary Get current player
// @Tags auth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	player, err := h.userSvc.GetProfile(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponse{User: player})
}

func newAuthResponse(msg string, s *domain.Session) AuthResponse {
	return AuthResponse{
		Message:   msg,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      s.Player,
	}
}
