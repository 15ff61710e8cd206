package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/server/services"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type identityResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func newSessionResponse(msg string, s *services.Session) sessionResponse {
	return sessionResponse{Message: msg, Token: s.Token, UserID: s.UserID, Username: s.Username}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid request body.", h.logger)
		return
	}

	session, err := h.accounts.Signup(ctx, req.Username, req.Password)
	h.metrics.AuthEvent("signup", err)
	switch {
	case err == nil:
		respondWithJSON(ctx, w, http.StatusCreated, newSessionResponse("User registered successfully!", session), h.logger)
	case errors.Is(err, common.ErrValidation):
		respondWithError(ctx, w, http.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, common.ErrAlreadyExists):
		respondWithError(ctx, w, http.StatusBadRequest, "User with that username already exists.", h.logger)
	default:
		h.logger.Error(ctx, "signup failed", "error", err)
		respondWithServerError(ctx, w, "Server error during registration.", err, h.logger)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid request body.", h.logger)
		return
	}

	session, err := h.accounts.Login(ctx, req.Username, req.Password)
	h.metrics.AuthEvent("login", err)
	switch {
	case err == nil:
		respondWithJSON(ctx, w, http.StatusOK, newSessionResponse("Logged in successfully!", session), h.logger)
	case errors.Is(err, common.ErrValidation):
		respondWithError(ctx, w, http.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, common.ErrInvalidCredentials):
		respondWithError(ctx, w, http.StatusBadRequest, "Invalid credentials.", h.logger)
	default:
		h.logger.Error(ctx, "login failed", "error", err)
		respondWithServerError(ctx, w, "Server error during login.", err, h.logger)
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	respondWithJSON(r.Context(), w, http.StatusOK, identityResponse{UserID: id.UserID, Username: id.Username}, h.logger)
}
