package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/server/models"
	"github.com/avolkov/microblog/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token        string    `json:"token"`
	ExpiresAtUtc time.Time `json:"expiresAtUtc"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, roles, err := s.users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			writeValidationError(w, ve)
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName)
	s.issueToken(w, r, user, roles)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, roles, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// one shape for unknown email and wrong password alike
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.issueToken(w, r, user, roles)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, user *models.User, roles []string) {
	token, expires, err := s.tokens.Issue(user, roles)
	if err != nil {
		s.logger.Error(r.Context(), "token issuance failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, ExpiresAtUtc: expires})
}
