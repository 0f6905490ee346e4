package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"cellmon/internal/auth"
)

// LoginHandler exchanges the operator password for a JWT.
type LoginHandler struct {
	hasher       auth.Hasher
	passwordHash string
	tokens       *auth.TokenService
	logger       *zap.Logger
}

// NewLoginHandler returns handler for POST /api/login.
func NewLoginHandler(hasher auth.Hasher, passwordHash string, tokens *auth.TokenService, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		hasher:       hasher,
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login handles POST /api/login.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Password string `json:"password"`
	}
	type response struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Password = strings.TrimSpace(req.Password)
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := h.hasher.Compare(h.passwordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken()
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	writeJSON(w, http.StatusOK, response{
		Token:     token,
		TokenType: "Bearer",
	})
}
