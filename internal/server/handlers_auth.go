package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// Demo-mode details
const (
	RegisterDisabled       = "Registration disabled in demo mode."
	UpdatePasswordDisabled = "Password update disabled in demo mode."
	LoginSucceeded         = "Demo Login successful."
)

// AuthHandler serves the demo account endpoints. There is exactly one
// account, taken from the server config.
type AuthHandler struct {
	email        string
	uid          string
	passwordHash []byte
	rejection    string
	logger       *zap.Logger
}

func NewAuthHandler(cfg *config.ServerConfig, logger *zap.Logger) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthHandler{
		email:        cfg.AdminEmail,
		uid:          cfg.AdminUID,
		passwordHash: hash,
		rejection:    invalidCredentials(cfg),
		logger:       logger,
	}, nil
}

// invalidCredentials only reveals the account when it is the public demo one
func invalidCredentials(cfg *config.ServerConfig) string {
	if cfg.AdminEmail == model.DemoEmail && cfg.AdminPassword == model.DemoPassword {
		return fmt.Sprintf("Invalid credentials. Use %s / %s.", model.DemoEmail, model.DemoPassword)
	}
	return "Invalid credentials."
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req, "email", "password"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Email != h.email || bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		h.logger.Info("login rejected", zap.String("email", req.Email))
		writeError(w, http.StatusUnauthorized, h.rejection)
		return
	}

	writeJSON(w, http.StatusOK, api.LoginResponse{
		Success: true,
		Message: LoginSucceeded,
		UID:     h.uid,
	})
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusForbidden, RegisterDisabled)
}

// UpdatePassword handles POST /api/update_password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusForbidden, UpdatePasswordDisabled)
}
