package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hai-lomilomi/backend/internal/middleware"
	"github.com/hai-lomilomi/backend/internal/models"
	"github.com/hai-lomilomi/backend/internal/services"
)

// AuthHandler serves registration and the dev-mode credential login.
type AuthHandler struct {
	registrar     *services.IdentityRegistrar
	credentials   *services.CredentialService
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthHandler(registrar *services.IdentityRegistrar, credentials *services.CredentialService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		registrar:     registrar,
		credentials:   credentials,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates the caller's member profile, exactly once per identity.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := h.registrar.RegisterIfAbsent(ctx, ident, req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Please sign in"))
		case errors.Is(err, services.ErrAlreadyRegistered):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Already a member"))
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{verr.Field: verr.Message}))
		default:
			log.Printf("[Register] user=%s error=%v", ident.UID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create profile"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(nil))
}

// GetProfile returns the caller's own profile document.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.registrar.Profile(ctx, ident)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Please sign in"))
		case services.IsNotFound(err):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		default:
			log.Printf("[GetProfile] user=%s error=%v", ident.UID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		}
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// GetEmail returns the signed-in user's email for display.
func (h *AuthHandler) GetEmail(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	email, ok := h.registrar.IdentityEmail(ident)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Please sign in"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"email": email}))
}

// Login verifies dev-mode credentials and issues a backend JWT. Not mounted
// when Firebase auth is active.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	cred, err := h.credentials.CheckPassword(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrCredentialNotFound) || errors.Is(err, services.ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.generateToken(cred)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		UID:   cred.ID,
		Email: cred.Email,
	}))
}

func (h *AuthHandler) generateToken(cred *models.Credential) (string, error) {
	claims := jwt.MapClaims{
		"uid":   cred.ID,
		"email": cred.Email,
		"exp":   time.Now().Add(h.jwtExpiration).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
