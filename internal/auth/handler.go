package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/userboard/userboard/internal/httputil"
	"github.com/userboard/userboard/internal/logging"
	"github.com/userboard/userboard/internal/user"
)

// Handler contains HTTP handlers for the authentication endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SignUpRequest represents the sign-up request body
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a sign-up or login response
type AuthResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token,omitempty"`
	User    *user.Sanitized `json:"user,omitempty"`
}

// SignUp handles user registration
// @Summary      Sign up a new user
// @Description  Create a new user account and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignUpRequest true "Sign-up credentials"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error or duplicate email"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/sign-up [post]
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid sign-up request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, newUser, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSignUpFields):
			logger.Warn("sign-up failed: missing fields")
			httputil.RespondError(w, "Email, password, and name are required", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("sign-up failed: invalid email format")
			httputil.RespondError(w, "Invalid email format", http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("sign-up failed: password too short")
			httputil.RespondError(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		case errors.Is(err, ErrUserExists):
			logger.Warn("sign-up failed: email already registered")
			httputil.RespondError(w, "User already exists with this email", http.StatusBadRequest)
		default:
			logger.Error("sign-up failed: internal error", "error", err.Error())
			httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user signed up successfully", "user_id", newUser.ID.Hex())

	sanitized := newUser.Sanitize()
	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Message: "User created successfully",
		Token:   token,
		User:    &sanitized,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid input"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, existing, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			logger.Warn("login failed: missing credentials")
			httputil.RespondError(w, "Email and password are required", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("login failed: invalid email format")
			httputil.RespondError(w, "Invalid email format", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			// Same message for unknown email and wrong password
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user logged in successfully", "user_id", existing.ID.Hex())

	sanitized := existing.Sanitize()
	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    &sanitized,
	}, http.StatusOK)
}
