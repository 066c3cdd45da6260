package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"microblog/internal/apperrors"
	"microblog/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} apperrors.MessageResponse
// @Failure 400 {object} apperrors.MessageResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrCredentialsRequired)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, apperrors.ErrCredentialsRequired)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	log.Printf("new user registered: %s", user.Username)
	return c.JSON(http.StatusCreated, apperrors.MessageResponse{
		Message: "user registered successfully, please log in",
	})
}

// Login godoc
// @Summary Log in and receive an identity token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} apperrors.MessageResponse
// @Failure 401 {object} apperrors.MessageResponse
// @Failure 500 {object} apperrors.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrCredentialsRequired)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, apperrors.ErrCredentialsRequired)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("failed login attempt for username: %s", req.Username)
		return writeError(c, err)
	}

	log.Printf("user logged in: %s", user.Username)
	return c.JSON(http.StatusOK, LoginResponse{
		Message:  "login successful",
		Token:    token,
		Username: user.Username,
	})
}
