package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"microblog/internal/apperrors"
	"microblog/internal/auth"
	"microblog/internal/handler"
	"microblog/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Uniform {message} bodies for unmatched routes and uncaught errors.
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	protected := auth.Middleware(jwtService, userRepo)

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)

	// Author-only routes (require a valid bearer token)
	api.POST("/posts", postHandler.Create, protected)
	api.PUT("/posts/:id", postHandler.Update, protected)
	api.DELETE("/posts/:id", postHandler.Delete, protected)
}

// HTTPErrorHandler renders every error that escapes a handler as the shared
// {message} shape. Unmatched routes say so; everything unexpected is logged
// and reported as a generic 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	switch code {
	case http.StatusNotFound:
		if message == http.StatusText(http.StatusNotFound) {
			message = "endpoint not found"
		}
	case http.StatusInternalServerError:
		log.Printf("internal server error: %v, path: %s", err, c.Request().URL.Path)
		message = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, apperrors.MessageResponse{Message: message})
	}
	if err != nil {
		log.Printf("error handler write: %v", err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
