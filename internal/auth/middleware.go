package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"microblog/internal/apperrors"
	"microblog/internal/model"
	"microblog/internal/repository"
)

// CurrentUserKey is the context key under which the authenticated user is stored.
const CurrentUserKey = "currentUser"

// Middleware returns the JWT middleware for protected routes. It extracts the
// bearer token, verifies it, loads the user it names, and stores the user in
// the request context. Each failure cause maps to its own 401 message.
func Middleware(jwtService *JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: CurrentUserKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			userID, err := jwtService.Verify(token)
			if err != nil {
				return nil, err
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return nil, apperrors.ErrUserNotFound
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			cause := apperrors.ErrTokenInvalid
			switch {
			case c.Request().Header.Get(echo.HeaderAuthorization) == "":
				cause = apperrors.ErrTokenMissing
			case errors.Is(err, apperrors.ErrTokenExpired):
				cause = apperrors.ErrTokenExpired
			case errors.Is(err, apperrors.ErrUserNotFound):
				cause = apperrors.ErrUserNotFound
			}
			httpErr := apperrors.MapErrorToHTTP(cause)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
		},
	})
}

// CurrentUser returns the authenticated user placed in the context by
// Middleware, or nil outside a protected route.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(CurrentUserKey).(*model.User)
	return user
}
