package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrCredentialsRequired is returned when username or password is missing.
	ErrCredentialsRequired = errors.New("username and password are required")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTokenMissing is returned when no bearer token accompanies the request.
	ErrTokenMissing = errors.New("missing authentication token")
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned when the token is malformed or badly signed.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrUserNotFound is returned when a token resolves to no known user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostFieldsRequired is returned when title or content is missing.
	ErrPostFieldsRequired = errors.New("title and content are required")
	// ErrPostNotFound is returned when no post exists for the given id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor is returned when a caller mutates someone else's post.
	ErrNotPostAuthor = errors.New("no permission to modify this post")
	// ErrNoUpdateData is returned when an update payload carries no fields.
	ErrNoUpdateData = errors.New("missing data to update")
)

// MessageResponse is the uniform body shape for every non-data response.
type MessageResponse struct {
	Message string `json:"message"`
}

// HTTPError pairs a domain error with the status it maps to.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP translates a domain error into its HTTP status and client
// message. Unknown errors collapse to a generic 500; callers are expected to
// log the original before translating.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCredentialsRequired),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrPostFieldsRequired),
		errors.Is(err, ErrNoUpdateData):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenMissing),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotPostAuthor):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
