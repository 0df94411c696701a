package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies an application error; the HTTP layer maps kinds to status codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindInvalidToken
	KindRevoked
	KindMalformed
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindRevoked:
		return "revoked"
	case KindMalformed:
		return "malformed"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind to its response status.
// Conflict answers 400: clients of the booking API already treat a taken slot as a bad request.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidToken, KindRevoked, KindMalformed:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the typed error every service returns.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewError builds an AppError without a cause.
func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError builds an AppError around a cause.
func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// Internal wraps a store or infrastructure failure.
func Internal(message string, err error) *AppError {
	return WrapError(KindInternal, message, err)
}

// KindOf reports the kind of err; anything that is not an AppError is internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes the status and message for err and logs it. Causes are only logged.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = GetLogger()
	}
	kind := KindOf(err)
	message := "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) && kind != KindInternal {
		message = appErr.Message
	}

	if kind == KindInternal {
		logger.Error("request failed", zap.String("kind", kind.String()), zap.Error(err))
	} else {
		logger.Warn(message, zap.String("kind", kind.String()), zap.Error(err))
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), ErrorResponse{Message: message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
