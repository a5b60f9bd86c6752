package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mostafa-azimi/touring-app-sub000/pkg/errors"
)

// APIErrorResponse is the standard error response body
type APIErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path,omitempty"`
}

// ErrorHandler converts errors attached to the Gin context into API responses
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		respondWithError(c, logger, err)
	}
}

// ErrorResponder writes an error response for the given error immediately
func ErrorResponder(logger *slog.Logger) func(c *gin.Context, err error) {
	return func(c *gin.Context, err error) {
		respondWithError(c, logger, err)
	}
}

func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	if c.Writer.Written() {
		return
	}

	appErr := toAppError(err)

	if appErr.HTTPStatus >= 500 {
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("code", appErr.Code),
			slog.String("error", appErr.Error()),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", GetRequestID(c)),
		)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, APIErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.MapDomainError(err)
}

// AbortWithError attaches an error to the context and aborts
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// AbortWithValidation aborts with a 400 validation error
func AbortWithValidation(c *gin.Context, message string) {
	AbortWithError(c, apperrors.ErrValidation(message))
}

// AbortWithNotFound aborts with a 404 not found error
func AbortWithNotFound(c *gin.Context, resource string) {
	AbortWithError(c, apperrors.ErrNotFound(resource))
}

// AbortWithInternal aborts with a 500 internal error
func AbortWithInternal(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, APIErrorResponse{
		Code:      apperrors.CodeInternalError,
		Message:   message,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}
