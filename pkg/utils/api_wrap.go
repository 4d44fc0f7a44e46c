package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TraceID returns the request trace id set by the trace middleware.
func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

// HandleServiceError maps service errors onto the JSON error envelope.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	var (
		validationErr *ValidationError
		upstreamErr   *UpstreamError
		decodeErr     *DecodeError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrScreenNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrRequestInFlight):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTooManyRequests):
		RespondError(c, http.StatusTooManyRequests, "Too many requests")
	case errors.Is(err, ErrTimeout):
		RespondError(c, http.StatusGatewayTimeout, "Request timed out. Please try again.")
	case errors.As(err, &upstreamErr), errors.As(err, &decodeErr), errors.Is(err, ErrNetwork):
		log.Warn("upstream failure", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Error("database error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error("unknown error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
