// Package respond writes the JSON bodies shared by every controller.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/KareemMohsenAli/kitchenProducts/internal/errors"
)

const TraceHeader = "X-Trace-Id"

type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	TraceID string                       `json:"traceId,omitempty"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

// Trace mints a trace id for the request, echoes it in the response headers
// and returns a logger carrying it.
func Trace(w http.ResponseWriter, logger *zap.Logger) (string, *zap.Logger) {
	traceID := uuid.New().String()
	w.Header().Set(TraceHeader, traceID)
	return traceID, logger.With(zap.String("traceId", traceID))
}

func JSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func ValidationError(w http.ResponseWriter, logger *zap.Logger, traceID string, message string, details ...apperrors.ValidationDetail) {
	JSON(w, logger, http.StatusBadRequest, ErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		TraceID: traceID,
		Details: details,
	})
}

// Error maps err onto its HTTP status. Unknown errors are logged and answered
// with a generic message.
func Error(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		ValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		JSON(w, logger, http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Message: nfe.Message, TraceID: traceID})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		JSON(w, logger, http.StatusConflict, ErrorResponse{Error: "CONFLICT", Message: ce.Message, TraceID: traceID})
		return
	}

	if ife, ok := apperrors.IsImportFormatError(err); ok {
		logger.Warn("rejected backup import", zap.Error(err))
		JSON(w, logger, http.StatusUnprocessableEntity, ErrorResponse{Error: "INVALID_IMPORT", Message: ife.Error(), TraceID: traceID})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	JSON(w, logger, http.StatusInternalServerError, ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
		TraceID: traceID,
	})
}

// IDParam reads a positive integer path parameter.
func IDParam(r *http.Request, name string) (int64, *apperrors.ValidationError) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		msg := name + " must be a positive integer"
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: msg,
		})
	}
	return id, nil
}

// DecodeBody decodes a JSON request body into dst.
func DecodeBody(r *http.Request, dst interface{}) *apperrors.ValidationError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}
