package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/validation"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Message string                 `json:"message"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// MessageResponse is the body of responses that only confirm an action
type MessageResponse struct {
	Message string `json:"message"`
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, h.Logger, status, data)
}

// RespondMessage sends a {"message": ...} response
func (h *BaseHandler) RespondMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, h.Logger, status, MessageResponse{Message: message})
}

// RespondError translates err into a status code and error body
func (h *BaseHandler) RespondError(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, h.Logger, err)
}

// DecodeAndValidate decodes the JSON request body into dst and validates it
func (h *BaseHandler) DecodeAndValidate(r *http.Request, dst any) error {
	if err := h.Decode(r, dst); err != nil {
		return err
	}
	return validation.Struct(dst)
}

// Decode decodes the JSON request body into dst without validating it
func (h *BaseHandler) Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.BadRequest("Request body is required")
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.BadRequest("Request body too large")
		}
		return apperrors.Wrap(apperrors.KindBadRequest, "Invalid request body", err)
	}
	return nil
}

// WriteJSON encodes data as the response body with the given status
func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// WriteError is the single translator from domain errors to HTTP responses.
// Errors that are not *apperrors.Error are logged and reported as 500 without details.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	status := apperrors.Status(appErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteJSON(w, logger, status, ErrorResponse{Message: "Internal server error"})
		return
	}

	logger.Debug("request rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Stringer("kind", appErr.Kind),
		zap.Error(err),
	)
	WriteJSON(w, logger, status, ErrorResponse{Message: appErr.Message, Errors: appErr.Fields})
}
