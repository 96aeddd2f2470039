package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/adapters/rest/middleware"
	"github.com/quillhq/newsdesk/internal/platform/apperror"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// ErrorResponse is the wire shape of every error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Context any    `json:"context,omitempty"`
}

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger   logger.Logger
	validate *validator.Validate
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:   code,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", code,
			"status_code", statusCode,
		)
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps application errors onto HTTP responses. AppErrors carry
// their own status and codes; anything else is a 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.HTTPStatus)

		resp := ErrorResponse{
			Error:   string(appErr.Code),
			Message: appErr.Message,
			Code:    string(appErr.BusinessCode),
			Context: appErr.Details,
		}
		if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
			h.logger.Error(r.Context(), "failed to encode error response", "error", encodeErr)
		}
		return
	}

	h.logger.Error(r.Context(), "unhandled error", "error", err)
	h.WriteJSONError(w, r, string(apperror.CodeInternalError), "An unexpected error occurred", http.StatusInternalServerError)
}

// DecodeAndValidate decodes the JSON request body into dst and runs
// struct validation on it.
func (h *BaseHandler) DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// GetUserIDFromContext returns the authenticated subject, or "" on public
// routes. Services treat "" as unauthenticated.
func (h *BaseHandler) GetUserIDFromContext(r *http.Request) string {
	subject, _ := middleware.GetJWTSubject(r.Context())
	return subject
}

// GetUsernameFromContext returns the display username from the token, or ""
func (h *BaseHandler) GetUsernameFromContext(r *http.Request) string {
	username, _ := middleware.GetJWTUsername(r.Context())
	return username
}

// ParseUUIDParam parses a chi URL parameter as a UUID
func (h *BaseHandler) ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
