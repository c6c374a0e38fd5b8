package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing more to write
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP response and logs it
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgRecipeNotFoundError   = "Recipe not found"
	ErrMsgRecipeLockedError     = "Recipe is not known yet"
	ErrMsgGateNotMetError       = "Recipe unlock requirements are not met"
	ErrMsgStationLockedError    = "Station is locked"
	ErrMsgStationMaxLevelError  = "Station is already at max level"
	ErrMsgPrereqNotMetError     = "Prerequisite station mastery not met"
	ErrMsgUnknownStationError   = "Unknown station"
	ErrMsgLowMasteryError       = "Mastery level too low for this recipe"
	ErrMsgNotEnoughMaterialsErr = "Not enough materials"
	ErrMsgUnknownMaterialError  = "Unknown material"
	ErrMsgQueueFullError        = "Production queue is full"
	ErrMsgJobNotFoundError      = "Job not found"
	ErrMsgJobCompletedError     = "Job already completed"
	ErrMsgInvalidQuantityError  = "Quantity must be positive"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrRecipeLocked):
		return http.StatusForbidden, ErrMsgRecipeLockedError
	case errors.Is(err, domain.ErrGateNotMet):
		return http.StatusForbidden, ErrMsgGateNotMetError
	case errors.Is(err, domain.ErrStationLocked):
		return http.StatusForbidden, ErrMsgStationLockedError
	case errors.Is(err, domain.ErrStationMaxLevel):
		return http.StatusBadRequest, ErrMsgStationMaxLevelError
	case errors.Is(err, domain.ErrPrereqNotMet):
		return http.StatusForbidden, ErrMsgPrereqNotMetError
	case errors.Is(err, domain.ErrUnknownStationKind):
		return http.StatusBadRequest, ErrMsgUnknownStationError
	case errors.Is(err, domain.ErrInsufficientMastery):
		return http.StatusForbidden, ErrMsgLowMasteryError
	case errors.Is(err, domain.ErrInsufficientMaterial):
		return http.StatusBadRequest, ErrMsgNotEnoughMaterialsErr
	case errors.Is(err, domain.ErrUnknownMaterial):
		return http.StatusBadRequest, ErrMsgUnknownMaterialError
	case errors.Is(err, domain.ErrQueueFull):
		return http.StatusConflict, ErrMsgQueueFullError
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, ErrMsgJobNotFoundError
	case errors.Is(err, domain.ErrJobCompleted):
		return http.StatusConflict, ErrMsgJobCompletedError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
