package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/obs"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidDateFormat = "INVALID_DATE_FORMAT"
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

const (
	msgInvalidDate   = "Invalid date format. Please use yyyy-MM-dd HH:mm:ss."
	msgBadRequest    = "Invalid request. Please check the input parameters."
	msgPriceNotFound = "Price not found."
	msgNoResource    = "Resource not found."
	msgConflict      = "Price was modified concurrently. Please retry."
	msgInternal      = "An unexpected error occurred."
)

// errInvalidDateFormat marks request values that are not yyyy-MM-dd HH:mm:ss.
var errInvalidDateFormat = errors.New("invalid date format")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, code, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message, Details: details})
}

// writeError maps err onto a status code and error body. Client errors
// are logged at warn level, everything else at error level.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, code, message := classify(err)

	details := err.Error()
	if status == http.StatusInternalServerError {
		details = ""
		obs.Logger.Error("request failed", "error", err, "request_id", middleware.GetReqID(ctx))
	} else {
		obs.Logger.Warn("request rejected", "code", code, "error", err, "request_id", middleware.GetReqID(ctx))
	}

	WriteJSONError(w, status, code, message, details)
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, errInvalidDateFormat), errors.Is(err, domain.ErrInvalidDateFormat):
		return http.StatusBadRequest, CodeInvalidDateFormat, msgInvalidDate
	case errors.Is(err, errBadRequest), errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, CodeBadRequest, msgBadRequest
	case errors.Is(err, domain.ErrPriceNotFound):
		return http.StatusNotFound, CodeNotFound, msgPriceNotFound
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, CodeConflict, msgConflict
	default:
		return http.StatusInternalServerError, CodeInternal, msgInternal
	}
}
