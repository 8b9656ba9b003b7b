package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/prefs"
)

// apiError is the JSON error body: {"error": {"code", "message"}}.
type apiError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *apiError) Error() string { return e.Message }

func (e *apiError) Unwrap() error { return e.Internal }

var (
	errInvalidInput = &apiError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	errNoRoute      = &apiError{Code: "NOT_FOUND", Message: "No such endpoint", StatusCode: http.StatusNotFound}
	errDebtNotFound = &apiError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	errUnknownTheme = &apiError{Code: "UNKNOWN_THEME", Message: "Unknown theme", StatusCode: http.StatusBadRequest}
	errUnavailable  = &apiError{Code: "STORE_UNAVAILABLE", Message: "Storage is unavailable", StatusCode: http.StatusServiceUnavailable}
	errMalformed    = &apiError{Code: "MALFORMED_DATA", Message: "Stored data is unreadable", StatusCode: http.StatusInternalServerError}
	errInternal     = &apiError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

func withMessage(sentinel *apiError, message string) *apiError {
	return &apiError{Code: sentinel.Code, Message: message, StatusCode: sentinel.StatusCode}
}

func wrap(sentinel *apiError, internal error) *apiError {
	return &apiError{Code: sentinel.Code, Message: sentinel.Message, StatusCode: sentinel.StatusCode, Internal: internal}
}

// toAPIError maps store and validation sentinels onto HTTP errors.
func toAPIError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, ledger.ErrInvalidDebt), errors.Is(err, ledger.ErrInvalidPayment):
		return withMessage(errInvalidInput, err.Error())
	case errors.Is(err, prefs.ErrUnknownTheme):
		return errUnknownTheme
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return wrap(errUnavailable, err)
	case errors.Is(err, ledger.ErrMalformedData):
		return wrap(errMalformed, err)
	}
	return wrap(errInternal, err)
}

func respondWithError(c *gin.Context, log *zap.SugaredLogger, err error) {
	ae := toAPIError(err)
	if ae.Internal != nil {
		log.Errorw("request failed",
			"code", ae.Code,
			"error", ae.Internal.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}
	c.AbortWithStatusJSON(ae.StatusCode, gin.H{
		"error": gin.H{
			"code":    ae.Code,
			"message": ae.Message,
		},
	})
}

// respondJSON encodes v before writing headers. A value that cannot be
// encoded, such as a non-finite number, becomes a MALFORMED_DATA error.
func respondJSON(c *gin.Context, log *zap.SugaredLogger, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		respondWithError(c, log, wrap(errMalformed, fmt.Errorf("encoding response: %w", err)))
		return
	}
	c.Data(status, "application/json; charset=utf-8", raw)
}
