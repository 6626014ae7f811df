package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    gderrors.Code `json:"code"`
	Message string        `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code gderrors.Code) int {
	switch code {
	case gderrors.ErrCodeInvalidInput,
		gderrors.ErrCodeInvalidSpec,
		gderrors.ErrCodeInvalidScene,
		gderrors.ErrCodeInvalidFormat,
		gderrors.ErrCodeInvalidConfig,
		gderrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case gderrors.ErrCodeUnsupportedVersion,
		gderrors.ErrCodeDanglingReference:
		return http.StatusUnprocessableEntity
	case gderrors.ErrCodeNotFound,
		gderrors.ErrCodeSceneNotFound,
		gderrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case gderrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a JSON error response. Uncoded errors become
// INTERNAL_ERROR and their text is not exposed.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := gderrors.GetCode(err)
	msg := gderrors.UserMessage(err)
	if code == "" {
		code = gderrors.ErrCodeInternal
		msg = "internal error"
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		code = gderrors.ErrCodeInvalidInput
		msg = "request body too large"
	}

	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Debug("request rejected", "code", code, "error", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusLabel(status int) string {
	if status == 0 {
		status = http.StatusOK
	}
	return strconv.Itoa(status)
}
