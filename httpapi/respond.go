package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/awsgate/awsgate"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is a programming error and reports as 500.
func statusFor(err error) int {
	switch {
	case awsgate.IsValidationError(err):
		return http.StatusBadRequest
	case awsgate.IsNotFoundError(err):
		return http.StatusNotFound
	case awsgate.IsUpstreamError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encoding response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFrom(r.Context())),
		)
	}

	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

// decode unmarshals and structurally validates a JSON request body.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return awsgate.NewValidationError("decoding request body: %v", err)
	}

	if err := h.validate.Struct(dst); err != nil {
		return awsgate.NewValidationError("invalid request body: %v", err)
	}

	return nil
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", awsgate.NewValidationError("%s query parameter is required", name)
	}

	return v, nil
}

func intQuery(r *http.Request, name string) (int32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, awsgate.NewValidationError("%s must be an integer", name)
	}

	return int32(n), nil
}
