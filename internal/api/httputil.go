package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	apierrs "jobverse/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encode json response: %w", err)
	}

	return nil
}

type validator interface {
	Validate() error
}

// decodeValid decodes a request body and validates it. Both failures come
// back as 400s.
func decodeValid[V validator](r io.Reader) (V, error) {
	var v V
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return v, apierrs.E(http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
	}
	if err := v.Validate(); err != nil {
		return v, err
	}

	return v, nil
}

// parseLimit reads ?limit, falling back to defaultLimit when absent or
// invalid and capping at maxLimit.
func parseLimit(r *http.Request, defaultLimit, maxLimit uint64) uint64 {
	limit, err := strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit == 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// handlerFuncE is an http.HandlerFunc that returns an error.
type handlerFuncE func(w http.ResponseWriter, r *http.Request) error

// errHandler renders the error a handlerFuncE returns. Structured errors are
// written as is; anything else is logged and becomes a 500.
type errHandler struct {
	f      handlerFuncE
	logger *slog.Logger
}

func (h errHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.f(w, r); err != nil {
		writeError(w, r, err, h.logger)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	apiErr := &apierrs.Error{}
	if !errors.As(err, &apiErr) {
		logger.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		apiErr = apierrs.E(http.StatusInternalServerError, "internal server error")
	}

	if err := writeJSON(w, apiErr.Status, apiErr); err != nil {
		logger.Error("write error response", "error", err)
	}
}

type errRouter struct {
	*mux.Router
	logger *slog.Logger
}

func (r errRouter) HandleFuncE(path string, f handlerFuncE) *mux.Route {
	return r.Handle(path, errHandler{f: f, logger: r.logger})
}

func accessLogMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			writer := &respCodeWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(writer, r)

			logger.Info("request completed",
				"method", r.Method,
				"url", r.URL.String(),
				"duration", time.Since(start),
				"status_code", writer.code,
			)
		})
	}
}

// To trap the response status code for logging later.
type respCodeWriter struct {
	http.ResponseWriter
	code int
}

func (w *respCodeWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
