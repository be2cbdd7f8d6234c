// Package chi serves the searchscope HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchscope/internal/domain"
	"github.com/kailas-cloud/searchscope/internal/domain/date"
	"github.com/kailas-cloud/searchscope/internal/domain/fieldpath"
	fieldsuc "github.com/kailas-cloud/searchscope/internal/usecase/fields"
	healthuc "github.com/kailas-cloud/searchscope/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface.
type Server struct {
	fields        *fieldsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(fields *fieldsuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		fields: fields,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		invalidFormatHandler,
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrUnknownIndexType, http.StatusNotFound, ErrorCodeUnknownIndexType),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
	}
	return s
}

// ListFields handles GET /indexes/{indexType}/fields.
func (s *Server) ListFields(w http.ResponseWriter, r *http.Request, indexType string) {
	privileged := Privileged(r.Context())
	fields, err := s.fields.Fields(r.Context(), indexType, privileged)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FieldsResponse{
		IndexType:  indexType,
		Privileged: privileged,
		Fields:     fields,
	})
}

// ListHidden handles GET /indexes/{indexType}/hidden.
func (s *Server) ListHidden(w http.ResponseWriter, r *http.Request, indexType string) {
	hidden, err := s.fields.Hidden(r.Context(), indexType)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HiddenResponse{IndexType: indexType, Fields: hidden})
}

// BuildQuery handles GET /indexes/{indexType}/query.
func (s *Server) BuildQuery(w http.ResponseWriter, r *http.Request, indexType string, params QueryParams) {
	boost, err := boostFromParams(params.Boost)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	q, fields, err := s.fields.Query(r.Context(), indexType, params.Q, Privileged(r.Context()), boost)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Fields: fields, Query: q})
}

// NormalizeDate handles GET /dates/normalize.
func (s *Server) NormalizeDate(w http.ResponseWriter, r *http.Request, params NormalizeDateParams) {
	end := params.End != nil && *params.End
	normalized, err := date.NormalizeIncomplete(params.Date, end)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := DateResponse{Date: params.Date}
	if normalized != "" {
		resp.Normalized = &normalized
	}
	writeJSON(w, http.StatusOK, resp)
}

// ConvertDate handles GET /dates/convert.
func (s *Server) ConvertDate(w http.ResponseWriter, r *http.Request, params ConvertDateParams) {
	converted, err := date.Convert(params.Date)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := DateResponse{Date: params.Date}
	if converted != "" {
		resp.Normalized = &converted
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// boostFromParams parses field^factor entries.
func boostFromParams(entries *[]string) (fieldpath.Boost, error) {
	if entries == nil || len(*entries) == 0 {
		return nil, nil
	}
	boost := make(fieldpath.Boost, len(*entries))
	for _, e := range *entries {
		field, factor, ok := fieldpath.Split(e)
		if !ok || field == "" {
			return nil, fmt.Errorf("boost %q must be field^factor", e)
		}
		boost[field] = factor
	}
	return boost, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe error message without exposing internals.
func safeDomainMessage(err error) string {
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	var fe *domain.InvalidFormatError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidFormatHandler reports the expected format alongside the message.
func invalidFormatHandler(w http.ResponseWriter, err error, msg string) bool {
	var fe *domain.InvalidFormatError
	if !errors.As(err, &fe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":     ErrorCodeInvalidFormat,
		"message":  msg,
		"value":    fe.Value,
		"expected": fe.Expected,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if id := chiMiddleware.GetReqID(r.Context()); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
