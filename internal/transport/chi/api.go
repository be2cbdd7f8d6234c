package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInvalidFormat    ErrorCode = "invalid_format"
	ErrorCodeUnknownIndexType ErrorCode = "unknown_index_type"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FieldsResponse lists the fields a caller may query.
type FieldsResponse struct {
	IndexType  string   `json:"index_type"`
	Privileged bool     `json:"privileged"`
	Fields     []string `json:"fields"`
}

// HiddenResponse lists the fields public callers lose.
type HiddenResponse struct {
	IndexType string   `json:"index_type"`
	Fields    []string `json:"fields"`
}

// QueryResponse carries a bleve query and the fields it targets.
type QueryResponse struct {
	Fields []string `json:"fields"`
	Query  any      `json:"query"`
}

// DateResponse carries a normalized or converted date. Normalized is null
// for an empty date.
type DateResponse struct {
	Date       string  `json:"date"`
	Normalized *string `json:"normalized"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// QueryParams are the query parameters of GET /indexes/{indexType}/query.
type QueryParams struct {
	Q string
	// Boost entries are field^factor; field may be a culture pattern (i18n.%s.title).
	Boost *[]string
}

// NormalizeDateParams are the query parameters of GET /dates/normalize.
type NormalizeDateParams struct {
	Date string
	End  *bool
}

// ConvertDateParams are the query parameters of GET /dates/convert.
type ConvertDateParams struct {
	Date string
}

// ServerInterface is implemented by Server.
type ServerInterface interface {
	ListFields(w http.ResponseWriter, r *http.Request, indexType string)
	ListHidden(w http.ResponseWriter, r *http.Request, indexType string)
	BuildQuery(w http.ResponseWriter, r *http.Request, indexType string, params QueryParams)
	NormalizeDate(w http.ResponseWriter, r *http.Request, params NormalizeDateParams)
	ConvertDate(w http.ResponseWriter, r *http.Request, params ConvertDateParams)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ParamErrorHandler reports a parameter binding failure.
type ParamErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Handler mounts si on r. onParamError defaults to a 400 JSON response.
func Handler(si ServerInterface, r chi.Router, onParamError ParamErrorHandler) {
	if onParamError == nil {
		onParamError = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		}
	}

	r.Get("/indexes/{indexType}/fields", func(w http.ResponseWriter, r *http.Request) {
		si.ListFields(w, r, chi.URLParam(r, "indexType"))
	})
	r.Get("/indexes/{indexType}/hidden", func(w http.ResponseWriter, r *http.Request) {
		si.ListHidden(w, r, chi.URLParam(r, "indexType"))
	})
	r.Get("/indexes/{indexType}/query", func(w http.ResponseWriter, r *http.Request) {
		var params QueryParams
		if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &params.Q); err != nil {
			onParamError(w, r, err)
			return
		}
		if err := runtime.BindQueryParameter("form", true, false, "boost", r.URL.Query(), &params.Boost); err != nil {
			onParamError(w, r, err)
			return
		}
		si.BuildQuery(w, r, chi.URLParam(r, "indexType"), params)
	})
	r.Get("/dates/normalize", func(w http.ResponseWriter, r *http.Request) {
		var params NormalizeDateParams
		if err := runtime.BindQueryParameter("form", true, true, "date", r.URL.Query(), &params.Date); err != nil {
			onParamError(w, r, err)
			return
		}
		if err := runtime.BindQueryParameter("form", true, false, "end", r.URL.Query(), &params.End); err != nil {
			onParamError(w, r, err)
			return
		}
		si.NormalizeDate(w, r, params)
	})
	r.Get("/dates/convert", func(w http.ResponseWriter, r *http.Request) {
		var params ConvertDateParams
		if err := runtime.BindQueryParameter("form", true, true, "date", r.URL.Query(), &params.Date); err != nil {
			onParamError(w, r, err)
			return
		}
		si.ConvertDate(w, r, params)
	})
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)
}
