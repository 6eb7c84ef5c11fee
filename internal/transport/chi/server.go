// Package chi exposes the search session, cursor continuation and
// application purge over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/appindex/internal/domain"
	healthuc "github.com/kailas-cloud/appindex/internal/usecase/health"
	purgeuc "github.com/kailas-cloud/appindex/internal/usecase/purge"
	searchuc "github.com/kailas-cloud/appindex/internal/usecase/search"
)

// Error codes returned in response bodies.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeInvalidQuery       = "invalid_query"
	codeCursorNotFound     = "cursor_not_found"
	codeCorruptCursor      = "corrupt_cursor_state"
	codeBackendUnavailable = "backend_unavailable"
	codeInternalError      = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Limits bounds the page size a caller may request.
type Limits struct {
	Default int
	Max     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the search, purge and health services.
type Server struct {
	search        *searchuc.Session
	purge         *purgeuc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Session,
	purge *purgeuc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.Default <= 0 {
		limits.Default = 10
	}
	if limits.Max <= 0 {
		limits.Max = 1000
	}
	s := &Server{
		search: search,
		purge:  purge,
		health: health,
		limits: limits,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrQueryParse, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCursorNotFound, http.StatusNotFound, codeCursorNotFound),
		sentinelHandler(domain.ErrCorruptCursorState, http.StatusInternalServerError, codeCorruptCursor),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, codeBackendUnavailable),
		sentinelHandler(domain.ErrMalformedHit, http.StatusInternalServerError, codeInternalError),
	}
	return s
}

// Routes mounts all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/applications/{applicationID}/search", s.SearchApplication)
	r.Post("/v1/search/cursor/{cursor}", s.ContinueSearch)
	r.Delete("/v1/applications/{applicationID}", s.DeleteApplication)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchRequest is the body of POST /v1/applications/{applicationID}/search.
type SearchRequest struct {
	// NodeID is the source node of the searched edge. Defaults to the
	// application itself when omitted.
	NodeID   string   `json:"node_id,omitempty"`
	EdgeName string   `json:"edge_name"`
	Types    []string `json:"types,omitempty"`
	Query    string   `json:"query,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// CandidateItem is one search hit: the entity id and its indexed version.
type CandidateItem struct {
	EntityID      string `json:"entity_id"`
	EntityVersion string `json:"entity_version"`
}

// FieldMapping is one select projection of the originating query.
type FieldMapping struct {
	SourceField string `json:"source_field"`
	TargetField string `json:"target_field"`
}

// SearchResponse is one page of candidates, with a cursor when more data is
// available.
type SearchResponse struct {
	Candidates   []CandidateItem `json:"candidates"`
	SelectFields []FieldMapping  `json:"select_fields,omitempty"`
	Cursor       string          `json:"cursor,omitempty"`
	Size         int             `json:"size"`
}

// SearchApplication handles POST /v1/applications/{applicationID}/search.
func (s *Server) SearchApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid application id")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.EdgeName == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "edge_name is required")
		return
	}

	nodeID := applicationID
	if req.NodeID != "" {
		nodeID, err = uuid.Parse(req.NodeID)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid node id")
			return
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.limits.Default
	}
	if limit > s.limits.Max {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit exceeds maximum")
		return
	}

	scope, err := domain.NewApplicationScope(applicationID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	edge, err := domain.NewSearchEdge(nodeID, req.EdgeName)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(
		r.Context(), scope, edge, domain.NewSearchTypes(req.Types...), req.Query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsToResponse(results))
}

// ContinueSearch handles POST /v1/search/cursor/{cursor}.
func (s *Server) ContinueSearch(w http.ResponseWriter, r *http.Request) {
	cursor := chi.URLParam(r, "cursor")

	results, err := s.search.Continue(r.Context(), cursor)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsToResponse(results))
}

// DeleteOutcomeItem is the per-index completion of one delete branch.
type DeleteOutcomeItem struct {
	Index         string `json:"index"`
	Deleted       int64  `json:"deleted"`
	ShardFailures int    `json:"shard_failures"`
	Error         string `json:"error,omitempty"`
}

// DeleteResponse summarizes an application delete fan-out.
type DeleteResponse struct {
	Outcomes []DeleteOutcomeItem `json:"outcomes"`
	Deleted  int64               `json:"deleted"`
}

// DeleteApplication handles DELETE /v1/applications/{applicationID}.
func (s *Server) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid application id")
		return
	}

	scope, err := domain.NewApplicationScope(applicationID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	outcomes, err := s.purge.DeleteApplication(r.Context(), scope)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := DeleteResponse{Outcomes: make([]DeleteOutcomeItem, len(outcomes))}
	for i, o := range outcomes {
		item := DeleteOutcomeItem{
			Index:         o.Index,
			Deleted:       o.Deleted,
			ShardFailures: len(o.ShardFailures),
		}
		if o.Err != nil {
			item.Error = codeBackendUnavailable
		}
		resp.Outcomes[i] = item
		resp.Deleted += o.Deleted
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthResponse reports aggregated component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultsToResponse(results domain.CandidateResults) SearchResponse {
	resp := SearchResponse{
		Candidates: make([]CandidateItem, results.Size()),
		Cursor:     results.Cursor(),
		Size:       results.Size(),
	}
	for i, c := range results.Candidates() {
		resp.Candidates[i] = CandidateItem{
			EntityID:      c.EntityID().String(),
			EntityVersion: c.EntityVersion().String(),
		}
	}
	for _, m := range results.SelectFieldMappings() {
		resp.SelectFields = append(resp.SelectFields, FieldMapping{
			SourceField: m.SourceField(),
			TargetField: m.TargetField(),
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var cnf *domain.CursorNotFoundError
	if errors.As(err, &cnf) {
		return cnf.Error()
	}

	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrQueryParse,
		domain.ErrCursorNotFound,
		domain.ErrCorruptCursorState,
		domain.ErrBackendUnavailable,
		domain.ErrMalformedHit,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
