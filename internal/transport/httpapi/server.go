// Package httpapi exposes the comparison engine over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jsongrade"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
	"github.com/kailas-cloud/jsongrade/internal/ignore"
	logpkg "github.com/kailas-cloud/jsongrade/internal/logger"
	"github.com/kailas-cloud/jsongrade/internal/metrics"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server handles the compare/score HTTP API.
type Server struct {
	defaultCfg    jsongrade.Config
	batchWorkers  int
	maxBatchSize  int
	apiKeys       []string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. defaultCfg is the engine
// configuration applied when a request carries no config overrides.
func NewServer(defaultCfg jsongrade.Config, batchWorkers, maxBatchSize int, logger *zap.Logger) *Server {
	s := &Server{
		defaultCfg:   defaultCfg,
		batchWorkers: batchWorkers,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		invalidSpecHandler,
		sentinelHandler(ignore.ErrInvalidRules, http.StatusBadRequest, "invalid_rules"),
		sentinelHandler(jsongrade.ErrMalformedInput, http.StatusBadRequest, "malformed_input"),
	}
	return s
}

// WithAPIKeys enables bearer-token authentication on the API routes.
// An empty key set leaves the API open.
func (s *Server) WithAPIKeys(keys []string) *Server {
	s.apiKeys = keys
	return s
}

// compareRequest is the body of POST /v1/compare and /v1/score.
type compareRequest struct {
	Expected json.RawMessage `json:"expected"`
	Actual   json.RawMessage `json:"actual"`
	Weights  any             `json:"weights,omitempty"`
	Rules    any             `json:"rules,omitempty"`
	Config   *configDTO      `json:"config,omitempty"`
}

// configDTO carries per-request engine overrides.
type configDTO struct {
	FloatPrecision    *int  `json:"float_precision,omitempty"`
	CheckLength       *bool `json:"check_length,omitempty"`
	LengthDiffPenalty *bool `json:"length_diff_penalty,omitempty"`
}

type compareResponse struct {
	Equal bool           `json:"equal"`
	Diff  jsongrade.Diff `json:"diff"`
}

type scoreResponse struct {
	Diff           jsongrade.Diff `json:"diff"`
	Count          uint64         `json:"count"`
	WeightedCount  float64        `json:"weighted_count"`
	Failed         uint64         `json:"failed"`
	WeightedFailed float64        `json:"weighted_failed"`
	Similarity     float64        `json:"similarity"`
}

// Compare handles POST /v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	res, err := s.score(req)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("compare", "error").Inc()
		s.handleDomainError(r.Context(), w, err)
		return
	}

	metrics.ComparisonsTotal.WithLabelValues("compare", "ok").Inc()
	metrics.ComparisonDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, compareResponse{
		Equal: res.Diff.Empty(),
		Diff:  res.Diff,
	})
}

// Score handles POST /v1/score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	res, err := s.score(req)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("score", "error").Inc()
		s.handleDomainError(r.Context(), w, err)
		return
	}

	metrics.ComparisonsTotal.WithLabelValues("score", "ok").Inc()
	metrics.ComparisonDuration.WithLabelValues("score").Observe(time.Since(start).Seconds())
	metrics.SimilarityScore.Observe(res.Similarity)

	writeJSON(w, http.StatusOK, scoreResultToDTO(res))
}

// batchScoreRequest is the body of POST /v1/score/batch. Config applies to
// every item; weights and rules are per item.
type batchScoreRequest struct {
	Items  []compareRequest `json:"items"`
	Config *configDTO       `json:"config,omitempty"`
}

type batchScoreResponse struct {
	Items     []batchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

type batchResultItem struct {
	Score *scoreResponse `json:"score,omitempty"`
	Error *errorDTO      `json:"error,omitempty"`
}

type errorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchScore handles POST /v1/score/batch. Items are independent pure
// computations, so they are fanned out over a bounded worker pool.
func (s *Server) BatchScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) == 0 || len(req.Items) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, "validation_failed",
			fmt.Sprintf("items count must be between 1 and %d", s.maxBatchSize))
		return
	}

	items := make([]batchResultItem, len(req.Items))
	sem := make(chan struct{}, s.batchWorkers)
	var wg sync.WaitGroup
	for i := range req.Items {
		item := &req.Items[i]
		if item.Config == nil {
			item.Config = req.Config
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := s.score(*item)
			if err != nil {
				items[i] = batchResultItem{Error: itemError(err)}
				return
			}
			metrics.SimilarityScore.Observe(res.Similarity)
			dto := scoreResultToDTO(res)
			items[i] = batchResultItem{Score: &dto}
		}(i)
	}
	wg.Wait()

	succeeded, failed := 0, 0
	for _, item := range items {
		if item.Error != nil {
			failed++
		} else {
			succeeded++
		}
	}
	metrics.ComparisonsTotal.WithLabelValues("batch", "ok").Add(float64(succeeded))
	metrics.ComparisonsTotal.WithLabelValues("batch", "error").Add(float64(failed))
	metrics.ComparisonDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, batchScoreResponse{
		Items:     items,
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// Healthz handles GET /healthz. The engine has no external collaborators to
// probe, so liveness is all there is.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (compareRequest, bool) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return compareRequest{}, false
	}
	if len(req.Expected) == 0 || len(req.Actual) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "expected and actual are required")
		return compareRequest{}, false
	}
	return req, true
}

// score builds a comparer for the request and runs it. Document decoding
// goes through the order-preserving JSON path so diff output is stable.
func (s *Server) score(req compareRequest) (jsongrade.Result, error) {
	comparer, err := jsongrade.New(
		jsongrade.WithConfig(s.requestConfig(req.Config)),
		jsongrade.WithWeights(req.Weights),
		jsongrade.WithRules(req.Rules),
	)
	if err != nil {
		return jsongrade.Result{}, err
	}
	return comparer.ScoreJSON(bytes.NewReader(req.Expected), bytes.NewReader(req.Actual))
}

func (s *Server) requestConfig(dto *configDTO) jsongrade.Config {
	cfg := s.defaultCfg
	if dto == nil {
		return cfg
	}
	if dto.FloatPrecision != nil {
		if *dto.FloatPrecision < 0 {
			cfg.FloatPrecision = nil
		} else {
			cfg.FloatPrecision = dto.FloatPrecision
		}
	}
	if dto.CheckLength != nil {
		cfg.CheckLength = *dto.CheckLength
	}
	if dto.LengthDiffPenalty != nil {
		cfg.LengthDiffPenalty = *dto.LengthDiffPenalty
	}
	return cfg
}

func scoreResultToDTO(res jsongrade.Result) scoreResponse {
	return scoreResponse{
		Diff:           res.Diff,
		Count:          res.Count,
		WeightedCount:  res.WeightedCount,
		Failed:         res.Failed,
		WeightedFailed: res.WeightedFailed,
		Similarity:     res.Similarity,
	}
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logpkg.FromContext(ctx)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func itemError(err error) *errorDTO {
	switch {
	case errors.Is(err, weight.ErrInvalidSpec):
		return &errorDTO{Code: "invalid_weight_spec", Message: safeMessage(err)}
	case errors.Is(err, ignore.ErrInvalidRules):
		return &errorDTO{Code: "invalid_rules", Message: safeMessage(err)}
	case errors.Is(err, jsongrade.ErrMalformedInput):
		return &errorDTO{Code: "malformed_input", Message: safeMessage(err)}
	default:
		return &errorDTO{Code: "internal_error", Message: "internal error"}
	}
}

// safeMessage returns a client-facing message without exposing internals.
func safeMessage(err error) string {
	var specErr *weight.InvalidSpecError
	if errors.As(err, &specErr) {
		return specErr.Error()
	}
	sentinels := []error{weight.ErrInvalidSpec, ignore.ErrInvalidRules, jsongrade.ErrMalformedInput}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}
	return "internal error"
}

// invalidSpecHandler reports the offending weight-spec key to the client.
func invalidSpecHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, weight.ErrInvalidSpec) {
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid_weight_spec", safeMessage(err))
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeMessage(err))
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorDTO{
		Code:    code,
		Message: message,
	})
}
