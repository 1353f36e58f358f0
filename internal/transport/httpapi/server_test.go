package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jsongrade"
	"github.com/kailas-cloud/jsongrade/internal/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(jsongrade.DefaultConfig(), 2, 10, zap.NewNop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestCompareEqual(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/compare",
		`{"expected": {"a": 1}, "actual": {"a": 1}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Equal bool           `json:"equal"`
		Diff  map[string]any `json:"diff"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Equal {
		t.Error("equal documents should report equal=true")
	}
	if len(resp.Diff) != 0 {
		t.Errorf("diff = %v, want empty", resp.Diff)
	}
}

func TestCompareMismatch(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/compare",
		`{"expected": {"a": 1}, "actual": {"a": 2}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Equal bool `json:"equal"`
		Diff  map[string]struct {
			Error string `json:"_error"`
		} `json:"diff"`
	}
	decodeBody(t, rec, &resp)
	if resp.Equal {
		t.Error("mismatched documents should report equal=false")
	}
	if resp.Diff["a"].Error != "ValuesNotEqual" {
		t.Errorf("diff = %v, want a ValuesNotEqual record under a", resp.Diff)
	}
}

func TestScore(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/score",
		`{"expected": {"a": 1, "b": 2}, "actual": {"a": 1, "b": 3}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp scoreResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 2 || resp.Failed != 1 {
		t.Errorf("count/failed = %d/%d, want 2/1", resp.Count, resp.Failed)
	}
	if resp.Similarity != 0.5 {
		t.Errorf("similarity = %v, want 0.5", resp.Similarity)
	}
}

func TestScoreWithWeights(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/score",
		`{"expected": {"a": 1, "b": 2}, "actual": {"a": 1, "b": 3}, "weights": {"b": 3}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp scoreResponse
	decodeBody(t, rec, &resp)
	if resp.WeightedCount != 4 || resp.WeightedFailed != 3 {
		t.Errorf("weighted count/failed = %v/%v, want 4/3", resp.WeightedCount, resp.WeightedFailed)
	}
	if resp.Similarity != 0.25 {
		t.Errorf("similarity = %v, want 0.25", resp.Similarity)
	}
}

func TestScoreInvalidWeightSpec(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/score",
		`{"expected": {}, "actual": {}, "weights": {"field": "heavy"}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorDTO
	decodeBody(t, rec, &resp)
	if resp.Code != "invalid_weight_spec" {
		t.Errorf("code = %q, want invalid_weight_spec", resp.Code)
	}
	if !strings.Contains(resp.Message, `"field"`) {
		t.Errorf("message %q should name the offending key", resp.Message)
	}
}

func TestScoreInvalidRules(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/score",
		`{"expected": {}, "actual": {}, "rules": {"field": "sometimes"}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorDTO
	decodeBody(t, rec, &resp)
	if resp.Code != "invalid_rules" {
		t.Errorf("code = %q, want invalid_rules", resp.Code)
	}
}

func TestCompareValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing actual", `{"expected": {"a": 1}}`},
		{"missing expected", `{"actual": {"a": 1}}`},
		{"not json", `hello`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/compare", c.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestScoreConfigOverride(t *testing.T) {
	s := newTestServer(t)

	// At the default precision 2 these round to equality.
	body := `{"expected": 1.23456, "actual": 1.23}`
	rec := doRequest(t, s, http.MethodPost, "/v1/score", body)
	var resp scoreResponse
	decodeBody(t, rec, &resp)
	if resp.Similarity != 1 {
		t.Fatalf("similarity = %v, want 1 at default precision", resp.Similarity)
	}

	// A negative override disables rounding for this request only.
	body = `{"expected": 1.23456, "actual": 1.23, "config": {"float_precision": -1}}`
	rec = doRequest(t, s, http.MethodPost, "/v1/score", body)
	decodeBody(t, rec, &resp)
	if resp.Similarity != 0 {
		t.Errorf("similarity = %v, want 0 with rounding disabled", resp.Similarity)
	}
}

func TestBatchScore(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"items": [
			{"expected": {"a": 1}, "actual": {"a": 1}},
			{"expected": {"a": 1}, "actual": {"a": 2}},
			{"expected": {}, "actual": {}, "weights": {"bad": "x"}}
		]
	}`
	rec := doRequest(t, s, http.MethodPost, "/v1/score/batch", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp batchScoreResponse
	decodeBody(t, rec, &resp)
	if resp.Succeeded != 2 || resp.Failed != 1 {
		t.Fatalf("succeeded/failed = %d/%d, want 2/1", resp.Succeeded, resp.Failed)
	}
	if resp.Items[0].Score == nil || resp.Items[0].Score.Similarity != 1 {
		t.Error("item 0 should score 1")
	}
	if resp.Items[1].Score == nil || resp.Items[1].Score.Similarity != 0 {
		t.Error("item 1 should score 0")
	}
	if resp.Items[2].Error == nil || resp.Items[2].Error.Code != "invalid_weight_spec" {
		t.Errorf("item 2 error = %+v, want invalid_weight_spec", resp.Items[2].Error)
	}
}

func TestBatchScoreMetrics(t *testing.T) {
	s := newTestServer(t)

	okBefore := testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("batch", "ok"))
	errBefore := testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("batch", "error"))

	body := `{
		"items": [
			{"expected": 1, "actual": 1},
			{"expected": 1, "actual": 2},
			{"expected": {}, "actual": {}, "weights": {"bad": "x"}}
		]
	}`
	doRequest(t, s, http.MethodPost, "/v1/score/batch", body)

	// Batch traffic is counted under its own operation label, separate
	// from single-score calls.
	okGrew := testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("batch", "ok")) - okBefore
	if okGrew != 2 {
		t.Errorf("comparisons_total{batch,ok} grew by %v, want 2", okGrew)
	}
	errGrew := testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("batch", "error")) - errBefore
	if errGrew != 1 {
		t.Errorf("comparisons_total{batch,error} grew by %v, want 1", errGrew)
	}
}

func TestBatchScoreSharedConfig(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"items": [
			{"expected": 1.23456, "actual": 1.23},
			{"expected": 1.23456, "actual": 1.23, "config": {"float_precision": 4}}
		],
		"config": {"float_precision": -1}
	}`
	rec := doRequest(t, s, http.MethodPost, "/v1/score/batch", body)

	var resp batchScoreResponse
	decodeBody(t, rec, &resp)
	// Item 0 inherits the batch config (rounding off), item 1 overrides it.
	if resp.Items[0].Score.Similarity != 0 {
		t.Errorf("item 0 similarity = %v, want 0", resp.Items[0].Score.Similarity)
	}
	if resp.Items[1].Score.Similarity != 0 {
		t.Errorf("item 1 similarity = %v, want 0 at precision 4", resp.Items[1].Score.Similarity)
	}
}

func TestBatchScoreValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("empty batch", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/v1/score/batch", `{"items": []}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("oversized batch", func(t *testing.T) {
		items := make([]string, 11)
		for i := range items {
			items[i] = `{"expected": 1, "actual": 1}`
		}
		body := `{"items": [` + strings.Join(items, ",") + `]}`
		rec := doRequest(t, s, http.MethodPost, "/v1/score/batch", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}

func TestBearerAuth(t *testing.T) {
	s := newTestServer(t).WithAPIKeys([]string{"secret-key"})
	body := `{"expected": 1, "actual": 1}`

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/v1/compare", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/compare", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/compare", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer secret-key")
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("healthz exempt", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/healthz", "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}
