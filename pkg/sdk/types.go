package sdk

import "encoding/json"

// CompareRequest is the payload for Compare and Score. Expected and Actual
// are raw JSON documents; Weights and Rules take the same generic trees the
// jsongrade library accepts.
type CompareRequest struct {
	Expected json.RawMessage `json:"expected"`
	Actual   json.RawMessage `json:"actual"`
	Weights  any             `json:"weights,omitempty"`
	Rules    any             `json:"rules,omitempty"`
	Config   *Config         `json:"config,omitempty"`
}

// Config carries per-request engine overrides. Nil fields keep the server's
// defaults; a negative FloatPrecision disables rounding.
type Config struct {
	FloatPrecision    *int  `json:"float_precision,omitempty"`
	CheckLength       *bool `json:"check_length,omitempty"`
	LengthDiffPenalty *bool `json:"length_diff_penalty,omitempty"`
}

// CompareResult is the response of Compare. Diff is the rendered explanation
// document, an empty object when the documents matched.
type CompareResult struct {
	Equal bool            `json:"equal"`
	Diff  json.RawMessage `json:"diff"`
}

// ScoreResult is the response of Score and of each successful batch item.
type ScoreResult struct {
	Diff           json.RawMessage `json:"diff"`
	Count          uint64          `json:"count"`
	WeightedCount  float64         `json:"weighted_count"`
	Failed         uint64          `json:"failed"`
	WeightedFailed float64         `json:"weighted_failed"`
	Similarity     float64         `json:"similarity"`
}

// BatchRequest is the payload for ScoreBatch. Config applies to every item
// that carries no config of its own.
type BatchRequest struct {
	Items  []CompareRequest `json:"items"`
	Config *Config          `json:"config,omitempty"`
}

// BatchResult is the response of ScoreBatch. Items are in request order;
// each one holds either a score or an error.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// BatchItem is one outcome in a batch response.
type BatchItem struct {
	Score *ScoreResult `json:"score,omitempty"`
	Error *APIError    `json:"error,omitempty"`
}
