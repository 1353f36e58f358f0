// Package sdk is a Go client for the jsongrade HTTP API. It mirrors the
// /v1/compare, /v1/score and /v1/score/batch endpoints; for in-process
// comparison use the root jsongrade package instead.
package sdk
