// Package schemas embeds the JSON Schema contracts for artifacts the service emits.
package schemas

import _ "embed"

// ScoreReport is the JSON Schema for the score report returned by /api/score and `score --json`.
//
//go:embed score_report.schema.json
var ScoreReport []byte
