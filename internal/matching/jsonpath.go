package matching

import (
	"encoding/json"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

// MatchJSONPath evaluates JSONPath conditions against a JSON request body.
// Every condition must hold: each JSONPath expression is evaluated against
// the parsed body and at least one of its results must equal the expected
// value. Returns ScoreJSONPath per condition on success, 0 if the body is
// not valid JSON or any condition fails.
func MatchJSONPath(conditions map[string]any, body []byte) int {
	if len(conditions) == 0 {
		return 0
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return 0
	}

	score := 0
	for path, expected := range conditions {
		expr, err := jp.ParseString(path)
		if err != nil {
			return 0
		}
		if !anyResultEquals(expr.Get(data), expected) {
			return 0
		}
		score += ScoreJSONPath
	}
	return score
}

// anyResultEquals reports whether any JSONPath result equals the expected
// value under JSON value semantics.
func anyResultEquals(results []any, expected any) bool {
	for _, r := range results {
		if jsonValuesEqual(r, expected) {
			return true
		}
	}
	return false
}

// jsonValuesEqual compares two values with numeric coercion, since JSON
// decoding yields float64 while expectations loaded from YAML or written in
// Go code are often int.
func jsonValuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	an, aok := toFloat64(actual)
	en, eok := toFloat64(expected)
	return aok && eok && an == en
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
