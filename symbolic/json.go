package symbolic

import "encoding/json"

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes the expression tree, e.g. {"type":"sym","name":"x"}.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// Tree returns the expression tree as nested maps, ready to embed in a
// larger JSON document.
func Tree(e Expr) map[string]interface{} { return e.toJSON() }
