package calculator

import (
	"encoding/json"
	"fmt"
	"math"
)

// CalcRequest is the JSON body for POST /api/calculate. Operands are
// pointers so a missing or null operand is distinguishable from zero.
type CalcRequest struct {
	Operation Operation `json:"operation"`
	A         *float64  `json:"a"`
	B         *float64  `json:"b"`
}

func (r *CalcRequest) UnmarshalJSON(data []byte) error {
	return unmarshalFields(data, map[string]any{
		"operation": &r.Operation,
		"a":         &r.A,
		"b":         &r.B,
	})
}

func (r CalcRequest) Validate() error {
	if r.Operation == "" || r.A == nil || r.B == nil {
		return fmt.Errorf("%w: operation and both operands are required", ErrInvalidInput)
	}
	return nil
}

// Result holds either a number or a sentinel string.
type Result struct {
	value    float64
	sentinel string
}

func Number(v float64) Result { return Result{value: v} }

func Sentinel(s string) Result { return Result{sentinel: s} }

// Float64 reports the numeric value and whether the result is numeric.
func (r Result) Float64() (float64, bool) {
	return r.value, r.sentinel == ""
}

func (r Result) String() string {
	if r.sentinel != "" {
		return r.sentinel
	}
	return fmt.Sprintf("%g", r.value)
}

// MarshalJSON encodes a sentinel as a string. Non-finite numbers become
// null, the way JSON.stringify encodes them.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.sentinel != "" {
		return json.Marshal(r.sentinel)
	}
	if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// CalcResponse is the JSON response for POST /api/calculate.
type CalcResponse struct {
	Operation Operation `json:"operation"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Result    Result    `json:"result"`
	Timestamp string    `json:"timestamp"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    Operation `json:"op"`
	Value *float64  `json:"value"` // applied to the running total
}

func (s *ChainStep) UnmarshalJSON(data []byte) error {
	return unmarshalFields(data, map[string]any{
		"op":    &s.Op,
		"value": &s.Value,
	})
}

// ChainRequest is the JSON body for POST /api/calculate/chain.
type ChainRequest struct {
	Initial *float64    `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

func (r *ChainRequest) UnmarshalJSON(data []byte) error {
	return unmarshalFields(data, map[string]any{
		"initial": &r.Initial,
		"steps":   &r.Steps,
	})
}

func (r ChainRequest) Validate() error {
	if r.Initial == nil {
		return fmt.Errorf("%w: initial value is required", ErrInvalidInput)
	}
	if len(r.Steps) == 0 {
		return fmt.Errorf("%w: steps array is empty", ErrInvalidInput)
	}
	for i, step := range r.Steps {
		if step.Op == "" || step.Value == nil {
			return fmt.Errorf("%w: step %d needs op and value", ErrInvalidInput, i)
		}
	}
	return nil
}

// ChainResponse is the JSON response for POST /api/calculate/chain.
type ChainResponse struct {
	Initial   float64       `json:"initial"`
	Steps     []ChainResult `json:"steps"`
	Result    Result        `json:"result"`
	Timestamp string        `json:"timestamp"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     Operation `json:"op"`
	Value  float64   `json:"value"`
	Result Result    `json:"result"`
}
