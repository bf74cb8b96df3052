package calculator

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{op: OpAdd, a: 5, b: 3, want: 8},
		{op: OpSubtract, a: 10, b: 4, want: 6},
		{op: OpMultiply, a: 6, b: 7, want: 42},
		{op: OpDivide, a: 15, b: 3, want: 5},
		{op: OpSubtract, a: -2.5, b: 2.5, want: -5},
		{op: OpDivide, a: 1, b: -4, want: -0.25},
	}

	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			res, err := Compute(tc.op, tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := res.Float64()
			if !ok {
				t.Fatalf("expected numeric result, got %q", res.String())
			}
			if got != tc.want {
				t.Fatalf("%s(%g, %g): expected %g, got %g", tc.op, tc.a, tc.b, tc.want, got)
			}
		})
	}
}

func TestComputeUsesFloat64Arithmetic(t *testing.T) {
	a, b := 0.1, 0.2

	res, err := Compute(OpAdd, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := res.Float64()
	if got != a+b {
		t.Fatalf("expected %v, got %v", a+b, got)
	}
	if got == 0.3 {
		t.Fatal("expected the binary floating-point sum, not the rounded constant 0.3")
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	if string(out) != "0.30000000000000004" {
		t.Fatalf("expected 0.30000000000000004, got %s", out)
	}
}

func TestComputeDivideByZeroReturnsSentinel(t *testing.T) {
	for _, a := range []float64{10, 0, -3} {
		res, err := Compute(OpDivide, a, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := res.Float64(); ok {
			t.Fatalf("expected sentinel result for %g / 0", a)
		}
		if res.String() != "Cannot divide by zero" {
			t.Fatalf("expected sentinel %q, got %q", "Cannot divide by zero", res.String())
		}
	}
}

func TestComputeUnsupportedOperation(t *testing.T) {
	for _, op := range []Operation{"power", "Add", "ADD", " add", ""} {
		_, err := Compute(op, 2, 3)
		if !errors.Is(err, ErrUnsupportedOperation) {
			t.Fatalf("operation %q: expected ErrUnsupportedOperation, got %v", op, err)
		}
		if got := Message(err); got != "Unsupported operation. Use: add, subtract, multiply, divide" {
			t.Fatalf("unexpected message %q", got)
		}
	}
}

func TestApplyRejectsDivisionByZero(t *testing.T) {
	_, err := apply(OpDivide, 4, 0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if got := Message(err); got != DivideByZero {
		t.Fatalf("expected message %q, got %q", DivideByZero, got)
	}
}

func TestResultMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{name: "integer", result: Number(8), want: `8`},
		{name: "fraction", result: Number(2.5), want: `2.5`},
		{name: "sentinel", result: Sentinel(DivideByZero), want: `"Cannot divide by zero"`},
		{name: "overflow", result: Number(math.Inf(1)), want: `null`},
		{name: "nan", result: Number(math.NaN()), want: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCalcRequestValidate(t *testing.T) {
	one := 1.0

	tests := []struct {
		name    string
		req     CalcRequest
		wantErr bool
	}{
		{name: "complete", req: CalcRequest{Operation: OpAdd, A: &one, B: &one}},
		{name: "zero operands are numbers", req: CalcRequest{Operation: OpAdd, A: new(float64), B: new(float64)}},
		{name: "missing operation", req: CalcRequest{A: &one, B: &one}, wantErr: true},
		{name: "missing a", req: CalcRequest{Operation: OpAdd, B: &one}, wantErr: true},
		{name: "missing b", req: CalcRequest{Operation: OpAdd, A: &one}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestChainRequestValidate(t *testing.T) {
	one := 1.0
	step := ChainStep{Op: OpAdd, Value: &one}

	tests := []struct {
		name    string
		req     ChainRequest
		wantErr bool
	}{
		{name: "complete", req: ChainRequest{Initial: &one, Steps: []ChainStep{step}}},
		{name: "zero initial is a number", req: ChainRequest{Initial: new(float64), Steps: []ChainStep{step}}},
		{name: "missing initial", req: ChainRequest{Steps: []ChainStep{step}}, wantErr: true},
		{name: "no steps", req: ChainRequest{Initial: &one}, wantErr: true},
		{name: "step without value", req: ChainRequest{Initial: &one, Steps: []ChainStep{{Op: OpAdd}}}, wantErr: true},
		{name: "step without op", req: ChainRequest{Initial: &one, Steps: []ChainStep{{Value: &one}}}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error %t, got %v", tc.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
