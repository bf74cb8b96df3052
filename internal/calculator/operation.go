package calculator

import (
	"errors"
	"fmt"
)

type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// DivideByZero is returned in place of a number when dividing by zero.
// Existing clients match on this exact string.
const DivideByZero = "Cannot divide by zero"

var (
	ErrInvalidInput         = errors.New("invalid calculation input")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDivisionByZero       = errors.New("division by zero")
)

const (
	msgInvalidInput         = "Invalid input. Please provide operation and two numbers."
	msgUnsupportedOperation = "Unsupported operation. Use: add, subtract, multiply, divide"
)

// Message maps a calculator error onto the text returned to clients.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return msgInvalidInput
	case errors.Is(err, ErrUnsupportedOperation):
		return msgUnsupportedOperation
	case errors.Is(err, ErrDivisionByZero):
		return DivideByZero
	default:
		return err.Error()
	}
}

// Compute applies op to a and b. Operation names are matched exactly.
// Division by zero is not an error: it yields the DivideByZero sentinel.
func Compute(op Operation, a, b float64) (Result, error) {
	switch op {
	case OpAdd:
		return Number(a + b), nil
	case OpSubtract:
		return Number(a - b), nil
	case OpMultiply:
		return Number(a * b), nil
	case OpDivide:
		if b == 0 {
			return Sentinel(DivideByZero), nil
		}
		return Number(a / b), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedOperation, op)
	}
}

// apply is Compute for a running total, where the sentinel cannot be
// carried into the next step and becomes ErrDivisionByZero.
func apply(op Operation, total, value float64) (float64, error) {
	res, err := Compute(op, total, value)
	if err != nil {
		return 0, err
	}
	if n, ok := res.Float64(); ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, total, value)
}
