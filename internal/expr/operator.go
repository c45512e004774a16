package expr

import "strconv"

// Binary operators
const (
	AddOp      = "+"
	SubtractOp = "-"
	MultiplyOp = "*"
)

// Operators lists the supported operator symbols
var Operators = []string{AddOp, SubtractOp, MultiplyOp}

// IsOperator reports whether s is one of the binary operator symbols
func IsOperator(s string) bool {
	switch s {
	case AddOp, SubtractOp, MultiplyOp:
		return true
	}
	return false
}

// IsNumeric reports whether s parses as a machine integer.
// Signs and leading zeros are accepted ("-1", "0002").
func IsNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// apply evaluates op with wraparound on overflow
func apply(op string, a, b int) (int, bool) {
	switch op {
	case AddOp:
		return a + b, true
	case SubtractOp:
		return a - b, true
	case MultiplyOp:
		return a * b, true
	}
	return 0, false
}
