// Package conditions holds the threshold comparison shared by value
// display coloring, gauge zones, conditional imagery and cable flow
// classification.
package conditions

// Operator is a numeric comparison operator.
type Operator string

const (
	OpGreater   Operator = ">"
	OpGreaterEq Operator = ">="
	OpLess      Operator = "<"
	OpLessEq    Operator = "<="
	OpEqual     Operator = "=="
	OpNotEqual  Operator = "!="
)

// Operators lists every supported operator, in the order config
// dialogs present them.
func Operators() []Operator {
	return []Operator{OpGreater, OpGreaterEq, OpLess, OpLessEq, OpEqual, OpNotEqual}
}

// Valid reports whether op is part of the supported set.
func (op Operator) Valid() bool {
	switch op {
	case OpGreater, OpGreaterEq, OpLess, OpLessEq, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// Evaluate applies op between value and threshold. A nil value, nil
// threshold or unknown operator means "condition not met" and returns
// false; absence is never an error. Equality is exact float equality,
// matching alarm semantics where silent rounding could mask a real
// condition.
func Evaluate(value *float64, op Operator, threshold *float64) bool {
	if value == nil || threshold == nil {
		return false
	}
	v, t := *value, *threshold
	switch op {
	case OpGreater:
		return v > t
	case OpGreaterEq:
		return v >= t
	case OpLess:
		return v < t
	case OpLessEq:
		return v <= t
	case OpEqual:
		return v == t
	case OpNotEqual:
		return v != t
	}
	return false
}
