package conditions_test

import (
	"testing"

	"github.com/byosamah/volteria-canvas/pkg/conditions"
)

func fp(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		op        conditions.Operator
		threshold *float64
		want      bool
	}{
		{name: "greater true", value: fp(5), op: conditions.OpGreater, threshold: fp(4), want: true},
		{name: "greater false", value: fp(4), op: conditions.OpGreater, threshold: fp(4), want: false},
		{name: "greater eq boundary", value: fp(4), op: conditions.OpGreaterEq, threshold: fp(4), want: true},
		{name: "less true", value: fp(-1), op: conditions.OpLess, threshold: fp(0), want: true},
		{name: "less eq boundary", value: fp(0), op: conditions.OpLessEq, threshold: fp(0), want: true},
		{name: "equal exact", value: fp(1.5), op: conditions.OpEqual, threshold: fp(1.5), want: true},
		{name: "equal no epsilon", value: fp(1.5000001), op: conditions.OpEqual, threshold: fp(1.5), want: false},
		{name: "not equal", value: fp(2), op: conditions.OpNotEqual, threshold: fp(1), want: true},
		{name: "nil value", value: nil, op: conditions.OpGreater, threshold: fp(1), want: false},
		{name: "nil threshold", value: fp(1), op: conditions.OpGreater, threshold: nil, want: false},
		{name: "unknown operator", value: fp(1), op: conditions.Operator("~"), threshold: fp(1), want: false},
		{name: "all nil", value: nil, op: conditions.Operator(""), threshold: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conditions.Evaluate(tt.value, tt.op, tt.threshold); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateTotality(t *testing.T) {
	// Every operator must be total over absent inputs, never panic.
	for _, op := range conditions.Operators() {
		if conditions.Evaluate(nil, op, nil) {
			t.Errorf("Evaluate(nil, %q, nil) = true, want false", op)
		}
		if conditions.Evaluate(fp(1), op, nil) {
			t.Errorf("Evaluate(1, %q, nil) = true, want false", op)
		}
		if conditions.Evaluate(nil, op, fp(1)) {
			t.Errorf("Evaluate(nil, %q, 1) = true, want false", op)
		}
	}
}

func TestOperatorValid(t *testing.T) {
	for _, op := range conditions.Operators() {
		if !op.Valid() {
			t.Errorf("%q should be valid", op)
		}
	}
	if conditions.Operator("=>").Valid() {
		t.Error("\"=>\" should not be valid")
	}
}
