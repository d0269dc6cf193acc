package decexpr_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/decexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1+2*3")
	f.Add("SQRT(x, 1)")
	f.Add("(-8)^0.5")
	f.Add("MAX(1,,2)")
	f.Fuzz(func(t *testing.T, s string) {
		e := decexpr.New(s).Set("x", decimal.NewFromInt(2))
		_, err := e.Eval()
		if err != nil && decexpr.KindOf(err) == decexpr.KindNone {
			t.Errorf("error without a kind for %q: %v", s, err)
		}
	})
}
