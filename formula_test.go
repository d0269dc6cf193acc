package decexpr_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/decexpr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompile(t *testing.T) {
	cases := []struct {
		name string
		src  string
		v    string
		kind decexpr.Kind
	}{
		{"ok", "x^2", "x", decexpr.KindNone},
		{"other-name", "2*t+1", "t", decexpr.KindNone},
		{"case", "2*X+1", "x", decexpr.KindNone},
		{"undefined-at-trial", "1/(x-1)", "x", decexpr.KindNone},
		{"constant", "PI", "x", decexpr.KindNone},
		{"wrong-var", "2*x+1", "t", decexpr.Syntax},
		{"syntax", "x+", "x", decexpr.Syntax},
		{"undeclared", "(y)+x", "x", decexpr.Semantic},
		{"bad-number", "x+1e", "x", decexpr.Semantic},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := decexpr.Compile(c.src, c.v)
			assert.Equal(t, c.kind, decexpr.KindOf(err))
			if c.kind == decexpr.KindNone {
				assert.NotNil(t, f)
			} else {
				assert.Nil(t, f)
			}
		})
	}
}

func TestFuncAt(t *testing.T) {
	f, err := decexpr.Compile("1/(x-1)", "x")
	require.NoError(t, err)
	y, ok := f.At(d("3"))
	assert.True(t, ok)
	assert.Equal(t, "0.5", y.String())
	_, ok = f.At(d("1"))
	assert.False(t, ok)
	_, err = f(d("1"))
	assert.Equal(t, decexpr.Arithmetic, decexpr.KindOf(err))
}

func TestFuncMaskedName(t *testing.T) {
	// The trial value divides by zero before the undeclared name is reached,
	// so the formula compiles and the name is reported at other points.
	f, err := decexpr.Compile("1/(x-1)+(y)", "x")
	require.NoError(t, err)
	_, err = f(d("2"))
	assert.Equal(t, decexpr.Semantic, decexpr.KindOf(err))
}

func TestFuncCombinators(t *testing.T) {
	sq, err := decexpr.Compile("x^2", "x")
	require.NoError(t, err)
	cube, err := decexpr.Compile("x^3", "x")
	require.NoError(t, err)
	succ, err := decexpr.Compile("x+1", "x")
	require.NoError(t, err)
	twice, err := decexpr.Compile("2*x", "x")
	require.NoError(t, err)

	cases := []struct {
		name string
		f    decexpr.Func
		x    string
		y    string
	}{
		{"identity", sq, "3", "9"},
		{"translate", sq.Translate(d("1"), d("2")), "3", "18"},
		{"scale", sq.Scale(d("3")), "2", "12"},
		{"stretch", sq.Stretch(d("2")), "4", "4"},
		{"reflect-x", sq.ReflectX(), "2", "-4"},
		{"reflect-y", cube.ReflectY(), "2", "-8"},
		{"mul", sq.Mul(succ), "2", "12"},
		{"differentiate", sq.Differentiate(), "3", "6.0000000001"},
		{"slope", decexpr.Slope(twice, sq), "1", "1.00000000005"},
		{"slope-line", decexpr.Slope(succ, twice), "5", "2"},
		{"chain", sq.Translate(d("-1"), d("0")).Scale(d("2")), "4", "18"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			y, err := c.f(d(c.x))
			require.NoError(t, err)
			assert.True(t, d(c.y).Equal(y), "want %s, got %s", c.y, y)
		})
	}
}

func TestFuncCombinatorErrors(t *testing.T) {
	inv, err := decexpr.Compile("1/x", "x")
	require.NoError(t, err)
	one, err := decexpr.Compile("1", "x")
	require.NoError(t, err)
	cases := []struct {
		name string
		f    decexpr.Func
		x    string
	}{
		{"stretch-zero", one.Stretch(decimal.Zero), "1"},
		{"translate", inv.Translate(d("-1"), d("5")), "1"},
		{"mul-left", inv.Mul(one), "0"},
		{"mul-right", one.Mul(inv), "0"},
		{"differentiate", inv.Differentiate(), "0"},
		{"reflect", inv.ReflectY().ReflectX(), "0"},
		{"slope-vertical", decexpr.Slope(one, one), "1"},
		{"slope-undefined-y", decexpr.Slope(one, inv), "0"},
		{"slope-undefined-x", decexpr.Slope(inv, one), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.f(d(c.x))
			assert.Equal(t, decexpr.Arithmetic, decexpr.KindOf(err))
		})
	}
}

func TestFuncConcurrent(t *testing.T) {
	f, err := decexpr.Compile("x*x - 2*x + 1", "x")
	require.NoError(t, err)
	const n = 64
	got := make([]decimal.Decimal, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], errs[i] = f(decimal.NewFromInt(int64(i)))
		}()
	}
	wg.Wait()
	for i := range n {
		require.NoError(t, errs[i])
		want := decimal.NewFromInt(int64((i - 1) * (i - 1)))
		assert.True(t, want.Equal(got[i]), "f(%d): want %s, got %s", i, want, got[i])
	}
}
