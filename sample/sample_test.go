package sample_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/decexpr"
	"github.com/zephyrtronium/decexpr/sample"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func compile(t *testing.T, src string) decexpr.Func {
	t.Helper()
	f, err := decexpr.Compile(src, "x")
	require.NoError(t, err)
	return f
}

func TestSample(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		from    string
		to      string
		step    string
		offset  string
		workers int
		// want is pairs of x and y. An empty y means undefined.
		want [][2]string
	}{
		{
			name: "square", src: "x^2", from: "-1", to: "1", step: "0.5",
			want: [][2]string{{"-1", "1"}, {"-0.5", "0.25"}, {"0", "0"}, {"0.5", "0.25"}},
		},
		{
			name: "undefined", src: "1/x", from: "-1", to: "2", step: "1",
			want: [][2]string{{"-1", "-1"}, {"0", ""}, {"1", "1"}},
		},
		{
			name: "unaligned", src: "x", from: "0.05", to: "0.35", step: "0.1",
			want: [][2]string{{"0.1", "0.1"}, {"0.2", "0.2"}, {"0.3", "0.3"}},
		},
		{
			name: "offset", src: "1/x", from: "-1", to: "2", step: "1", offset: "0.5",
			want: [][2]string{{"-1", "-2"}, {"0", "2"}, {"1", "0.666666666666666666666666666667"}},
		},
		{
			name: "more-workers", src: "2*x", from: "0", to: "3", step: "1", workers: 16,
			want: [][2]string{{"0", "0"}, {"1", "2"}, {"2", "4"}},
		},
		{
			name: "one-worker", src: "x+1", from: "0", to: "5", step: "1", workers: 1,
			want: [][2]string{{"0", "1"}, {"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "5"}},
		},
		{
			name: "far", src: "x", from: "1e20", to: "100000000000000000003", step: "1",
			want: [][2]string{
				{"1e20", "1e20"},
				{"100000000000000000001", "100000000000000000001"},
				{"100000000000000000002", "100000000000000000002"},
			},
		},
		{
			name: "far-half", src: "2*x", from: "1e20", to: "100000000000000000001", step: "0.5",
			want: [][2]string{{"1e20", "2e20"}, {"100000000000000000000.5", "200000000000000000001"}},
		},
		{
			name: "empty", src: "x", from: "1", to: "1", step: "1",
		},
		{
			name: "reversed", src: "x", from: "2", to: "1", step: "1",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := sample.Options{Step: d(c.step), Workers: c.workers}
			if c.offset != "" {
				opts.Offset = d(c.offset)
			}
			pts, err := sample.Sample(context.Background(), compile(t, c.src), sample.Domain{From: d(c.from), To: d(c.to)}, opts)
			require.NoError(t, err)
			require.Len(t, pts, len(c.want))
			for i, w := range c.want {
				assert.True(t, d(w[0]).Equal(pts[i].X), "point %d: want x=%s, got %s", i, w[0], pts[i].X)
				if w[1] == "" {
					assert.Nil(t, pts[i].Y, "point %d", i)
					continue
				}
				if assert.NotNil(t, pts[i].Y, "point %d", i) {
					assert.True(t, d(w[1]).Equal(*pts[i].Y), "point %d: want y=%s, got %s", i, w[1], pts[i].Y)
				}
			}
		})
	}
}

func TestSampleErrors(t *testing.T) {
	f := compile(t, "x")
	dom := sample.Domain{From: d("0"), To: d("100")}

	_, err := sample.Sample(context.Background(), f, dom, sample.Options{})
	assert.ErrorIs(t, err, sample.ErrStep)
	_, err = sample.Sample(context.Background(), f, dom, sample.Options{Step: d("-1")})
	assert.ErrorIs(t, err, sample.ErrStep)

	_, err = sample.Sample(context.Background(), f, dom, sample.Options{Step: d("1"), MaxPoints: 10})
	assert.ErrorContains(t, err, "exceeds limit of 10")
	pts, err := sample.Sample(context.Background(), f, dom, sample.Options{Step: d("1"), MaxPoints: 100})
	require.NoError(t, err)
	assert.Len(t, pts, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sample.Sample(ctx, f, dom, sample.Options{Step: d("1")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleLog(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	opts := sample.Options{Step: d("1"), Workers: 2, Log: log}
	_, err := sample.Sample(context.Background(), compile(t, "1/x"), sample.Domain{From: d("-2"), To: d("2")}, opts)
	require.NoError(t, err)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	undef := 0
	for _, e := range entries {
		assert.Equal(t, logrus.DebugLevel, e.Level)
		assert.Equal(t, 2, e.Data["points"])
		undef += e.Data["undefined"].(int)
	}
	assert.Equal(t, 1, undef)
}

func TestDefined(t *testing.T) {
	pts, err := sample.Sample(context.Background(), compile(t, "SQRT(x)"), sample.Domain{From: d("-2"), To: d("3")}, sample.Options{Step: d("1")})
	require.NoError(t, err)
	def := sample.Defined(pts)
	require.Len(t, def, 3)
	for i, p := range def {
		assert.True(t, decimal.NewFromInt(int64(i)).Equal(p.X))
	}
	assert.Empty(t, sample.Defined(nil))
}
