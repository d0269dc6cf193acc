// Package sample evaluates compiled formulas across a range of inputs in
// parallel.
package sample

import (
	"context"
	"io"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/decexpr"
)

// DefaultMaxPoints is the default limit on the number of points in a sample.
const DefaultMaxPoints = 1 << 20

// ErrStep is returned when the step between points is not positive.
var ErrStep = errors.New("sample: step must be positive")

// Point is a sampled point. Y is nil where the formula is undefined.
type Point struct {
	X decimal.Decimal
	Y *decimal.Decimal
}

// Domain is the half-open range [From, To) of inputs to sample.
type Domain struct {
	From, To decimal.Decimal
}

// Options controls sampling.
type Options struct {
	// Step is the distance between consecutive inputs. Inputs are the
	// multiples of Step within the domain.
	Step decimal.Decimal
	// Workers is the number of goroutines evaluating the formula. If it is
	// not positive, GOMAXPROCS is used.
	Workers int
	// Offset is added to each input before evaluating the formula, but not to
	// the reported X. A small offset steps around singularities at the
	// multiples of Step.
	Offset decimal.Decimal
	// MaxPoints limits the number of points. If it is not positive,
	// DefaultMaxPoints is used.
	MaxPoints int
	// Log receives debug information about each worker. May be nil.
	Log logrus.FieldLogger
}

// Sample evaluates f at each multiple of opts.Step in d. The points are in
// increasing order of X. Sample fails only if the options are invalid or ctx
// is canceled; points where f is undefined have a nil Y.
func Sample(ctx context.Context, f decexpr.Func, d Domain, opts Options) ([]Point, error) {
	if opts.Step.Sign() <= 0 {
		return nil, ErrStep
	}
	lo := d.From.DivRound(opts.Step, decexpr.Scale).Ceil()
	hi := d.To.DivRound(opts.Step, decexpr.Scale).Ceil()
	if hi.LessThanOrEqual(lo) {
		return nil, nil
	}
	max := opts.MaxPoints
	if max <= 0 {
		max = DefaultMaxPoints
	}
	n := hi.Sub(lo)
	if n.GreaterThan(decimal.NewFromInt(int64(max))) {
		return nil, errors.Errorf("sample: %s points in [%s, %s) with step %s exceeds limit of %d", n, d.From, d.To, opts.Step, max)
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	pts := make([]Point, n.IntPart())
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(pts))
	size := (len(pts) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		start := w * size
		end := min(start+size, len(pts))
		if start >= end {
			break
		}
		g.Go(func() error {
			undef := 0
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				x := lo.Add(decimal.NewFromInt(int64(i))).Mul(opts.Step)
				pts[i].X = x
				if y, ok := f.At(x.Add(opts.Offset)); ok {
					pts[i].Y = &y
				} else {
					undef++
				}
			}
			log.WithFields(logrus.Fields{
				"worker":    w,
				"from":      pts[start].X.String(),
				"to":        pts[end-1].X.String(),
				"points":    end - start,
				"undefined": undef,
			}).Debug("sampled range")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pts, nil
}

// Defined returns the points of pts where the formula is defined.
func Defined(pts []Point) []Point {
	r := make([]Point, 0, len(pts))
	for _, p := range pts {
		if p.Y != nil {
			r = append(r, p)
		}
	}
	return r
}
