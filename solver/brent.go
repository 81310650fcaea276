// Package solver finds scalar roots of residual functions whose evaluation runs a full
// side computation (a cooling process, a mixing balance, a property correlation).
//
// The iteration is a synchronous loop bounded by Options.MaxIterations. There is no
// cancellation: callers needing bounded latency wrap the call themselves.
package solver

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	expandFactor = 1.6
	machineEps   = 2.220446049250313e-16
)

// Func evaluates the residual at x and returns the side computation it produced.
type Func[S any] func(x float64) (residual float64, state S, err error)

// Options tunes a single Find call.
type Options struct {
	Tolerance     float64 // largest accepted |residual|
	MaxIterations int
	ExpandLimit   int     // outward steps taken when the counterpart points share a sign
	Min, Max      float64 // hard limits for the expansion
	Resolution    float64 // smallest step in x

	// Target, Scale and Quantity only annotate a NotConvergedError. Scale is the
	// factor a normalized residual was divided by (1 when unset), so the reported
	// actual value is Target - Residual*Scale.
	Target   float64
	Scale    float64
	Quantity string
}

// DefaultOptions returns unbounded options with a 1e-9 residual tolerance.
func DefaultOptions() Options {
	return Options{
		Tolerance:     1e-9,
		MaxIterations: 100,
		ExpandLimit:   50,
		Min:           math.Inf(-1),
		Max:           math.Inf(1),
		Resolution:    1e-15,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.ExpandLimit < 0 {
		o.ExpandLimit = 0
	}
	if o.Min == 0 && o.Max == 0 {
		o.Min, o.Max = def.Min, def.Max
	}
	if o.Resolution <= 0 {
		o.Resolution = def.Resolution
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	return o
}

// Solution is a converged root together with the state computed at it.
type Solution[S any] struct {
	X          float64
	Residual   float64
	State      S
	Iterations int
}

type point[S any] struct {
	x, f  float64
	state S
}

// Find runs Brent's method between the counterpart points a and b.
//
// The points are expected to bracket the root. When their residuals share a sign the
// bracket is first widened outward, never past Min and Max. Errors returned by f abort the
// search unchanged.
func Find[S any](opts Options, a, b float64, f Func[S]) (Solution[S], error) {
	opts = opts.normalized()
	eval := func(x float64) (point[S], error) {
		r, s, err := f(x)
		if err != nil {
			return point[S]{}, err
		}
		return point[S]{x: x, f: r, state: s}, nil
	}

	pa, err := eval(a)
	if err != nil {
		return Solution[S]{}, err
	}
	if opts.within(pa.f) {
		return converged(opts, pa, 0), nil
	}
	pb, err := eval(b)
	if err != nil {
		return Solution[S]{}, err
	}
	if opts.within(pb.f) {
		return converged(opts, pb, 0), nil
	}

	if sameSign(pa.f, pb.f) {
		pa, pb, err = expand(opts, pa, pb, eval)
		if err != nil {
			return Solution[S]{}, err
		}
		if opts.within(pa.f) {
			return converged(opts, pa, 0), nil
		}
		if opts.within(pb.f) {
			return converged(opts, pb, 0), nil
		}
	}

	pc := pa
	d := pb.x - pa.x
	e := d
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		if sameSign(pb.f, pc.f) {
			pc = pa
			d = pb.x - pa.x
			e = d
		}
		if math.Abs(pc.f) < math.Abs(pb.f) {
			pa, pb, pc = pb, pc, pb
		}

		tol1 := 2*machineEps*math.Abs(pb.x) + 0.5*opts.Resolution
		xm := 0.5 * (pc.x - pb.x)

		if math.Abs(e) >= tol1 && math.Abs(pa.f) > math.Abs(pb.f) {
			var p, q float64
			s := pb.f / pa.f
			if pa.x == pc.x {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = pa.f / pc.f
				r := pb.f / pc.f
				p = s * (2*xm*q*(q-r) - (pb.x-pa.x)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		pa = pb
		next := pb.x
		if math.Abs(d) > tol1 {
			next += d
		} else {
			next += math.Copysign(tol1, xm)
		}
		if pb, err = eval(next); err != nil {
			return Solution[S]{}, err
		}
		if opts.within(pb.f) {
			return converged(opts, pb, iter), nil
		}
	}

	best := pb
	if math.Abs(pc.f) < math.Abs(best.f) {
		best = pc
	}
	return Solution[S]{}, newNotConverged(opts, best.x, best.f, opts.MaxIterations)
}

// expand widens [a, b] until the residuals change sign.
func expand[S any](opts Options, pa, pb point[S], eval func(float64) (point[S], error)) (point[S], point[S], error) {
	if pa.x > pb.x {
		pa, pb = pb, pa
	}
	for i := 0; i < opts.ExpandLimit; i++ {
		width := pb.x - pa.x
		if width == 0 {
			width = math.Max(math.Abs(pa.x), 1) * 1e-3
		}
		lowFree := pa.x > opts.Min
		highFree := pb.x < opts.Max
		var err error
		switch {
		case lowFree && (math.Abs(pa.f) < math.Abs(pb.f) || !highFree):
			pa, err = eval(math.Max(pa.x-expandFactor*width, opts.Min))
		case highFree:
			pb, err = eval(math.Min(pb.x+expandFactor*width, opts.Max))
		default:
			best := pa
			if math.Abs(pb.f) < math.Abs(pa.f) {
				best = pb
			}
			return pa, pb, newNotConverged(opts, best.x, best.f, i)
		}
		if err != nil {
			return pa, pb, err
		}
		if !sameSign(pa.f, pb.f) {
			return pa, pb, nil
		}
	}
	best := pa
	if math.Abs(pb.f) < math.Abs(pa.f) {
		best = pb
	}
	return pa, pb, newNotConverged(opts, best.x, best.f, opts.ExpandLimit)
}

func converged[S any](opts Options, p point[S], iterations int) Solution[S] {
	log.WithFields(log.Fields{
		"quantity":   opts.Quantity,
		"x":          p.x,
		"residual":   p.f,
		"iterations": iterations,
	}).Debug("solution converged")
	return Solution[S]{X: p.x, Residual: p.f, State: p.state, Iterations: iterations}
}

func (o Options) within(residual float64) bool {
	return scalar.EqualWithinAbs(residual, 0, o.Tolerance)
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
