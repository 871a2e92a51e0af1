package sumi

import (
	"fmt"
	"math"
)

// Blend operations are polymorphic over plain numbers and color values
// with a dual-dispatch rule: all-number operands take the scalar formula,
// all-color operands recurse componentwise (using the default-channel
// rules to fill the narrower operand), and any other mix fails with
// ErrInvalidArguments.

// DefaultEpsilon is the tolerance NearlyEqual uses when none is given.
// It is part of the operation's contract, not an implementation detail.
const DefaultEpsilon = 0.1

// Lerp linearly interpolates from a to b by t. The interpolant t must be
// a number or scalar. For color operands the result has the larger of
// the two dimensions.
func Lerp(a, b, t Value) (Value, error) {
	tf, ok := scalarLike(t)
	if !ok {
		return Value{}, fmt.Errorf("%w: lerp interpolant must be a number or scalar, got %s", ErrInvalidArguments, t.kind)
	}
	switch {
	case a.IsNumber() && b.IsNumber():
		return Number(lerpf(a.x, b.x, tf)), nil
	case a.IsColor() && b.IsColor():
		d := max(a.Dim(), b.Dim())
		var c [3]float64
		for i := 0; i < d; i++ {
			c[i] = lerpf(a.channel(i), b.channel(i), tf)
		}
		return valueOfDim(d, c), nil
	default:
		return Value{}, fmt.Errorf("%w: lerp(%s, %s)", ErrInvalidArguments, a.kind, b.kind)
	}
}

// InverseLerp returns the interpolation factor t that recovers v from a
// and b, i.e. the inverse of Lerp in the scalar case.
//
// For color operands the result is an approximation, kept exactly as the
// algebra defines it: the per-channel inverse factors are accumulated
// from the channel implied by the widest operand down to red, and the
// sum is divided by that dimension. It is a mean of per-channel factors,
// not a multi-dimensional projection.
func InverseLerp(a, b, v Value) (Value, error) {
	switch {
	case a.IsNumber() && b.IsNumber() && v.IsNumber():
		return Number(inverseLerpf(a.x, b.x, v.x)), nil
	case a.IsColor() && b.IsColor() && v.IsColor():
		d := max(a.Dim(), max(b.Dim(), v.Dim()))
		var sum float64
		for i := d - 1; i >= 0; i-- {
			sum += inverseLerpf(a.channel(i), b.channel(i), v.channel(i))
		}
		return Scalar(sum / float64(d)), nil
	default:
		return Value{}, fmt.Errorf("%w: inverseLerp(%s, %s, %s)", ErrInvalidArguments, a.kind, b.kind, v.kind)
	}
}

// Clamp restricts x to [lo, hi]. For color operands the result has the
// larger of x's and lo's dimensions, componentwise.
func Clamp(x, lo, hi Value) (Value, error) {
	switch {
	case x.IsNumber() && lo.IsNumber() && hi.IsNumber():
		return Number(clampf(x.x, lo.x, hi.x)), nil
	case x.IsColor() && lo.IsColor() && hi.IsColor():
		d := max(x.Dim(), lo.Dim())
		var c [3]float64
		for i := 0; i < d; i++ {
			c[i] = clampf(x.channel(i), lo.channel(i), hi.channel(i))
		}
		return valueOfDim(d, c), nil
	default:
		return Value{}, fmt.Errorf("%w: clamp(%s, %s, %s)", ErrInvalidArguments, x.kind, lo.kind, hi.kind)
	}
}

// Remap maps v linearly from [iMin, iMax] to [oMin, oMax]. A v outside
// the input range fails with a *RangeError; for color operands the check
// is per channel. The result has the widest dimension of the operands.
func Remap(iMin, iMax, oMin, oMax, v Value) (Value, error) {
	allNum := iMin.IsNumber() && iMax.IsNumber() && oMin.IsNumber() && oMax.IsNumber() && v.IsNumber()
	allCol := iMin.IsColor() && iMax.IsColor() && oMin.IsColor() && oMax.IsColor() && v.IsColor()
	switch {
	case allNum:
		out, err := remapf(iMin.x, iMax.x, oMin.x, oMax.x, v.x)
		if err != nil {
			return Value{}, err
		}
		return Number(out), nil
	case allCol:
		d := max(v.Dim(), max(max(iMin.Dim(), iMax.Dim()), max(oMin.Dim(), oMax.Dim())))
		var c [3]float64
		for i := 0; i < d; i++ {
			out, err := remapf(iMin.channel(i), iMax.channel(i), oMin.channel(i), oMax.channel(i), v.channel(i))
			if err != nil {
				return Value{}, err
			}
			c[i] = out
		}
		return valueOfDim(d, c), nil
	default:
		return Value{}, fmt.Errorf("%w: remap(%s, %s, %s, %s, %s)", ErrInvalidArguments,
			iMin.kind, iMax.kind, oMin.kind, oMax.kind, v.kind)
	}
}

// RadialGradientExponential returns exp(-distance(uv, center) * density)
// as a Scalar, where density is read from the density operand's red
// channel (a plain number is used directly). The radius parameter is
// accepted for call-site compatibility but does not affect the result.
func RadialGradientExponential(uv, center, radius, density Value) Value {
	_ = radius
	d := uv.Distance(center).Float()
	k := density.Red()
	if density.IsNumber() {
		k = density.Float()
	}
	return Scalar(math.Exp(-d * k))
}

// NearlyEqual reports whether a and b differ by less than DefaultEpsilon,
// componentwise for color operands.
func NearlyEqual(a, b Value) (bool, error) {
	return NearlyEqualEps(a, b, DefaultEpsilon)
}

// NearlyEqualEps is NearlyEqual with an explicit tolerance.
func NearlyEqualEps(a, b Value, epsilon float64) (bool, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		return math.Abs(a.x-b.x) < epsilon, nil
	case a.IsColor() && b.IsColor():
		d := max(a.Dim(), b.Dim())
		for i := 0; i < d; i++ {
			if math.Abs(a.channel(i)-b.channel(i)) >= epsilon {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: nearlyEqual(%s, %s)", ErrInvalidArguments, a.kind, b.kind)
	}
}

func lerpf(a, b, t float64) float64 { return a + (b-a)*t }

// inverseLerpf follows the algebra's divide-by-zero policy: a == b
// yields 0 instead of an infinity.
func inverseLerpf(a, b, v float64) float64 {
	return safeDiv(v-a, b-a)
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func remapf(iMin, iMax, oMin, oMax, v float64) (float64, error) {
	if v < iMin || v > iMax {
		return 0, &RangeError{Value: v, Min: iMin, Max: iMax}
	}
	return lerpf(oMin, oMax, inverseLerpf(iMin, iMax, v)), nil
}

// scalarLike extracts the numeric content of a number or 1-dimensional
// color value.
func scalarLike(v Value) (float64, bool) {
	if v.effDim() == 1 {
		return v.x, true
	}
	return 0, false
}
