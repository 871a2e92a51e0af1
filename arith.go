package sumi

import "math"

// Binary arithmetic accepts operands of equal dimension, or a scalar
// (dimension 1, which plain numbers count as) broadcast against a
// Vector2/Vector3. Any other pairing is a *DimensionMismatchError.

// Add returns the componentwise sum of v and w.
func (v Value) Add(w Value) (Value, error) {
	return v.combine("add", w, func(a, b float64) float64 { return a + b })
}

// Sub returns the componentwise difference of v and w.
func (v Value) Sub(w Value) (Value, error) {
	return v.combine("subtract", w, func(a, b float64) float64 { return a - b })
}

// Mul returns the componentwise product of v and w.
func (v Value) Mul(w Value) (Value, error) {
	return v.combine("multiply", w, func(a, b float64) float64 { return a * b })
}

// Div returns the componentwise quotient of v and w. A zero divisor
// component yields exactly 0 for that component, never an infinity or
// NaN. This is a deliberate numeric policy of the algebra.
func (v Value) Div(w Value) (Value, error) {
	return v.combine("divide", w, safeDiv)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// combine applies f componentwise, broadcasting a 1-wide operand across
// the other. The result takes the wider operand's kind; two plain
// numbers produce a plain number.
func (v Value) combine(op string, w Value, f func(a, b float64) float64) (Value, error) {
	dv, dw := v.effDim(), w.effDim()
	if dv != dw && dv != 1 && dw != 1 {
		return Value{}, &DimensionMismatchError{Op: op, Left: v.kind, Right: w.kind}
	}
	kind := v.kind
	if w.kind > kind {
		kind = w.kind
	}
	d := kind.Dim()
	if d == 0 {
		return Number(f(v.x, w.x)), nil
	}
	var c [3]float64
	for i := 0; i < d; i++ {
		a, b := v.x, w.x
		if dv > 1 {
			a = v.component(i)
		}
		if dw > 1 {
			b = w.component(i)
		}
		c[i] = f(a, b)
	}
	return valueOfDim(d, c), nil
}

// valueOfDim builds a color value of the given dimension from c.
func valueOfDim(d int, c [3]float64) Value {
	switch d {
	case 1:
		return Scalar(c[0])
	case 2:
		return Vec2(c[0], c[1])
	default:
		return Vec3(c[0], c[1], c[2])
	}
}

// Distance returns the Euclidean distance between v and w as a Scalar.
// Missing components read as 0, so values of different dimension are
// compared in the wider space.
func (v Value) Distance(w Value) Value {
	var sum float64
	for i := 0; i < 3; i++ {
		d := v.component(i) - w.component(i)
		sum += d * d
	}
	return Scalar(math.Sqrt(sum))
}

// Dot returns the dot product of v and w as a Scalar. The operands must
// have equal dimension.
func (v Value) Dot(w Value) (Value, error) {
	if v.effDim() != w.effDim() {
		return Value{}, &DimensionMismatchError{Op: "dot", Left: v.kind, Right: w.kind}
	}
	var sum float64
	for i := 0; i < v.effDim(); i++ {
		sum += v.component(i) * w.component(i)
	}
	return Scalar(sum), nil
}

// Cross returns the vector cross product for two Vector3 operands. For
// two Vector2 operands it returns the signed area term x1*y2 - y1*x2 as
// a Scalar. Any other pairing is a dimension mismatch.
func (v Value) Cross(w Value) (Value, error) {
	switch {
	case v.kind == KindVector3 && w.kind == KindVector3:
		return Vec3(
			v.y*w.z-v.z*w.y,
			v.z*w.x-v.x*w.z,
			v.x*w.y-v.y*w.x,
		), nil
	case v.kind == KindVector2 && w.kind == KindVector2:
		return Scalar(v.x*w.y - v.y*w.x), nil
	default:
		return Value{}, &DimensionMismatchError{Op: "cross", Left: v.kind, Right: w.kind}
	}
}

// Length returns the Euclidean length of v as a Scalar.
func (v Value) Length() Value {
	return Scalar(math.Sqrt(v.lengthSq()))
}

// LengthSquared returns the squared length of v as a Scalar. Cheaper
// than Length when only comparing magnitudes.
func (v Value) LengthSquared() Value {
	return Scalar(v.lengthSq())
}

func (v Value) lengthSq() float64 {
	var sum float64
	for i := 0; i < v.effDim(); i++ {
		c := v.component(i)
		sum += c * c
	}
	return sum
}

// Neg returns v with every component negated.
func (v Value) Neg() Value {
	out := v
	out.x, out.y, out.z = -v.x, -v.y, -v.z
	if v.Dim() < 3 {
		out.z = 0
	}
	if v.Dim() < 2 {
		out.y = 0
	}
	return out
}
