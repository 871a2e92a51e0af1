package sumi

import (
	"errors"
	"math"
	"testing"
)

func TestLerpEndpoints(t *testing.T) {
	values := []Value{Scalar(0.3), Vec2(0.1, 0.9), Vec3(0.2, 0.4, 0.8)}
	for _, a := range values {
		for _, b := range values {
			got0, err := Lerp(a, b, Number(0))
			if err != nil {
				t.Fatalf("Lerp(%v, %v, 0): %v", a, b, err)
			}
			got1, err := Lerp(a, b, Number(1))
			if err != nil {
				t.Fatalf("Lerp(%v, %v, 1): %v", a, b, err)
			}
			d := max(a.Dim(), b.Dim())
			for i := 0; i < d; i++ {
				if !near(got0.channel(i), a.channel(i)) {
					t.Errorf("Lerp(%v, %v, 0) channel %d = %v, want %v", a, b, i, got0.channel(i), a.channel(i))
				}
				if !near(got1.channel(i), b.channel(i)) {
					t.Errorf("Lerp(%v, %v, 1) channel %d = %v, want %v", a, b, i, got1.channel(i), b.channel(i))
				}
			}
		}
	}
}

func TestLerpIdentical(t *testing.T) {
	a := Vec3(0.25, 0.5, 0.75)
	for _, tf := range []float64{-1, 0, 0.37, 1, 2} {
		got, err := Lerp(a, a, Number(tf))
		if err != nil {
			t.Fatal(err)
		}
		if !valuesNear(got, a) {
			t.Errorf("Lerp(a, a, %v) = %v, want %v", tf, got, a)
		}
	}
}

func TestLerpResultDimension(t *testing.T) {
	got, err := Lerp(Scalar(0), Vec3(1, 1, 1), Number(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindVector3 {
		t.Errorf("result kind = %s, want Vector3", got.Kind())
	}
	// Missing components of the scalar default to 0.
	if !valuesNear(got, Vec3(0.5, 0.5, 0.5)) {
		t.Errorf("got %v, want Vector3(0.5, 0.5, 0.5)", got)
	}
}

func TestLerpNumbers(t *testing.T) {
	got, err := Lerp(Number(2), Number(4), Number(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if !valuesNear(got, Number(3)) {
		t.Errorf("Lerp(2, 4, 0.5) = %v, want 3", got)
	}
}

func TestLerpInvalidArguments(t *testing.T) {
	_, err := Lerp(Number(1), Vec2(0, 0), Number(0.5))
	if !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("Lerp(Number, Vector2) error = %v, want ErrInvalidArguments", err)
	}
}

func TestClampComponentwise(t *testing.T) {
	got, err := Clamp(Vec3(-1, 0.5, 2), Vec3(0, 0, 0), Vec3(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !valuesNear(got, Vec3(0, 0.5, 1)) {
		t.Errorf("Clamp = %v, want Vector3(0, 0.5, 1)", got)
	}

	// Result dimension follows max(x.dim, lo.dim).
	got, err = Clamp(Scalar(5), Vec2(0, 0), Vec2(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindVector2 {
		t.Errorf("result kind = %s, want Vector2", got.Kind())
	}

	gotN, err := Clamp(Number(5), Number(0), Number(1))
	if err != nil || !valuesNear(gotN, Number(1)) {
		t.Errorf("Clamp(5, 0, 1) = %v (err %v), want 1", gotN, err)
	}
}

func TestClampWithinBounds(t *testing.T) {
	xs := []Value{Vec3(-2, 0.3, 7), Vec2(0.5, 0.6), Scalar(9)}
	lo, hi := Vec3(0, 0, 0), Vec3(1, 1, 1)
	for _, x := range xs {
		got, err := Clamp(x, lo, hi)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < got.Dim(); i++ {
			c := got.channel(i)
			if c < 0 || c > 1 {
				t.Errorf("Clamp(%v) channel %d = %v, outside [0, 1]", x, i, c)
			}
		}
	}
}

func TestInverseLerpScalarRoundtrip(t *testing.T) {
	a, b := Number(2), Number(10)
	for _, v := range []float64{2, 4.4, 7, 10} {
		tv, err := InverseLerp(a, b, Number(v))
		if err != nil {
			t.Fatal(err)
		}
		back, err := Lerp(a, b, tv)
		if err != nil {
			t.Fatal(err)
		}
		if !near(back.Float(), v) {
			t.Errorf("lerp(a, b, inverseLerp(a, b, %v)) = %v, want %v", v, back.Float(), v)
		}
	}
}

func TestInverseLerpDegenerate(t *testing.T) {
	// a == b hits the divide-by-zero policy: 0, not Inf/NaN.
	got, err := InverseLerp(Number(3), Number(3), Number(5))
	if err != nil {
		t.Fatal(err)
	}
	if !near(got.Float(), 0) {
		t.Errorf("InverseLerp(3, 3, 5) = %v, want 0", got.Float())
	}
}

// TestInverseLerpCascade pins the cascading partial-sum behavior: the
// per-channel factors are summed and divided by the widest dimension,
// never averaged over all four channels.
func TestInverseLerpCascade(t *testing.T) {
	a := Vec3(0, 0, 0)
	b := Vec3(1, 1, 1)
	v := Vec3(0.2, 0.4, 0.9)
	got, err := InverseLerp(a, b, v)
	if err != nil {
		t.Fatal(err)
	}
	want := (0.9 + 0.4 + 0.2) / 3
	if got.Kind() != KindScalar || !near(got.Float(), want) {
		t.Errorf("InverseLerp = %v, want Scalar(%v)", got, want)
	}

	// Narrower operands include fewer channels: D = 2 here, so only
	// green and red contribute and the sum is divided by 2.
	got, err = InverseLerp(Vec2(0, 0), Vec2(1, 1), Vec2(0.2, 0.4))
	if err != nil {
		t.Fatal(err)
	}
	want = (0.4 + 0.2) / 2
	if !near(got.Float(), want) {
		t.Errorf("InverseLerp D=2 = %v, want %v", got.Float(), want)
	}

	// Mixed dimensions: D = max of the three.
	got, err = InverseLerp(Scalar(0), Vec2(1, 1), Vec2(0.5, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	// Scalar's green channel defaults to 0, so inverseLerp(0,1,0.5)
	// per channel; sum/2.
	want = (0.5 + 0.5) / 2
	if !near(got.Float(), want) {
		t.Errorf("InverseLerp mixed = %v, want %v", got.Float(), want)
	}
}

func TestRemap(t *testing.T) {
	got, err := Remap(Number(0), Number(10), Number(0), Number(1), Number(5))
	if err != nil {
		t.Fatal(err)
	}
	if !near(got.Float(), 0.5) {
		t.Errorf("Remap = %v, want 0.5", got.Float())
	}

	_, err = Remap(Number(0), Number(10), Number(0), Number(1), Number(11))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("Remap out of range error = %v, want RangeError", err)
	}
	if re.Value != 11 || re.Min != 0 || re.Max != 10 {
		t.Errorf("RangeError = %+v, want value 11 in [0, 10]", re)
	}

	gotC, err := Remap(Vec2(0, 0), Vec2(2, 4), Vec2(0, 0), Vec2(1, 1), Vec2(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !valuesNear(gotC, Vec2(0.5, 0.25)) {
		t.Errorf("componentwise Remap = %v, want Vector2(0.5, 0.25)", gotC)
	}
}

func TestRadialGradientExponential(t *testing.T) {
	uv := Vec2(0.3, 0.7)

	// Distance zero yields exactly 1 regardless of radius.
	for _, radius := range []Value{Zero, Scalar(0.5), Number(123)} {
		got := RadialGradientExponential(uv, uv, radius, Scalar(4))
		if got.Kind() != KindScalar || !near(got.Float(), 1) {
			t.Errorf("radius %v: got %v, want Scalar(1)", radius, got)
		}
	}

	// exp(-d * density.red)
	center := Vec2(0.3, 0.2)
	got := RadialGradientExponential(uv, center, Zero, Scalar(4))
	want := math.Exp(-0.5 * 4)
	if !near(got.Float(), want) {
		t.Errorf("got %v, want %v", got.Float(), want)
	}

	// A plain-number density is used directly.
	got = RadialGradientExponential(uv, center, Zero, Number(2))
	want = math.Exp(-0.5 * 2)
	if !near(got.Float(), want) {
		t.Errorf("number density: got %v, want %v", got.Float(), want)
	}
}

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"close numbers", Number(1.0), Number(1.05), true},
		{"far numbers", Number(1.0), Number(1.2), false},
		{"boundary is exclusive", Number(0), Number(0.1), false},
		{"close vectors", Vec2(0.5, 0.5), Vec2(0.55, 0.45), true},
		{"one channel too far", Vec2(0.5, 0.5), Vec2(0.55, 0.65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NearlyEqual(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("NearlyEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	got, err := NearlyEqualEps(Number(1), Number(1.5), 1)
	if err != nil || !got {
		t.Errorf("NearlyEqualEps(1, 1.5, 1) = %v (err %v), want true", got, err)
	}

	if _, err := NearlyEqual(Number(1), Scalar(1)); !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("mixed operands error = %v, want ErrInvalidArguments", err)
	}
}
