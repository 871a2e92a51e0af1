package sumi

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	// KindNumber is a plain numeric quantity, not a color.
	KindNumber Kind = iota
	// KindScalar is a 1-component color value.
	KindScalar
	// KindVector2 is a 2-component color value.
	KindVector2
	// KindVector3 is a 3-component color value.
	KindVector3
)

// Dim returns the number of stored components: 0 for plain numbers,
// 1 to 3 for color values.
func (k Kind) Dim() int {
	switch k {
	case KindScalar:
		return 1
	case KindVector2:
		return 2
	case KindVector3:
		return 3
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindScalar:
		return "Scalar"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable tagged value: a plain number or a color value
// with one to three components. Every operation returns a new value;
// there is no in-place mutation.
type Value struct {
	kind    Kind
	x, y, z float64
}

// Number returns a plain numeric value. Numbers participate in
// arithmetic like scalars (they broadcast against vectors) but are not
// color values.
func Number(v float64) Value { return Value{kind: KindNumber, x: v} }

// Scalar returns a 1-component color value.
func Scalar(v float64) Value { return Value{kind: KindScalar, x: v} }

// Vec2 returns a 2-component color value.
func Vec2(x, y float64) Value { return Value{kind: KindVector2, x: x, y: y} }

// Vec3 returns a 3-component color value.
func Vec3(x, y, z float64) Value { return Value{kind: KindVector3, x: x, y: y, z: z} }

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// Dim returns the stored component count of v.
func (v Value) Dim() int { return v.kind.Dim() }

// IsColor reports whether v is a color value (scalar or vector).
func (v Value) IsColor() bool { return v.kind != KindNumber }

// IsNumber reports whether v is a plain number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric content of a Number or Scalar. For vectors
// it returns the first component.
func (v Value) Float() float64 { return v.x }

// component returns the i'th stored component. A Number's single slot
// counts as component 0 so numbers broadcast like scalars; components
// past the dimension read as 0.
func (v Value) component(i int) float64 {
	switch i {
	case 0:
		return v.x
	case 1:
		if v.Dim() >= 2 {
			return v.y
		}
	case 2:
		if v.Dim() >= 3 {
			return v.z
		}
	}
	return 0
}

// effDim is the dimension used for broadcasting: numbers act as 1-wide.
func (v Value) effDim() int {
	if v.kind == KindNumber {
		return 1
	}
	return v.Dim()
}

// channel returns the logical channel i (0=red .. 3=alpha) with the
// default-channel rules applied: channels past the stored dimension read
// as 0, except alpha which reads as 1.
func (v Value) channel(i int) float64 {
	if i < v.effDim() {
		return v.component(i)
	}
	if i == 3 {
		return 1
	}
	return 0
}

// Red returns the red channel of v.
func (v Value) Red() float64 { return v.channel(0) }

// Green returns the green channel of v, or 0 if v has fewer than two
// components.
func (v Value) Green() float64 { return v.channel(1) }

// Blue returns the blue channel of v, or 0 if v has fewer than three
// components.
func (v Value) Blue() float64 { return v.channel(2) }

// Alpha returns the alpha channel of v. No variant stores an alpha
// component, so this is always 1.
func (v Value) Alpha() float64 { return v.channel(3) }

func (v Value) String() string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	switch v.kind {
	case KindScalar:
		return "Scalar(" + f(v.x) + ")"
	case KindVector2:
		return "Vector2(" + f(v.x) + ", " + f(v.y) + ")"
	case KindVector3:
		return "Vector3(" + f(v.x) + ", " + f(v.y) + ", " + f(v.z) + ")"
	default:
		return f(v.x)
	}
}

// ParseHex parses a 6-digit hex color such as "#ff8000" (the leading '#'
// is optional) into a Vector3 with components normalized to [0, 1].
// Any other string shape fails with a *FormatError.
func ParseHex(s string) (Value, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return Value{}, &FormatError{Input: s}
	}
	var c [3]float64
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Value{}, &FormatError{Input: s}
		}
		c[i] = float64(n) / 255
	}
	return Vec3(c[0], c[1], c[2]), nil
}

// RGBA8 returns the display color of v: red, green and blue clamped to
// [0, 1] and scaled to 0-255, alpha taken from the alpha channel.
// Fractional byte values round to nearest.
func (v Value) RGBA8() (r, g, b, a uint8) {
	return channelByte(v.Red()), channelByte(v.Green()), channelByte(v.Blue()), channelByte(v.Alpha())
}

// Render returns the device color string for v, e.g. "rgb(255, 128, 0)".
func (v Value) Render() string {
	r, g, b, _ := v.RGBA8()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// channelByte maps a [0,1] channel to a display byte, rounding to nearest.
func channelByte(c float64) uint8 {
	return uint8(math.Round(clamp01(c) * 255))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
