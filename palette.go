package sumi

// Named constants available to every shader. Initialized once at package
// load and treated as read-only for the lifetime of the process.
var (
	Zero = Scalar(0)
	Half = Scalar(0.5)
	One  = Scalar(1)

	Black   = Vec3(0, 0, 0)
	White   = Vec3(1, 1, 1)
	Red     = Vec3(1, 0, 0)
	Green   = Vec3(0, 1, 0)
	Blue    = Vec3(0, 0, 1)
	Yellow  = Vec3(1, 1, 0)
	Cyan    = Vec3(0, 1, 1)
	Magenta = Vec3(1, 0, 1)
	Purple  = Vec3(0.5, 0, 0.5)
	Orange  = Vec3(1, 0.5, 0)
	Gray    = Vec3(0.5, 0.5, 0.5)
)

// Palette returns the shader-visible constant names and their values.
// The returned map is a fresh copy; callers may not mutate the palette
// itself.
func Palette() map[string]Value {
	return map[string]Value{
		"zero": Zero,
		"half": Half,
		"one":  One,

		"black":   Black,
		"white":   White,
		"red":     Red,
		"green":   Green,
		"blue":    Blue,
		"yellow":  Yellow,
		"cyan":    Cyan,
		"magenta": Magenta,
		"purple":  Purple,
		"orange":  Orange,
		"gray":    Gray,
	}
}
