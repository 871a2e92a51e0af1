package sumi

import (
	"errors"
	"fmt"
)

// ErrInvalidArguments reports a blend operation called with an
// unsupported mix of operands, e.g. a plain number against a color value.
var ErrInvalidArguments = errors.New("sumi: invalid arguments")

// DimensionMismatchError reports an operation on two values whose
// dimensions can neither be matched nor broadcast.
type DimensionMismatchError struct {
	Op          string
	Left, Right Kind
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("sumi: %s: dimension mismatch (%s vs %s)", e.Op, e.Left, e.Right)
}

// FormatError reports a string that does not parse as a hex color.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sumi: invalid hex color %q", e.Input)
}

// RangeError reports a remap input outside its declared input range.
type RangeError struct {
	Value, Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sumi: remap: value %v outside input range [%v, %v]", e.Value, e.Min, e.Max)
}
