package model

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Size is either an absolute pixel count or a ratio of some containing length.
type Size struct {
	Pixels  int32
	Ratio   float32
	isRatio bool
}

// PixelSize returns an absolute size.
func PixelSize(px int32) Size {
	return Size{Pixels: px}
}

// RatioSize returns a size relative to the containing length.
func RatioSize(r float32) Size {
	return Size{Ratio: r, isRatio: true}
}

// IsRatio reports whether s is relative.
func (s Size) IsRatio() bool {
	return s.isRatio
}

// Resolve converts s to pixels against total.
func (s Size) Resolve(total int32) int32 {
	if s.isRatio {
		return int32(math.Floor(float64(total) * float64(s.Ratio)))
	}
	return s.Pixels
}

func (s Size) String() string {
	if s.isRatio {
		return strconv.FormatFloat(float64(s.Ratio), 'f', -1, 32)
	}
	return strconv.Itoa(int(s.Pixels))
}

// UnmarshalYAML decodes integers as pixels and floats as ratios.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a number", node.Line)
	}
	if px, err := strconv.ParseInt(node.Value, 10, 32); err == nil {
		*s = PixelSize(int32(px))
		return nil
	}
	r, err := strconv.ParseFloat(node.Value, 32)
	if err != nil {
		return fmt.Errorf("line %d: invalid size %q", node.Line, node.Value)
	}
	*s = RatioSize(float32(r))
	return nil
}

// MarshalYAML encodes s back to its scalar form.
func (s Size) MarshalYAML() (interface{}, error) {
	if s.isRatio {
		return float64(s.Ratio), nil
	}
	return int(s.Pixels), nil
}

// MarshalJSON encodes s as a bare number.
func (s Size) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}
