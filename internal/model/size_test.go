package model

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSize_UnmarshalYAML(t *testing.T) {
	var doc struct {
		A Size `yaml:"a"`
		B Size `yaml:"b"`
	}
	if err := yaml.Unmarshal([]byte("a: 1200\nb: 0.5\n"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.A.IsRatio() || doc.A.Pixels != 1200 {
		t.Fatalf("expected 1200px, got %+v", doc.A)
	}
	if !doc.B.IsRatio() || doc.B.Ratio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %+v", doc.B)
	}
}

func TestSize_UnmarshalYAMLRejectsText(t *testing.T) {
	var doc struct {
		A Size `yaml:"a"`
	}
	if err := yaml.Unmarshal([]byte("a: wide\n"), &doc); err == nil {
		t.Fatalf("expected error for non-numeric size")
	}
}

func TestSize_Resolve(t *testing.T) {
	if got := PixelSize(640).Resolve(1920); got != 640 {
		t.Fatalf("expected 640, got %d", got)
	}
	if got := RatioSize(0.25).Resolve(1920); got != 480 {
		t.Fatalf("expected 480, got %d", got)
	}
}
