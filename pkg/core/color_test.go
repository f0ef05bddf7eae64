package core

import (
	"image/color"
	"math"
	"testing"
)

func TestColor_RGBA8Clamping(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected [4]uint8
	}{
		{"above one clamps to 255", NewColor(1.5, 0, 0, 1), [4]uint8{255, 0, 0, 255}},
		{"negative clamps to 0", NewColor(-0.2, 1, 0, 1), [4]uint8{0, 255, 0, 255}},
		{"alpha always opaque", NewColor(0, 0, 1, 0), [4]uint8{0, 0, 255, 255}},
		{"alpha above one still 255", NewColor(0, 0, 0, 7), [4]uint8{0, 0, 0, 255}},
		{"half truncates", Gray(0.5), [4]uint8{127, 127, 127, 255}},
		{"NaN maps to zero", NewColor(math.NaN(), 0, 0, 1), [4]uint8{0, 0, 0, 255}},
		{"transparent is opaque black", Transparent(), [4]uint8{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.color.RGBA8()
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestColor_ToRGBA(t *testing.T) {
	got := NewColor(1, 0.5, 2, 0).ToRGBA()
	expected := color.RGBA{R: 255, G: 127, B: 255, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestColor_Arithmetic(t *testing.T) {
	a := NewColor(0.5, 1, 2, 1)
	b := NewColor(2, 0.5, 0.25, 0)

	if got := a.Add(b); got != NewColor(2.5, 1.5, 2.25, 1) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.MultiplyColor(b); got != NewColor(1, 0.5, 0.5, 0) {
		t.Errorf("MultiplyColor: got %v", got)
	}
	if got := a.Multiply(2); got != NewColor(1, 2, 4, 2) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.Divide(2); got != NewColor(0.25, 0.5, 1, 0.5) {
		t.Errorf("Divide: got %v", got)
	}
	if got := a.DivideColor(All(0.5)); got != NewColor(1, 2, 4, 2) {
		t.Errorf("DivideColor: got %v", got)
	}
	if got := b.MaxRGB(); got != 2 {
		t.Errorf("MaxRGB: expected 2, got %f", got)
	}
}

func TestColor_IsTransparent(t *testing.T) {
	if !Transparent().IsTransparent() {
		t.Error("Transparent() should be transparent")
	}
	if NewColor(0, 0, 0, 1).IsTransparent() {
		t.Error("Opaque black carries alpha and is not the zero color")
	}
	if NewColor(1e-300, 0, 0, 0).IsTransparent() {
		t.Error("Tiny non-zero channel should not count as transparent")
	}
}

func TestColor_FromRGBA8RoundTrip(t *testing.T) {
	for _, v := range []uint8{0, 1, 127, 128, 254, 255} {
		p := [4]uint8{v, v, v, 255}
		got := ColorFromRGBA8(p).RGBA8()
		if got != p {
			t.Errorf("Round trip of %v produced %v", p, got)
		}
	}
}

func TestColor_FromStd(t *testing.T) {
	c := ColorFromStd(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	if c != NewColor(1, 0, 1, 1) {
		t.Errorf("Expected (1,0,1,1), got %v", c)
	}
}

func TestColor_FromStdUnpremultiplied(t *testing.T) {
	c := ColorFromStd(color.NRGBA{R: 255, G: 51, B: 0, A: 128})
	want := ColorFromRGBA8([4]uint8{255, 51, 0, 128})
	if c != want {
		t.Errorf("Expected straight channels %v, got %v", want, c)
	}
	if c.R != 1 {
		t.Errorf("Expected full red regardless of alpha, got %v", c.R)
	}
}
