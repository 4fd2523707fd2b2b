package utils

import (
	"image/color"
	"testing"
)

var testPalette = []color.RGBA{
	{0xFE, 0x8E, 0xC1, 0xFF},
	{0xAF, 0xEC, 0x8F, 0xFF},
	{0x98, 0xAF, 0xFD, 0xFF},
}

func TestRadialVignette(t *testing.T) {
	img := RadialVignette(160, 90)

	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Fatalf("bounds: got %v", b)
	}
	if a := img.NRGBAAt(80, 45).A; a > 5 {
		t.Errorf("center alpha: got %d, want ~0", a)
	}
	if a := img.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("corner alpha: got %d, want 255", a)
	}
	// 越靠外越暗
	if img.NRGBAAt(100, 45).A > img.NRGBAAt(140, 45).A {
		t.Error("alpha should grow with distance from the center")
	}
}

func TestGradientAt(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want color.RGBA
	}{
		{"起点", 0, testPalette[0]},
		{"中点", 0.5, testPalette[1]},
		{"终点", 1, testPalette[2]},
		{"越界取端点", 2, testPalette[2]},
		{"负数取起点", -1, testPalette[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradientAt(testPalette, tt.t); got != tt.want {
				t.Errorf("GradientAt(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	if got := GradientAt(nil, 0.5); got != (color.RGBA{}) {
		t.Errorf("empty palette: got %v", got)
	}
}

func TestGlowDisc(t *testing.T) {
	sharp := GlowDisc(10, 0, testPalette)
	if b := sharp.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("unblurred bounds: got %v, want 20x20", b)
	}
	if sharp.NRGBAAt(0, 0).A != 0 {
		t.Error("corner outside the disc should be transparent")
	}
	if sharp.NRGBAAt(10, 10).A != 255 {
		t.Error("center of the disc should be opaque")
	}

	blurred := GlowDisc(10, 4, testPalette)
	// 边距 2 × blur
	if b := blurred.Bounds(); b.Dx() != 36 {
		t.Fatalf("blurred bounds: got %v, want 36x36", b)
	}
	// 模糊把光扩散到圆外
	if blurred.NRGBAAt(18, 5).A == 0 {
		t.Error("blur should spread light outside the disc")
	}
	if blurred.NRGBAAt(18, 18).A == 0 {
		t.Error("center should stay lit after blurring")
	}
}

func TestDownscale(t *testing.T) {
	img := RadialVignette(100, 50)
	small := Downscale(img, 0.25)
	if b := small.Bounds(); b.Dx() != 25 || b.Dy() != 13 {
		t.Errorf("bounds: got %v, want 25x13", b)
	}
}
