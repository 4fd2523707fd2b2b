package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// RadialVignette 生成径向暗角：中心完全透明，到 80% 半径处渐变为不透明黑色
//
// 半径取画面对角线的一半，与 CSS radial-gradient(circle at center, transparent 0%, #000 80%) 一致。
// 在初始化时生成一次，绘制时整体缩放到屏幕大小。
func RadialVignette(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	cx, cy := float64(width)/2, float64(height)/2
	radius := math.Hypot(cx, cy)
	if radius == 0 {
		return img
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / (radius * 0.8)
			a := Clamp01(d)
			img.SetNRGBA(x, y, color.NRGBA{A: uint8(math.Round(a * 255))})
		}
	}
	return img
}

// GlowDisc 生成模糊光晕纹理
//
// 先画一个从左到右按 colors 渐变的实心圆，再用高斯模糊（sigma = blur）柔化边缘。
// 画布四周预留 2 × blur 的边距，模糊后的光不会被裁掉。
func GlowDisc(radius, blur float64, colors []color.RGBA) *image.NRGBA {
	if radius < 1 {
		radius = 1
	}
	if blur < 0 {
		blur = 0
	}
	pad := math.Ceil(2 * blur)
	size := int(math.Ceil(2 * (radius + pad)))
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if math.Hypot(px-c, py-c) > radius {
				continue
			}
			t := (px - (c - radius)) / (2 * radius)
			img.SetNRGBA(x, y, toNRGBA(GradientAt(colors, t)))
		}
	}

	if blur == 0 {
		return img
	}
	return imaging.Blur(img, blur)
}

// GradientAt 在多段线性渐变上取色，t 超出 [0, 1] 时取端点颜色
func GradientAt(colors []color.RGBA, t float64) color.RGBA {
	switch len(colors) {
	case 0:
		return color.RGBA{}
	case 1:
		return colors[0]
	}

	t = Clamp01(t)
	pos := t * float64(len(colors)-1)
	i := int(pos)
	if i >= len(colors)-1 {
		return colors[len(colors)-1]
	}
	f := pos - float64(i)
	a, b := colors[i], colors[i+1]
	return color.RGBA{
		R: lerpByte(a.R, b.R, f),
		G: lerpByte(a.G, b.G, f),
		B: lerpByte(a.B, b.B, f),
		A: lerpByte(a.A, b.A, f),
	}
}

// Downscale 按比例缩小图片（用于在低分辨率下生成大尺寸模糊纹理）
func Downscale(img image.Image, factor float64) *image.NRGBA {
	b := img.Bounds()
	w := int(math.Max(1, math.Round(float64(b.Dx())*factor)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*factor)))
	return imaging.Resize(img, w, h, imaging.Linear)
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(Lerp(float64(a), float64(b), t)))
}

func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
