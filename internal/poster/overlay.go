package poster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

// buildOverlay renders the tint layer for a w×h canvas: a solid color or
// a two-color gradient along the configured direction.
func buildOverlay(w, h int, settings config.OverlaySettings) *image.NRGBA {
	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	primary := ParseHexColor(settings.PrimaryColor)

	if !settings.Gradient {
		draw.Draw(overlay, overlay.Bounds(), image.NewUniform(primary), image.Point{}, draw.Src)
		return overlay
	}

	secondary := ParseHexColor(settings.SecondaryColor)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := gradientPosition(x, y, w, h, settings.Direction)
			overlay.SetNRGBA(x, y, lerpColor(primary, secondary, t))
		}
	}
	return overlay
}

// gradientPosition maps a pixel to its 0..1 position along the gradient
// axis. 0 is the primary color end.
func gradientPosition(x, y, w, h int, dir config.GradientDirection) float64 {
	dw, dh := w-1, h-1
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	fx := float64(x) / float64(dw)
	fy := float64(y) / float64(dh)

	switch dir {
	case config.GradientLeftRight:
		return fx
	case config.GradientDiagonalDown:
		return (fx + fy) / 2
	case config.GradientDiagonalUp:
		return (fx + (1 - fy)) / 2
	default:
		// Bottom to top: primary anchored at the bottom edge.
		return 1 - fy
	}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.NRGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// cutoutOverlay clears the mask's glyph shapes out of the overlay's
// alpha channel so the base frame shows through the text.
func cutoutOverlay(overlay *image.NRGBA, mask *image.Alpha) {
	bounds := overlay.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			c := overlay.NRGBAAt(x, y)
			c.A = uint8(uint16(c.A) * uint16(255-m) / 255)
			overlay.SetNRGBA(x, y, c)
		}
	}
}
