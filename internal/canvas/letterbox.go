package canvas

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

// maxBorderFraction caps how much of each axis letterbox removal may
// take. A frame that is mostly black keeps its center instead of
// collapsing to nothing.
const maxBorderFraction = 0.4

// CropLetterbox removes uniform near-black borders from the frame. A row
// or column is treated as border when at least ConfidencePct percent of
// its pixels fall at or below the luminance threshold. The original
// frame is returned unchanged when no border is found.
func CropLetterbox(frame image.Image, settings config.LetterboxSettings) image.Image {
	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 4 || h < 4 {
		return frame
	}

	maxV := int(float64(h) * maxBorderFraction)
	maxH := int(float64(w) * maxBorderFraction)

	top := 0
	for top < maxV && rowIsBlack(frame, bounds.Min.Y+top, settings) {
		top++
	}
	bottom := 0
	for bottom < maxV && rowIsBlack(frame, bounds.Max.Y-1-bottom, settings) {
		bottom++
	}
	left := 0
	for left < maxH && colIsBlack(frame, bounds.Min.X+left, settings) {
		left++
	}
	right := 0
	for right < maxH && colIsBlack(frame, bounds.Max.X-1-right, settings) {
		right++
	}

	if top == 0 && bottom == 0 && left == 0 && right == 0 {
		return frame
	}

	rect := image.Rect(
		bounds.Min.X+left,
		bounds.Min.Y+top,
		bounds.Max.X-right,
		bounds.Max.Y-bottom,
	)
	return imaging.Crop(frame, rect)
}

// rowIsBlack reports whether row y qualifies as a letterbox border.
func rowIsBlack(img image.Image, y int, settings config.LetterboxSettings) bool {
	bounds := img.Bounds()
	dark, total := 0, 0
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		total++
		if luminance(img, x, y) <= settings.Threshold {
			dark++
		}
	}
	return confident(dark, total, settings.ConfidencePct)
}

// colIsBlack reports whether column x qualifies as a pillarbox border.
func colIsBlack(img image.Image, x int, settings config.LetterboxSettings) bool {
	bounds := img.Bounds()
	dark, total := 0, 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		total++
		if luminance(img, x, y) <= settings.Threshold {
			dark++
		}
	}
	return confident(dark, total, settings.ConfidencePct)
}

func confident(dark, total int, confidencePct float64) bool {
	if total == 0 {
		return false
	}
	return float64(dark)/float64(total)*100 >= confidencePct
}

// luminance returns the Rec.601 luma of the pixel on a 0-255 scale.
func luminance(img image.Image, x, y int) int {
	r, g, b, _ := img.At(x, y).RGBA()
	// RGBA returns 16-bit channels.
	return int((299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000)
}
