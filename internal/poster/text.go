package poster

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ellipsis is appended to truncated text.
const ellipsis = "…"

// fontFace pairs a sized face with its configured color.
type fontFace struct {
	face  font.Face
	color color.NRGBA
}

// measureString returns the pixel width of s in the given face.
func measureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// lineHeight returns the face's line advance in pixels.
func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// layoutText fits text into maxWidth: a single line if it fits, else two
// lines split at the word boundary minimizing the width difference, with
// each overlong line truncated to an ellipsis. Returns at most two lines.
func layoutText(face font.Face, text string, maxWidth int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if measureString(face, text) <= maxWidth {
		return []string{text}
	}

	first, second := splitBalanced(face, text)
	if second == "" {
		return []string{truncateToWidth(face, first, maxWidth)}
	}
	return []string{
		truncateToWidth(face, first, maxWidth),
		truncateToWidth(face, second, maxWidth),
	}
}

// splitBalanced splits text into two lines at the word boundary that
// minimizes the difference in rendered width between them.
func splitBalanced(face font.Face, text string) (string, string) {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text, ""
	}

	bestDiff := -1
	bestFirst, bestSecond := text, ""
	for i := 1; i < len(words); i++ {
		first := strings.Join(words[:i], " ")
		second := strings.Join(words[i:], " ")
		diff := measureString(face, first) - measureString(face, second)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			bestFirst, bestSecond = first, second
		}
	}
	return bestFirst, bestSecond
}

// truncateToWidth shortens s until it fits maxWidth with a trailing
// ellipsis, using binary search over the prefix length.
func truncateToWidth(face font.Face, s string, maxWidth int) string {
	if measureString(face, s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		candidate := strings.TrimSpace(string(runes[:mid])) + ellipsis
		if measureString(face, candidate) <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return ellipsis
	}
	return strings.TrimSpace(string(runes[:lo])) + ellipsis
}

// shadowOffsetFor scales the text shadow with the glyph size.
func shadowOffsetFor(face font.Face) int {
	off := lineHeight(face) / 24
	if off < 1 {
		off = 1
	}
	return off
}

// drawString draws s with its baseline at (x, y), with a dark offset
// shadow underneath for contrast against bright frames.
func drawString(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	off := shadowOffsetFor(face)
	shadow := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{A: 180}),
		Face: face,
		Dot:  fixed.P(x+off, y+off),
	}
	shadow.DrawString(s)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
}

// drawStringCentered draws s horizontally centered around centerX.
func drawStringCentered(dst draw.Image, face font.Face, s string, centerX, baselineY int, c color.Color) {
	x := centerX - measureString(face, s)/2
	drawString(dst, face, s, x, baselineY, c)
}

// drawPlainString draws s without a shadow.
func drawPlainString(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
}

// drawBorder strokes the given rectangle with the given line width.
func drawBorder(dst draw.Image, rect image.Rectangle, stroke int, c color.Color) {
	src := image.NewUniform(c)
	top := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+stroke)
	bottom := image.Rect(rect.Min.X, rect.Max.Y-stroke, rect.Max.X, rect.Max.Y)
	left := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+stroke, rect.Max.Y)
	right := image.Rect(rect.Max.X-stroke, rect.Min.Y, rect.Max.X, rect.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Over)
	}
}

// drawMaskString draws s into an alpha mask at full coverage. Used by
// the cutout style to clear glyph shapes out of the overlay.
func drawMaskString(mask *image.Alpha, face font.Face, s string, x, y int) {
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
}
