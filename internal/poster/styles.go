package poster

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
)

// renderStandard stacks the episode code over the wrapped title at the
// bottom of the safe area, centered.
func renderStandard(r *Renderer, ctx *renderContext) error {
	return r.drawBottomStack(ctx, ctx.safe)
}

// drawBottomStack draws code and title bottom-up inside the given
// region. Shared by the standard, logo, and frame styles.
func (r *Renderer) drawBottomStack(ctx *renderContext, region image.Rectangle) error {
	centerX := region.Min.X + region.Dx()/2
	baseline := region.Max.Y

	if ctx.settings.ShowTitle && ctx.settings.Title.Enabled && ctx.ep.Title != "" {
		tf, err := r.titleFace(ctx)
		if err != nil {
			return err
		}
		lines := layoutText(tf.face, ctx.ep.Title, region.Dx())
		for i := len(lines) - 1; i >= 0; i-- {
			drawStringCentered(ctx.dst, tf.face, lines[i], centerX, baseline, tf.color)
			baseline -= lineHeight(tf.face)
		}
		baseline -= lineHeight(tf.face) / 4
	}

	if ctx.settings.ShowEpisode && ctx.settings.Episode.Enabled && ctx.ep.Parsed() {
		ef, err := r.episodeFace(ctx)
		if err != nil {
			return err
		}
		drawStringCentered(ctx.dst, ef.face, EpisodeCode(ctx.ep), centerX, baseline, ef.color)
	}
	return nil
}

// renderCutout clears the episode number out of the overlay so the frame
// shows through the glyphs, then composites the overlay.
func renderCutout(r *Renderer, ctx *renderContext) error {
	text := EpisodeCode(ctx.ep)
	if ctx.settings.CutoutType == config.CutoutWords {
		text = NumberToWords(ctx.ep.EpisodeStart)
	}

	face, err := r.fitFace(ctx.settings.Episode.FontPath, text, ctx.safe.Dx(), ctx.safe.Dy())
	if err != nil {
		return err
	}

	centerX := ctx.safe.Min.X + ctx.safe.Dx()/2
	baseline := ctx.safe.Min.Y + ctx.safe.Dy()/2 + lineHeight(face)/3
	textX := centerX - measureString(face, text)/2

	if ctx.settings.CutoutBorder {
		// A rim of episode color under the cutout reads as a border
		// once the overlay is punched through.
		rim := ParseHexColor(ctx.settings.Episode.Color)
		off := shadowOffsetFor(face) * 2
		for _, d := range []image.Point{{X: -off}, {X: off}, {Y: -off}, {Y: off}} {
			drawPlainString(ctx.dst, face, text, textX+d.X, baseline+d.Y, rim)
		}
	}

	if !ctx.settings.Overlay.Enabled {
		return nil
	}

	overlay := buildOverlay(ctx.width(), ctx.height(), ctx.settings.Overlay)
	mask := image.NewAlpha(overlay.Bounds())
	drawMaskString(mask, face, text, textX, baseline)
	cutoutOverlay(overlay, mask)

	draw.Draw(ctx.dst, ctx.dst.Bounds(), overlay, image.Point{}, draw.Over)
	return nil
}

// renderNumeral centers the season-episode Roman numeral, sized to the
// largest face that fits the safe area, with the title underneath.
func renderNumeral(r *Renderer, ctx *renderContext) error {
	numeral := RomanNumeral(ctx.ep.EpisodeStart)

	face, err := r.fitFace(ctx.settings.Episode.FontPath, numeral, ctx.safe.Dx(), ctx.safe.Dy()*2/3)
	if err != nil {
		return err
	}

	centerX := ctx.safe.Min.X + ctx.safe.Dx()/2
	baseline := ctx.safe.Min.Y + ctx.safe.Dy()/2 + lineHeight(face)/3
	c := ParseHexColor(ctx.settings.Episode.Color)
	drawStringCentered(ctx.dst, face, numeral, centerX, baseline, c)

	if ctx.settings.ShowTitle && ctx.settings.Title.Enabled && ctx.ep.Title != "" {
		tf, err := r.titleFace(ctx)
		if err != nil {
			return err
		}
		titleY := baseline + lineHeight(face)/2 + lineHeight(tf.face)
		if titleY > ctx.safe.Max.Y {
			titleY = ctx.safe.Max.Y
		}
		for _, line := range layoutText(tf.face, ctx.ep.Title, ctx.safe.Dx()) {
			drawStringCentered(ctx.dst, tf.face, line, centerX, titleY, tf.color)
			titleY += lineHeight(tf.face)
		}
	}
	return nil
}

// renderLogo places the series logo (or the series name as text when no
// logo image exists) on the position grid, with code and title stacked
// at the bottom.
func renderLogo(r *Renderer, ctx *renderContext) error {
	ls := ctx.settings.Logo

	if ctx.ep.LogoPath != "" {
		logo, err := imaging.Open(ctx.ep.LogoPath)
		if err != nil {
			return errors.NewRenderError("cannot load logo "+ctx.ep.LogoPath, err)
		}
		targetH := int(float64(ctx.height()) * ls.HeightPct / 100)
		if targetH < 1 {
			targetH = 1
		}
		scaled := imaging.Resize(logo, 0, targetH, imaging.Lanczos)
		origin := gridOrigin(ctx.safe, scaled.Bounds().Dx(), scaled.Bounds().Dy(), ls.Position, ls.Alignment)
		rect := image.Rectangle{Min: origin, Max: origin.Add(scaled.Bounds().Size())}
		draw.Draw(ctx.dst, rect, scaled, image.Point{}, draw.Over)
	} else if ctx.ep.SeriesName != "" {
		tf, err := r.titleFace(ctx)
		if err != nil {
			return err
		}
		lines := layoutText(tf.face, ctx.ep.SeriesName, ctx.safe.Dx())
		blockH := len(lines) * lineHeight(tf.face)
		origin := gridOrigin(ctx.safe, ctx.safe.Dx(), blockH, ls.Position, ls.Alignment)
		baseline := origin.Y + lineHeight(tf.face)
		for _, line := range lines {
			drawStringCentered(ctx.dst, tf.face, line, ctx.safe.Min.X+ctx.safe.Dx()/2, baseline, tf.color)
			baseline += lineHeight(tf.face)
		}
	}

	return r.drawBottomStack(ctx, ctx.safe)
}

// renderFrame draws a border stroke inset on the safe area with the code
// at the top and the title at the bottom, both inside the frame.
func renderFrame(r *Renderer, ctx *renderContext) error {
	stroke := ctx.height() / 180
	if stroke < 2 {
		stroke = 2
	}
	c := ParseHexColor(ctx.settings.Episode.Color)
	drawBorder(ctx.dst, ctx.safe, stroke, c)

	inner := safeArea(ctx.safe, 6)

	if ctx.settings.ShowEpisode && ctx.settings.Episode.Enabled && ctx.ep.Parsed() {
		ef, err := r.episodeFace(ctx)
		if err != nil {
			return err
		}
		topBaseline := inner.Min.Y + lineHeight(ef.face)
		drawStringCentered(ctx.dst, ef.face, EpisodeCode(ctx.ep), inner.Min.X+inner.Dx()/2, topBaseline, ef.color)
	}

	if ctx.settings.ShowTitle && ctx.settings.Title.Enabled && ctx.ep.Title != "" {
		tf, err := r.titleFace(ctx)
		if err != nil {
			return err
		}
		baseline := inner.Max.Y
		lines := layoutText(tf.face, ctx.ep.Title, inner.Dx())
		for i := len(lines) - 1; i >= 0; i-- {
			drawStringCentered(ctx.dst, tf.face, lines[i], inner.Min.X+inner.Dx()/2, baseline, tf.color)
			baseline -= lineHeight(tf.face)
		}
	}
	return nil
}

// renderBrush paints a ragged horizontal stroke near the bottom of the
// canvas and sets the text on it. Stroke edges are jittered from the
// renderer's seeded source, so identical seeds reproduce identical
// strokes.
func renderBrush(r *Renderer, ctx *renderContext) error {
	tf, err := r.titleFace(ctx)
	if err != nil {
		return err
	}
	ef, err := r.episodeFace(ctx)
	if err != nil {
		return err
	}

	bandH := lineHeight(tf.face) + lineHeight(ef.face) + lineHeight(tf.face)/2
	bandBottom := ctx.safe.Max.Y
	bandTop := bandBottom - bandH

	stroke := ParseHexColor(ctx.settings.Overlay.PrimaryColor)
	if stroke.A == 0 {
		stroke = ParseHexColor("#CC000000")
	}
	jitter := lineHeight(ef.face) / 3

	band := image.NewNRGBA(image.Rect(0, 0, ctx.width(), ctx.height()))
	for x := 0; x < ctx.width(); x++ {
		top := bandTop - r.rng.Intn(jitter+1)
		bottom := bandBottom + r.rng.Intn(jitter+1)
		for y := top; y < bottom && y < ctx.height(); y++ {
			if y < 0 {
				continue
			}
			band.SetNRGBA(x, y, stroke)
		}
	}
	draw.Draw(ctx.dst, ctx.dst.Bounds(), band, image.Point{}, draw.Over)

	return r.drawBottomStack(ctx, image.Rect(ctx.safe.Min.X, bandTop, ctx.safe.Max.X, bandBottom))
}

// renderSplit fills the bottom region with a solid panel, episode code
// on the left and the title on the right.
func renderSplit(r *Renderer, ctx *renderContext) error {
	panelH := ctx.height() / 4
	panelTop := ctx.height() - panelH

	panel := ParseHexColor(ctx.settings.Overlay.PrimaryColor)
	panel.A = 255
	rect := image.Rect(0, panelTop, ctx.width(), ctx.height())
	draw.Draw(ctx.dst, rect, image.NewUniform(panel), image.Point{}, draw.Src)

	midY := panelTop + panelH/2

	if ctx.settings.ShowEpisode && ctx.settings.Episode.Enabled && ctx.ep.Parsed() {
		ef, err := r.episodeFace(ctx)
		if err != nil {
			return err
		}
		baseline := midY + lineHeight(ef.face)/3
		drawString(ctx.dst, ef.face, EpisodeCode(ctx.ep), ctx.safe.Min.X, baseline, ef.color)
	}

	if ctx.settings.ShowTitle && ctx.settings.Title.Enabled && ctx.ep.Title != "" {
		tf, err := r.titleFace(ctx)
		if err != nil {
			return err
		}
		half := ctx.safe.Dx() / 2
		lines := layoutText(tf.face, ctx.ep.Title, half)
		baseline := midY - (len(lines)-1)*lineHeight(tf.face)/2 + lineHeight(tf.face)/3
		for _, line := range lines {
			x := ctx.safe.Max.X - measureString(tf.face, line)
			drawString(ctx.dst, tf.face, line, x, baseline, tf.color)
			baseline += lineHeight(tf.face)
		}
	}
	return nil
}

// fitFace finds the largest face for the font at which text fits the
// given box, by binary search over the pixel size.
func (r *Renderer) fitFace(fontPath, text string, maxWidth, maxHeight int) (font.Face, error) {
	lo, hi := 8, maxHeight
	if hi < lo {
		hi = lo
	}
	best := lo
	for lo <= hi {
		mid := (lo + hi) / 2
		face, err := r.fonts.Face(fontPath, mid)
		if err != nil {
			return nil, err
		}
		if measureString(face, text) <= maxWidth && lineHeight(face) <= maxHeight {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return r.fonts.Face(fontPath, best)
}
