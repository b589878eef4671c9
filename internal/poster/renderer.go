// Package poster composes the final episode poster: overlay, optional
// graphic, and style-specific typography on top of the prepared canvas.
package poster

import (
	"image"
	"image/draw"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/discovery"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// typography renders the text layer for one poster style.
type typography func(r *Renderer, ctx *renderContext) error

// styleTypography maps each style to its typography strategy. One
// renderer drives all styles; only the text layer differs.
var styleTypography = map[config.Style]typography{
	config.StyleStandard: renderStandard,
	config.StyleCutout:   renderCutout,
	config.StyleNumeral:  renderNumeral,
	config.StyleLogo:     renderLogo,
	config.StyleFrame:    renderFrame,
	config.StyleBrush:    renderBrush,
	config.StyleSplit:    renderSplit,
}

// Renderer composes posters. It is safe for sequential reuse across a
// batch; the font cache persists between calls.
type Renderer struct {
	fonts *FontCache
	rng   *rand.Rand
}

// NewRenderer creates a renderer. The rng drives brush stroke jitter, so
// a seeded source makes renders reproducible.
func NewRenderer(rng *rand.Rand) *Renderer {
	return &Renderer{
		fonts: NewFontCache(),
		rng:   rng,
	}
}

// renderContext carries the per-poster state through the layer pipeline.
type renderContext struct {
	dst      *image.NRGBA
	ep       *discovery.Episode
	settings *config.PosterSettings
	safe     image.Rectangle
}

func (c *renderContext) width() int  { return c.dst.Bounds().Dx() }
func (c *renderContext) height() int { return c.dst.Bounds().Dy() }

// Render builds the poster from the prepared base canvas. Layers are
// applied in order: overlay, graphic, typography.
func (r *Renderer) Render(base image.Image, ep *discovery.Episode, settings *config.PosterSettings) (image.Image, error) {
	strategy, ok := styleTypography[settings.Style]
	if !ok {
		return nil, errors.NewRenderError("unknown poster style "+string(settings.Style), nil)
	}

	dst := imaging.Clone(base)
	ctx := &renderContext{
		dst:      dst,
		ep:       ep,
		settings: settings,
		safe:     safeArea(dst.Bounds(), settings.SafeAreaPct),
	}

	// The cutout style owns its overlay: glyphs are cleared from the
	// layer before it lands on the canvas.
	if settings.Overlay.Enabled && settings.Style != config.StyleCutout {
		overlay := buildOverlay(ctx.width(), ctx.height(), settings.Overlay)
		draw.Draw(dst, dst.Bounds(), overlay, image.Point{}, draw.Over)
	}

	if settings.Graphic.Path != "" {
		if err := r.drawGraphic(ctx); err != nil {
			// A missing watermark graphic should not sink the poster.
			logging.Warn("skipping graphic layer", "path", settings.Graphic.Path, "error", err)
		}
	}

	if err := strategy(r, ctx); err != nil {
		return nil, err
	}
	return dst, nil
}

// safeArea insets the canvas bounds by the safe-area percentage on every
// edge.
func safeArea(bounds image.Rectangle, safeAreaPct float64) image.Rectangle {
	dx := int(float64(bounds.Dx()) * safeAreaPct / 100)
	dy := int(float64(bounds.Dy()) * safeAreaPct / 100)
	return image.Rect(
		bounds.Min.X+dx,
		bounds.Min.Y+dy,
		bounds.Max.X-dx,
		bounds.Max.Y-dy,
	)
}

// gridOrigin places a box of size (w, h) in the safe area's 3×3
// position grid.
func gridOrigin(safe image.Rectangle, w, h int, pos config.Position, align config.Alignment) image.Point {
	var x, y int

	switch align {
	case config.AlignLeft:
		x = safe.Min.X
	case config.AlignRight:
		x = safe.Max.X - w
	default:
		x = safe.Min.X + (safe.Dx()-w)/2
	}

	switch pos {
	case config.PositionTop:
		y = safe.Min.Y
	case config.PositionBottom:
		y = safe.Max.Y - h
	default:
		y = safe.Min.Y + (safe.Dy()-h)/2
	}

	return image.Point{X: x, Y: y}
}

// drawGraphic loads and places the optional static graphic layer.
func (r *Renderer) drawGraphic(ctx *renderContext) error {
	g := ctx.settings.Graphic

	if !util.IsImageFile(g.Path) {
		return errors.NewRenderError("graphic is not a readable image file: "+g.Path, nil)
	}

	img, err := imaging.Open(g.Path)
	if err != nil {
		return errors.NewRenderError("cannot load graphic "+g.Path, err)
	}

	targetW := int(float64(ctx.width()) * g.SizePct / 100)
	if targetW < 1 {
		targetW = 1
	}
	scaled := imaging.Resize(img, targetW, 0, imaging.Lanczos)

	origin := gridOrigin(ctx.safe, scaled.Bounds().Dx(), scaled.Bounds().Dy(), g.Position, g.Alignment)
	rect := image.Rectangle{Min: origin, Max: origin.Add(scaled.Bounds().Size())}
	draw.Draw(ctx.dst, rect, scaled, image.Point{}, draw.Over)
	return nil
}

// episodeFace builds the face for the episode code text.
func (r *Renderer) episodeFace(ctx *renderContext) (fontFace, error) {
	px := FontPixels(ctx.settings.Episode.SizePct, float64(ctx.height()), ctx.settings.SafeAreaPct)
	face, err := r.fonts.Face(ctx.settings.Episode.FontPath, px)
	if err != nil {
		return fontFace{}, err
	}
	return fontFace{face: face, color: ParseHexColor(ctx.settings.Episode.Color)}, nil
}

// titleFace builds the face for the episode title text.
func (r *Renderer) titleFace(ctx *renderContext) (fontFace, error) {
	px := FontPixels(ctx.settings.Title.SizePct, float64(ctx.height()), ctx.settings.SafeAreaPct)
	face, err := r.fonts.Face(ctx.settings.Title.FontPath, px)
	if err != nil {
		return fontFace{}, err
	}
	return fontFace{face: face, color: ParseHexColor(ctx.settings.Title.Color)}, nil
}
