package poster

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
)

// FontPixels converts a configured percentage into a pixel size relative
// to the canvas height, scaled so the safe area margins do not shrink
// the intended visual proportion. Always at least 1px.
func FontPixels(sizePct, heightPx, safeAreaPct float64) int {
	usable := 100 - 2*safeAreaPct
	if usable <= 0 {
		return 1
	}
	px := int(heightPx * sizePct / usable)
	if px < 1 {
		px = 1
	}
	return px
}

// FontCache parses font files once and builds faces per pixel size.
// Faces are cached because opentype face construction is not cheap and a
// batch renders hundreds of posters with the same few sizes.
type FontCache struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	path   string
	pixels int
}

// NewFontCache creates an empty font cache.
func NewFontCache() *FontCache {
	return &FontCache{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face returns a font face for the given font file at the given pixel
// size. An empty path selects the bundled default typeface.
func (c *FontCache) Face(path string, pixels int) (font.Face, error) {
	if pixels < 1 {
		pixels = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{path: path, pixels: pixels}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	f, err := c.loadFontLocked(path)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(pixels),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.NewRenderError(
			fmt.Sprintf("cannot build %dpx face for %s", pixels, fontName(path)), err)
	}

	c.faces[key] = face
	return face, nil
}

func (c *FontCache) loadFontLocked(path string) (*opentype.Font, error) {
	if f, ok := c.fonts[path]; ok {
		return f, nil
	}

	data := gobold.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.NewRenderError("cannot read font file "+path, err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.NewRenderError("cannot parse font "+fontName(path), err)
	}

	c.fonts[path] = f
	return f, nil
}

func fontName(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}
