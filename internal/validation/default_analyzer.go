package validation

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
)

// DefaultAnalyzer implements ImageAnalyzer using the registered image
// decoders.
type DefaultAnalyzer struct{}

// NewDefaultAnalyzer creates a new DefaultAnalyzer instance.
func NewDefaultAnalyzer() *DefaultAnalyzer {
	return &DefaultAnalyzer{}
}

// GetImageInfo returns the image header and file size without decoding
// pixel data.
func (a *DefaultAnalyzer) GetImageInfo(path string) (*AnalyzerImageInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewIOError("cannot stat poster "+path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("cannot open poster "+path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, errors.NewCanvasError("cannot decode poster header "+path, err)
	}

	return &AnalyzerImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: info.Size(),
	}, nil
}

// GetMeanLuminance decodes the full image and averages pixel luminance.
func (a *DefaultAnalyzer) GetMeanLuminance(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.NewIOError("cannot open poster "+path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, errors.NewCanvasError("cannot decode poster "+path, err)
	}

	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0, nil
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}
	return sum / float64(pixels), nil
}
