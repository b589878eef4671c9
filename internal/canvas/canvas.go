// Package canvas turns an extracted video frame into the poster base
// canvas: letterbox removal, aspect fitting, and HDR brightness lift.
package canvas

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
)

// Build loads the extracted frame and prepares the poster base canvas
// according to the settings. The returned image has the configured
// aspect ratio unless the fill strategy is Original.
func Build(framePath string, video *ffprobe.VideoMetadata, settings *config.PosterSettings) (image.Image, error) {
	frame, err := LoadFrame(framePath)
	if err != nil {
		return nil, err
	}

	if settings.Letterbox.Enabled {
		cropped := CropLetterbox(frame, settings.Letterbox)
		if cropped.Bounds() != frame.Bounds() {
			logging.Debug("letterbox removed",
				"frame", framePath,
				"before", frame.Bounds().Size(), "after", cropped.Bounds().Size())
		}
		frame = cropped
	}

	canvas := applyFill(frame, settings)

	if video != nil && video.IsHDR() && settings.BrightenHDRPct > 0 {
		canvas = imaging.AdjustBrightness(canvas, settings.BrightenHDRPct)
	}

	return canvas, nil
}

// LoadFrame decodes the frame image from disk. Zero-byte or undecodable
// files return a typed error rather than panicking downstream.
func LoadFrame(framePath string) (image.Image, error) {
	info, err := os.Stat(framePath)
	if err != nil {
		return nil, errors.NewCanvasError("frame file not accessible: "+framePath, err)
	}
	if info.Size() == 0 {
		return nil, errors.NewCanvasError("frame file is empty: "+framePath, nil)
	}

	f, err := os.Open(framePath)
	if err != nil {
		return nil, errors.NewCanvasError("cannot open frame: "+framePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewCanvasError("cannot decode frame: "+framePath, err)
	}
	return img, nil
}

// applyFill shapes the frame to the configured aspect ratio.
func applyFill(frame image.Image, settings *config.PosterSettings) image.Image {
	switch settings.Fill {
	case config.FillOriginal:
		return frame
	case config.FillFit:
		return fitOnBlack(frame, settings)
	default:
		w, h := targetSize(frame, settings)
		return imaging.Fill(frame, w, h, imaging.Center, imaging.Lanczos)
	}
}

// fitOnBlack letterbox-fits the frame onto a black canvas of the target
// aspect ratio.
func fitOnBlack(frame image.Image, settings *config.PosterSettings) image.Image {
	w, h := targetSize(frame, settings)
	fitted := imaging.Fit(frame, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, color.Black)
	return imaging.PasteCenter(canvas, fitted)
}

// targetSize derives the poster pixel dimensions from the frame and the
// configured aspect ratio. The frame's longer fitting edge is kept so no
// upscaling beyond the source is introduced on that axis.
func targetSize(frame image.Image, settings *config.PosterSettings) (int, int) {
	bounds := frame.Bounds()
	fw, fh := bounds.Dx(), bounds.Dy()
	aspect := settings.AspectRatio()

	frameAspect := float64(fw) / float64(fh)
	if frameAspect >= aspect {
		// Wider than the poster: height is the limiting edge.
		h := fh
		w := int(float64(h) * aspect)
		if w < 1 {
			w = 1
		}
		return w, h
	}
	w := fw
	h := int(float64(w) / aspect)
	if h < 1 {
		h = 1
	}
	return w, h
}
