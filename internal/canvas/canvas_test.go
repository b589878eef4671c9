package canvas

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/colorscience"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
)

// solidImage builds a uniform gray test frame.
func solidImage(w, h int, gray uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := color.NRGBA{R: gray, G: gray, B: gray, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// letterboxedImage builds a gray frame with black bars top and bottom.
func letterboxedImage(w, h, barHeight int) *image.NRGBA {
	img := solidImage(w, h, 128)
	for y := 0; y < barHeight; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
			img.Set(x, h-1-y, color.NRGBA{A: 255})
		}
	}
	return img
}

func writeFramePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create frame: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	return path
}

func letterboxSettings() config.LetterboxSettings {
	return config.LetterboxSettings{
		Enabled:       true,
		Threshold:     config.DefaultLetterboxThreshold,
		ConfidencePct: config.DefaultLetterboxConfidencePct,
	}
}

func TestLoadFrameEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFrame(path)
	if err == nil {
		t.Fatal("expected error for zero-byte frame")
	}
	if !errors.IsKind(err, errors.KindCanvas) {
		t.Errorf("expected canvas error kind, got %v", err)
	}
}

func TestLoadFrameUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadFrame(path); !errors.IsKind(err, errors.KindCanvas) {
		t.Errorf("expected canvas error kind, got %v", err)
	}
}

func TestLoadFrameMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	if _, err := LoadFrame(path); !errors.IsKind(err, errors.KindCanvas) {
		t.Errorf("expected canvas error kind, got %v", err)
	}
}

func TestCropLetterboxRemovesBars(t *testing.T) {
	img := letterboxedImage(320, 180, 22)
	cropped := CropLetterbox(img, letterboxSettings())

	if got := cropped.Bounds().Dy(); got != 180-2*22 {
		t.Errorf("cropped height = %d, want %d", got, 180-2*22)
	}
	if got := cropped.Bounds().Dx(); got != 320 {
		t.Errorf("cropped width = %d, want 320", got)
	}
}

func TestCropLetterboxNoBars(t *testing.T) {
	img := solidImage(320, 180, 128)
	cropped := CropLetterbox(img, letterboxSettings())
	if cropped.Bounds() != img.Bounds() {
		t.Errorf("unletterboxed frame was cropped to %v", cropped.Bounds())
	}
}

func TestCropLetterboxAllBlackKeepsCenter(t *testing.T) {
	img := solidImage(320, 180, 0)
	cropped := CropLetterbox(img, letterboxSettings())
	if cropped.Bounds().Dx() <= 0 || cropped.Bounds().Dy() <= 0 {
		t.Errorf("all-black frame collapsed to %v", cropped.Bounds())
	}
	// Both axes keep at least the uncroppable center portion.
	if got := cropped.Bounds().Dy(); got < 36 {
		t.Errorf("cropped height = %d, want >= 36", got)
	}
}

func TestBuildFillCrop(t *testing.T) {
	path := writeFramePNG(t, solidImage(1920, 1080, 128))
	settings := config.DefaultPosterSettings()
	settings.Fill = config.FillCrop

	img, err := Build(path, nil, &settings)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
	want := settings.AspectRatio()
	if got < want-0.01 || got > want+0.01 {
		t.Errorf("aspect = %v, want %v", got, want)
	}
}

func TestBuildFillOriginalKeepsDimensions(t *testing.T) {
	path := writeFramePNG(t, solidImage(640, 480, 128))
	settings := config.DefaultPosterSettings()
	settings.Fill = config.FillOriginal
	settings.Letterbox.Enabled = false

	img, err := Build(path, nil, &settings)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("dimensions = %v, want 640x480", img.Bounds().Size())
	}
}

func TestBuildFillFitPadsOntoBlack(t *testing.T) {
	// A square source fitted into 16:9 leaves black pillars.
	path := writeFramePNG(t, solidImage(500, 500, 200))
	settings := config.DefaultPosterSettings()
	settings.Fill = config.FillFit
	settings.Letterbox.Enabled = false

	img, err := Build(path, nil, &settings)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
	want := settings.AspectRatio()
	if got < want-0.01 || got > want+0.01 {
		t.Errorf("aspect = %v, want %v", got, want)
	}

	// Left edge should be padding, center should be content.
	b := img.Bounds()
	if lum := luminance(img, b.Min.X, b.Min.Y+b.Dy()/2); lum > 10 {
		t.Errorf("expected black padding at left edge, luminance %d", lum)
	}
	if lum := luminance(img, b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2); lum < 100 {
		t.Errorf("expected content at center, luminance %d", lum)
	}
}

func TestBuildBrightensHDR(t *testing.T) {
	path := writeFramePNG(t, solidImage(1920, 1080, 100))
	settings := config.DefaultPosterSettings()
	settings.Letterbox.Enabled = false

	video := &ffprobe.VideoMetadata{Range: colorscience.RangeHDR10}
	bright, err := Build(path, video, &settings)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sdr := &ffprobe.VideoMetadata{Range: colorscience.RangeSDR}
	normal, err := Build(path, sdr, &settings)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bb, nb := bright.Bounds(), normal.Bounds()
	lb := luminance(bright, bb.Min.X+bb.Dx()/2, bb.Min.Y+bb.Dy()/2)
	ln := luminance(normal, nb.Min.X+nb.Dx()/2, nb.Min.Y+nb.Dy()/2)
	if lb <= ln {
		t.Errorf("HDR frame not brightened: hdr=%d sdr=%d", lb, ln)
	}
}
