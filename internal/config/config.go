// Package config provides configuration types and defaults for poster generation.
package config

import (
	"fmt"
	"strings"
)

// Default constants
const (
	// DefaultAspectWidth is the horizontal component of the default poster ratio.
	DefaultAspectWidth = 16

	// DefaultAspectHeight is the vertical component of the default poster ratio.
	DefaultAspectHeight = 9

	// DefaultSafeAreaPct is the default safe-area margin as a percentage of
	// each poster dimension.
	DefaultSafeAreaPct = 5.0

	// DefaultQuality is the encode quality for lossy output formats.
	DefaultQuality = 95

	// DefaultEpisodeFontSizePct is the episode-code font size as a percentage
	// of poster height.
	DefaultEpisodeFontSizePct = 7.0

	// DefaultTitleFontSizePct is the title font size as a percentage of
	// poster height.
	DefaultTitleFontSizePct = 10.0

	// DefaultExtractionStartPct is the start of the frame extraction window
	// as a fraction of video duration.
	DefaultExtractionStartPct = 0.2

	// DefaultExtractionEndPct is the end of the frame extraction window
	// as a fraction of video duration.
	DefaultExtractionEndPct = 0.8

	// DefaultBlackPixelThreshold is the blackdetect pixel luminance threshold.
	DefaultBlackPixelThreshold = 0.10

	// DefaultBlackMinDurationSecs is the minimum black run length reported
	// by blackdetect.
	DefaultBlackMinDurationSecs = 0.5

	// DefaultLetterboxThreshold is the 0-255 brightness ceiling for a pixel
	// to count as letterbox black.
	DefaultLetterboxThreshold = 24

	// DefaultLetterboxConfidencePct is the percentage of border pixels that
	// must be black before a border row or column is cropped.
	DefaultLetterboxConfidencePct = 92.0

	// DefaultBrightenHDRPct is the brightness lift applied to frames decoded
	// from HDR sources. Tonemapped stills tend to come out under-exposed.
	DefaultBrightenHDRPct = 25.0

	// DefaultGraphicSizePct is the default graphic size as a percentage of
	// the poster dimensions.
	DefaultGraphicSizePct = 20.0

	// DefaultLogoHeightPct is the default logo height as a percentage of
	// poster height.
	DefaultLogoHeightPct = 16.0

	// MaxSafeAreaPct is the exclusive upper bound for the safe-area margin.
	MaxSafeAreaPct = 100.0
)

// Style selects the poster typography treatment.
type Style string

const (
	StyleStandard Style = "standard"
	StyleCutout   Style = "cutout"
	StyleNumeral  Style = "numeral"
	StyleLogo     Style = "logo"
	StyleFrame    Style = "frame"
	StyleBrush    Style = "brush"
	StyleSplit    Style = "split"
)

// ParseStyle parses a string into a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "standard":
		return StyleStandard, nil
	case "cutout":
		return StyleCutout, nil
	case "numeral":
		return StyleNumeral, nil
	case "logo":
		return StyleLogo, nil
	case "frame":
		return StyleFrame, nil
	case "brush":
		return StyleBrush, nil
	case "split":
		return StyleSplit, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: standard, cutout, numeral, logo, frame, brush, split", ErrInvalidStyle, s)
	}
}

// String returns the string representation of the style.
func (s Style) String() string {
	return string(s)
}

// FillStrategy controls how the extracted frame reaches the poster aspect ratio.
type FillStrategy string

const (
	// FillOriginal keeps the frame dimensions untouched.
	FillOriginal FillStrategy = "original"
	// FillCrop scales and center-crops the frame to fill the target ratio.
	FillCrop FillStrategy = "fill"
	// FillFit scales the frame to fit inside the target ratio on a black mat.
	FillFit FillStrategy = "fit"
)

// ParseFillStrategy parses a string into a FillStrategy.
func ParseFillStrategy(s string) (FillStrategy, error) {
	switch strings.ToLower(s) {
	case "original":
		return FillOriginal, nil
	case "fill":
		return FillCrop, nil
	case "fit":
		return FillFit, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: original, fill, fit", ErrInvalidFillStrategy, s)
	}
}

// FileType is the output image format.
type FileType string

const (
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
	FileTypeGIF  FileType = "gif"
)

// ParseFileType parses a string into a FileType.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(s) {
	case "jpeg", "jpg":
		return FileTypeJPEG, nil
	case "png":
		return FileTypePNG, nil
	case "webp":
		return FileTypeWEBP, nil
	case "gif":
		return FileTypeGIF, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: jpeg, png, webp, gif", ErrInvalidFileType, s)
	}
}

// Extension returns the file extension for the type, including the dot.
func (f FileType) Extension() string {
	switch f {
	case FileTypePNG:
		return ".png"
	case FileTypeWEBP:
		return ".webp"
	case FileTypeGIF:
		return ".gif"
	default:
		return ".jpg"
	}
}

// GradientDirection is the direction of a two-color overlay gradient.
type GradientDirection string

const (
	GradientLeftRight    GradientDirection = "left-right"
	GradientBottomTop    GradientDirection = "bottom-top"
	GradientDiagonalDown GradientDirection = "diagonal-down"
	GradientDiagonalUp   GradientDirection = "diagonal-up"
)

// Position is the vertical slot of the 3x3 placement grid.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// Alignment is the horizontal slot of the 3x3 placement grid.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// CutoutType selects how the cutout style renders the episode number.
type CutoutType string

const (
	// CutoutCode cuts the S01E01-style episode code out of the overlay.
	CutoutCode CutoutType = "code"
	// CutoutWords cuts the spelled-out episode number out of the overlay.
	CutoutWords CutoutType = "words"
)

// ExtractionWindow bounds the portion of the video considered for frame
// extraction, as fractions of the total duration.
type ExtractionWindow struct {
	StartPct float64 `toml:"start_pct"`
	EndPct   float64 `toml:"end_pct"`
}

// TextSettings describes one typography element.
type TextSettings struct {
	Enabled    bool    `toml:"enabled"`
	FontFamily string  `toml:"font_family"`
	FontPath   string  `toml:"font_path"`
	SizePct    float64 `toml:"size_pct"`
	Color      string  `toml:"color"`
}

// OverlaySettings describes the tint layer drawn over the base canvas.
type OverlaySettings struct {
	Enabled        bool              `toml:"enabled"`
	PrimaryColor   string            `toml:"primary_color"`
	SecondaryColor string            `toml:"secondary_color"`
	Gradient       bool              `toml:"gradient"`
	Direction      GradientDirection `toml:"direction"`
}

// GraphicSettings describes the optional static graphic layer.
type GraphicSettings struct {
	Path      string    `toml:"path"`
	SizePct   float64   `toml:"size_pct"`
	Position  Position  `toml:"position"`
	Alignment Alignment `toml:"alignment"`
}

// LogoSettings describes the logo placement for the logo style.
type LogoSettings struct {
	Position  Position  `toml:"position"`
	Alignment Alignment `toml:"alignment"`
	HeightPct float64   `toml:"height_pct"`
}

// LetterboxSettings describes black border detection on extracted frames.
type LetterboxSettings struct {
	Enabled       bool    `toml:"enabled"`
	Threshold     int     `toml:"threshold"`
	ConfidencePct float64 `toml:"confidence_pct"`
}

// PosterSettings is the full rendering configuration for one episode poster.
// It is a value type; a resolved copy is handed to each render call.
type PosterSettings struct {
	Style        Style        `toml:"style"`
	AspectWidth  int          `toml:"aspect_width"`
	AspectHeight int          `toml:"aspect_height"`
	SafeAreaPct  float64      `toml:"safe_area_pct"`
	Fill         FillStrategy `toml:"fill"`
	FileType     FileType     `toml:"file_type"`
	Quality      int          `toml:"quality"`

	ShowEpisode bool         `toml:"show_episode"`
	ShowTitle   bool         `toml:"show_title"`
	Episode     TextSettings `toml:"episode_text"`
	Title       TextSettings `toml:"title_text"`

	Overlay OverlaySettings `toml:"overlay"`
	Graphic GraphicSettings `toml:"graphic"`
	Logo    LogoSettings    `toml:"logo"`

	CutoutType   CutoutType `toml:"cutout_type"`
	CutoutBorder bool       `toml:"cutout_border"`

	Letterbox      LetterboxSettings `toml:"letterbox"`
	BrightenHDRPct float64           `toml:"brighten_hdr_pct"`

	Window               ExtractionWindow `toml:"extraction_window"`
	BlackPixelThreshold  float64          `toml:"black_pixel_threshold"`
	BlackMinDurationSecs float64          `toml:"black_min_duration_secs"`
}

// DefaultPosterSettings returns the standard-style default configuration.
func DefaultPosterSettings() PosterSettings {
	return PosterSettings{
		Style:        StyleStandard,
		AspectWidth:  DefaultAspectWidth,
		AspectHeight: DefaultAspectHeight,
		SafeAreaPct:  DefaultSafeAreaPct,
		Fill:         FillCrop,
		FileType:     FileTypeJPEG,
		Quality:      DefaultQuality,
		ShowEpisode:  true,
		ShowTitle:    true,
		Episode: TextSettings{
			Enabled: true,
			SizePct: DefaultEpisodeFontSizePct,
			Color:   "#FFFFFF",
		},
		Title: TextSettings{
			Enabled: true,
			SizePct: DefaultTitleFontSizePct,
			Color:   "#FFFFFF",
		},
		Overlay: OverlaySettings{
			Enabled:        true,
			PrimaryColor:   "#66000000",
			SecondaryColor: "#00000000",
			Gradient:       true,
			Direction:      GradientBottomTop,
		},
		Graphic: GraphicSettings{
			SizePct:   DefaultGraphicSizePct,
			Position:  PositionTop,
			Alignment: AlignRight,
		},
		Logo: LogoSettings{
			Position:  PositionTop,
			Alignment: AlignCenter,
			HeightPct: DefaultLogoHeightPct,
		},
		CutoutType: CutoutCode,
		Letterbox: LetterboxSettings{
			Enabled:       true,
			Threshold:     DefaultLetterboxThreshold,
			ConfidencePct: DefaultLetterboxConfidencePct,
		},
		BrightenHDRPct: DefaultBrightenHDRPct,
		Window: ExtractionWindow{
			StartPct: DefaultExtractionStartPct,
			EndPct:   DefaultExtractionEndPct,
		},
		BlackPixelThreshold:  DefaultBlackPixelThreshold,
		BlackMinDurationSecs: DefaultBlackMinDurationSecs,
	}
}

// Validate checks the settings for errors.
func (s *PosterSettings) Validate() error {
	if s.SafeAreaPct < 0 || s.SafeAreaPct >= MaxSafeAreaPct {
		return fmt.Errorf("%w: safe_area_pct must be in [0,%g), got %g", ErrInvalidSafeArea, MaxSafeAreaPct, s.SafeAreaPct)
	}

	if s.AspectWidth <= 0 || s.AspectHeight <= 0 {
		return fmt.Errorf("%w: %d:%d", ErrInvalidAspectRatio, s.AspectWidth, s.AspectHeight)
	}

	if s.Quality < 1 || s.Quality > 100 {
		return fmt.Errorf("%w: quality must be 1-100, got %d", ErrInvalidQuality, s.Quality)
	}

	if s.Window.StartPct < 0 || s.Window.EndPct > 1 || s.Window.StartPct >= s.Window.EndPct {
		return fmt.Errorf("%w: [%g,%g]", ErrInvalidWindow, s.Window.StartPct, s.Window.EndPct)
	}

	if s.Episode.SizePct <= 0 || s.Title.SizePct <= 0 {
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidFontSize)
	}

	if s.Letterbox.Threshold < 0 || s.Letterbox.Threshold > 255 {
		return fmt.Errorf("%w: letterbox threshold must be 0-255, got %d", ErrInvalidLetterbox, s.Letterbox.Threshold)
	}

	return nil
}

// AspectRatio returns the target width/height ratio as a float.
func (s *PosterSettings) AspectRatio() float64 {
	return float64(s.AspectWidth) / float64(s.AspectHeight)
}
