package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPosterSettings(t *testing.T) {
	s := DefaultPosterSettings()

	if s.Style != StyleStandard {
		t.Errorf("expected style %s, got %s", StyleStandard, s.Style)
	}
	if s.AspectWidth != DefaultAspectWidth || s.AspectHeight != DefaultAspectHeight {
		t.Errorf("expected aspect %d:%d, got %d:%d",
			DefaultAspectWidth, DefaultAspectHeight, s.AspectWidth, s.AspectHeight)
	}
	if s.Quality != DefaultQuality {
		t.Errorf("expected quality %d, got %d", DefaultQuality, s.Quality)
	}
	if s.Fill != FillCrop {
		t.Errorf("expected fill %s, got %s", FillCrop, s.Fill)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings failed validation: %v", err)
	}
}

func TestPosterSettingsValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(s *PosterSettings)
		wantErr      bool
		wantSentinel error
	}{
		{
			name:   "defaults valid",
			modify: func(s *PosterSettings) {},
		},
		{
			name:         "safe area negative",
			modify:       func(s *PosterSettings) { s.SafeAreaPct = -1 },
			wantErr:      true,
			wantSentinel: ErrInvalidSafeArea,
		},
		{
			name:         "safe area at ceiling",
			modify:       func(s *PosterSettings) { s.SafeAreaPct = MaxSafeAreaPct },
			wantErr:      true,
			wantSentinel: ErrInvalidSafeArea,
		},
		{
			name:   "safe area just under ceiling",
			modify: func(s *PosterSettings) { s.SafeAreaPct = MaxSafeAreaPct - 0.1 },
		},
		{
			name:         "zero aspect width",
			modify:       func(s *PosterSettings) { s.AspectWidth = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidAspectRatio,
		},
		{
			name:         "negative aspect height",
			modify:       func(s *PosterSettings) { s.AspectHeight = -9 },
			wantErr:      true,
			wantSentinel: ErrInvalidAspectRatio,
		},
		{
			name:         "quality zero",
			modify:       func(s *PosterSettings) { s.Quality = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:         "quality above 100",
			modify:       func(s *PosterSettings) { s.Quality = 101 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:   "quality boundaries",
			modify: func(s *PosterSettings) { s.Quality = 1 },
		},
		{
			name:         "inverted extraction window",
			modify:       func(s *PosterSettings) { s.Window = ExtractionWindow{StartPct: 0.8, EndPct: 0.2} },
			wantErr:      true,
			wantSentinel: ErrInvalidWindow,
		},
		{
			name:         "window past end of video",
			modify:       func(s *PosterSettings) { s.Window.EndPct = 1.5 },
			wantErr:      true,
			wantSentinel: ErrInvalidWindow,
		},
		{
			name:         "zero episode font size",
			modify:       func(s *PosterSettings) { s.Episode.SizePct = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidFontSize,
		},
		{
			name:         "letterbox threshold above 255",
			modify:       func(s *PosterSettings) { s.Letterbox.Threshold = 256 },
			wantErr:      true,
			wantSentinel: ErrInvalidLetterbox,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultPosterSettings()
			tt.modify(&s)

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("Validate() error = %v, want sentinel %v", err, tt.wantSentinel)
			}
		})
	}
}

func TestParseFillStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    FillStrategy
		wantErr bool
	}{
		{"original", FillOriginal, false},
		{"fill", FillCrop, false},
		{"FIT", FillFit, false},
		{"stretch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFillStrategy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFillStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidFillStrategy) {
			t.Errorf("ParseFillStrategy(%q) error = %v, want sentinel %v", tt.input, err, ErrInvalidFillStrategy)
		}
		if got != tt.want {
			t.Errorf("ParseFillStrategy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		input   string
		want    FileType
		wantErr bool
	}{
		{"jpeg", FileTypeJPEG, false},
		{"jpg", FileTypeJPEG, false},
		{"PNG", FileTypePNG, false},
		{"webp", FileTypeWEBP, false},
		{"gif", FileTypeGIF, false},
		{"bmp", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFileType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFileType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFileType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFileTypeExtension(t *testing.T) {
	tests := []struct {
		fileType FileType
		want     string
	}{
		{FileTypeJPEG, ".jpg"},
		{FileTypePNG, ".png"},
		{FileTypeWEBP, ".webp"},
		{FileTypeGIF, ".gif"},
	}

	for _, tt := range tests {
		if got := tt.fileType.Extension(); got != tt.want {
			t.Errorf("%s.Extension() = %q, want %q", tt.fileType, got, tt.want)
		}
	}
}

func TestParseHWAccel(t *testing.T) {
	tests := []struct {
		input   string
		want    HWAccel
		wantErr bool
	}{
		{"", AccelNone, false},
		{"none", AccelNone, false},
		{"qsv", AccelQSV, false},
		{"NVENC", AccelNVENC, false},
		{"cuda", AccelNVENC, false},
		{"videotoolbox", AccelVideoToolbox, false},
		{"rkmpp", AccelRKMPP, false},
		{"opencl", "", true},
	}

	for _, tt := range tests {
		got, err := ParseHWAccel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHWAccel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidAccelerator) {
			t.Errorf("ParseHWAccel(%q) error = %v, want sentinel %v", tt.input, err, ErrInvalidAccelerator)
		}
		if got != tt.want {
			t.Errorf("ParseHWAccel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSupportsCodec(t *testing.T) {
	opts := EncodingOptions{HardwareDecodingCodecs: []string{"h264", "HEVC"}}

	if !opts.SupportsCodec("hevc") {
		t.Error("expected case-insensitive codec match for hevc")
	}
	if !opts.SupportsCodec("H264") {
		t.Error("expected case-insensitive codec match for H264")
	}
	if opts.SupportsCodec("av1") {
		t.Error("expected av1 to be unsupported")
	}
}

func TestResolverDefault(t *testing.T) {
	r := NewResolver()

	got := r.Resolve("Some Show")
	if got.Style != StyleStandard {
		t.Errorf("unassigned series: expected default style, got %s", got.Style)
	}

	custom := DefaultPosterSettings()
	custom.Style = StyleNumeral
	r.SetDefault(custom)

	if got := r.Resolve("Some Show"); got.Style != StyleNumeral {
		t.Errorf("after SetDefault: expected %s, got %s", StyleNumeral, got.Style)
	}
}

func TestResolverProfileAssignment(t *testing.T) {
	r := NewResolver()

	cutout := DefaultPosterSettings()
	cutout.Style = StyleCutout
	r.SetProfile("dramatic", cutout)
	r.Assign([]Assignment{{SeriesID: "Dark Show", Profile: "dramatic"}})

	if got := r.Resolve("Dark Show"); got.Style != StyleCutout {
		t.Errorf("assigned series: expected %s, got %s", StyleCutout, got.Style)
	}
	if got := r.Resolve("Other Show"); got.Style != StyleStandard {
		t.Errorf("unassigned series: expected default style, got %s", got.Style)
	}
}

func TestResolverMissingProfileFallsBack(t *testing.T) {
	r := NewResolver()
	r.Assign([]Assignment{{SeriesID: "Orphan Show", Profile: "deleted"}})

	if got := r.Resolve("Orphan Show"); got.Style != StyleStandard {
		t.Errorf("series with missing profile: expected default style, got %s", got.Style)
	}
}

func TestResolverFirstAssignmentWins(t *testing.T) {
	r := NewResolver()

	a := DefaultPosterSettings()
	a.Style = StyleBrush
	b := DefaultPosterSettings()
	b.Style = StyleSplit
	r.SetProfile("first", a)
	r.SetProfile("second", b)

	r.Assign([]Assignment{
		{SeriesID: "Contested", Profile: "first"},
		{SeriesID: "Contested", Profile: "second"},
	})

	if got := r.Resolve("Contested"); got.Style != StyleBrush {
		t.Errorf("conflicting assignment: expected first profile %s, got %s", StyleBrush, got.Style)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[poster]
style = "numeral"
quality = 80

[profiles.minimal]
style = "frame"
aspect_width = 2
aspect_height = 3
safe_area_pct = 5.0
quality = 90

[profiles.minimal.episode_text]
size_pct = 7.0

[profiles.minimal.title_text]
size_pct = 10.0

[profiles.minimal.extraction_window]
start_pct = 0.2
end_pct = 0.8

[[assignments]]
series_id = "My Show"
profile = "minimal"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if f.Poster.Style != StyleNumeral {
		t.Errorf("expected style %s, got %s", StyleNumeral, f.Poster.Style)
	}
	if f.Poster.Quality != 80 {
		t.Errorf("expected quality 80, got %d", f.Poster.Quality)
	}
	if f.Poster.AspectWidth != DefaultAspectWidth {
		t.Errorf("omitted field lost its default: aspect width %d", f.Poster.AspectWidth)
	}

	r := f.NewResolver()
	if got := r.Resolve("My Show"); got.Style != StyleFrame {
		t.Errorf("profile resolution: expected %s, got %s", StyleFrame, got.Style)
	}
}

func TestLoadConfigFileInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[poster]
quality = 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("Load() error = %v, want sentinel %v", err, ErrInvalidQuality)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSettingsHash(t *testing.T) {
	a := DefaultPosterSettings()
	b := DefaultPosterSettings()

	if SettingsHash(a) != SettingsHash(b) {
		t.Error("identical settings produced different hashes")
	}

	b.Style = StyleBrush
	if SettingsHash(a) == SettingsHash(b) {
		t.Error("different settings produced the same hash")
	}
}
