package ffprobe

import (
	"encoding/json"
	"testing"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/colorscience"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
)

const hdr10Probe = `{
  "format": {"format_name": "matroska,webm", "duration": "2703.360000"},
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "hevc",
      "width": 3840,
      "height": 2160,
      "pix_fmt": "yuv420p10le",
      "color_space": "bt2020nc",
      "color_transfer": "smpte2084",
      "color_primaries": "bt2020",
      "bits_per_raw_sample": "10",
      "field_order": "progressive"
    },
    {"codec_type": "audio", "codec_name": "eac3"}
  ]
}`

const sdrProbe = `{
  "format": {"format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "1322.5"},
  "streams": [
    {"codec_type": "audio", "codec_name": "aac"},
    {
      "codec_type": "video",
      "codec_name": "h264",
      "width": 1920,
      "height": 1080,
      "pix_fmt": "yuv420p",
      "color_space": "bt709",
      "color_transfer": "bt709",
      "color_primaries": "bt709",
      "field_order": "tt"
    }
  ]
}`

func parseProbe(t *testing.T, raw string) *ffprobeOutput {
	t.Helper()
	var out ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return &out
}

func TestMetadataFromOutputHDR(t *testing.T) {
	meta, err := metadataFromOutput(parseProbe(t, hdr10Probe), "/media/show.mkv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Codec != "hevc" {
		t.Errorf("Codec = %q, want hevc", meta.Codec)
	}
	if meta.Width != 3840 || meta.Height != 2160 {
		t.Errorf("dimensions = %dx%d, want 3840x2160", meta.Width, meta.Height)
	}
	if meta.DurationSecs != 2703.36 {
		t.Errorf("DurationSecs = %v, want 2703.36", meta.DurationSecs)
	}
	if meta.BitDepth != 10 {
		t.Errorf("BitDepth = %d, want 10", meta.BitDepth)
	}
	if meta.Range != colorscience.RangeHDR10 {
		t.Errorf("Range = %v, want HDR10", meta.Range)
	}
	if !meta.IsHDR() {
		t.Error("IsHDR() = false for HDR10 stream")
	}
	if meta.Interlaced {
		t.Error("progressive stream reported as interlaced")
	}
}

func TestMetadataFromOutputSDR(t *testing.T) {
	meta, err := metadataFromOutput(parseProbe(t, sdrProbe), "/media/show.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Codec != "h264" {
		t.Errorf("Codec = %q, want h264 (first video stream)", meta.Codec)
	}
	if meta.BitDepth != 8 {
		t.Errorf("BitDepth = %d, want 8", meta.BitDepth)
	}
	if meta.Range != colorscience.RangeSDR {
		t.Errorf("Range = %v, want SDR", meta.Range)
	}
	if meta.IsHDR() {
		t.Error("IsHDR() = true for bt709 stream")
	}
	if !meta.Interlaced {
		t.Error("field_order tt not reported as interlaced")
	}
}

func TestMetadataFromOutputNoVideoStream(t *testing.T) {
	raw := `{"format": {"duration": "10"}, "streams": [{"codec_type": "audio"}]}`
	_, err := metadataFromOutput(parseProbe(t, raw), "/media/audio.mka")
	if err == nil {
		t.Fatal("expected error for missing video stream")
	}
	if !errors.IsKind(err, errors.KindProbe) {
		t.Errorf("expected probe error kind, got %v", err)
	}
}

func TestMetadataFromOutputInvalidDimensions(t *testing.T) {
	raw := `{"format": {}, "streams": [{"codec_type": "video", "width": 0, "height": 1080}]}`
	_, err := metadataFromOutput(parseProbe(t, raw), "/media/bad.mkv")
	if err == nil {
		t.Fatal("expected error for zero width")
	}
	if !errors.IsKind(err, errors.KindProbe) {
		t.Errorf("expected probe error kind, got %v", err)
	}
}

func TestParseBitDepth(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		pixFmt string
		want   int
	}{
		{"explicit raw sample", "10", "yuv420p", 10},
		{"pix_fmt 10le fallback", "", "yuv420p10le", 10},
		{"pix_fmt 12le fallback", "", "yuv422p12le", 12},
		{"p016 fallback", "", "p016le", 16},
		{"default 8", "", "yuv420p", 8},
		{"garbage raw sample", "n/a", "yuv420p10le", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseBitDepth(tt.raw, tt.pixFmt); got != tt.want {
				t.Errorf("parseBitDepth(%q, %q) = %d, want %d", tt.raw, tt.pixFmt, got, tt.want)
			}
		})
	}
}
