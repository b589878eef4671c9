package colorscience

import (
	"strings"
	"testing"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		transfer  string
		primaries string
		want      RangeType
	}{
		{"both empty", "", "", RangeUnknown},
		{"plain sdr", "bt709", "bt709", RangeSDR},
		{"unrecognized", "gamma22", "film", RangeSDR},
		{"hdr10 pq transfer", "smpte2084", "bt2020", RangeHDR10},
		{"hdr10 primaries only", "", "bt2020", RangeHDR10},
		{"hdr10 uppercase", "SMPTE2084", "BT2020", RangeHDR10},
		{"hdr10plus", "smpte2084 hdr10+", "bt2020", RangeHDR10Plus},
		{"hdr10plus primaries", "smpte2084", "bt2020 hdr10+", RangeHDR10Plus},
		{"hlg", "arib-std-b67", "bt2020", RangeHLG},
		{"hlg shorthand", "hlg", "", RangeHLG},
		{"dolby vision bare", "dovi", "", RangeDolbyVision},
		{"dolby vision hdr10 base", "dovi smpte2084", "bt2020", RangeDolbyVisionHDR10},
		{"dolby vision hlg base", "dolby arib-std-b67", "", RangeDolbyVisionHLG},
		{"dolby vision hdr10plus base", "dovi hdr10+", "bt2020", RangeDolbyVisionHDR10Plus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.transfer, tt.primaries)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v",
					tt.transfer, tt.primaries, got, tt.want)
			}
		})
	}
}

func TestIsHDR(t *testing.T) {
	hdr := []RangeType{
		RangeHDR10, RangeHDR10Plus, RangeHLG,
		RangeDolbyVision, RangeDolbyVisionHDR10,
		RangeDolbyVisionHDR10Plus, RangeDolbyVisionHLG,
	}
	for _, r := range hdr {
		if !IsHDR(r) {
			t.Errorf("IsHDR(%v) = false, want true", r)
		}
	}
	for _, r := range []RangeType{RangeSDR, RangeUnknown} {
		if IsHDR(r) {
			t.Errorf("IsHDR(%v) = true, want false", r)
		}
	}
}

func TestIsDolbyVision(t *testing.T) {
	if !IsDolbyVision(RangeDolbyVisionHDR10) {
		t.Error("expected HDR10-base Dolby Vision to report true")
	}
	if IsDolbyVision(RangeHDR10) {
		t.Error("HDR10 is not Dolby Vision")
	}
}

func TestToneMapFilter(t *testing.T) {
	enabled := func(accel config.HWAccel) config.EncodingOptions {
		return config.EncodingOptions{HWAccel: accel, EnableTonemap: true}
	}

	t.Run("sdr yields empty", func(t *testing.T) {
		if f := ToneMapFilter(enabled(config.AccelNone), RangeSDR); f != "" {
			t.Errorf("expected empty filter for SDR, got %q", f)
		}
	})

	t.Run("unknown yields empty", func(t *testing.T) {
		if f := ToneMapFilter(enabled(config.AccelQSV), RangeUnknown); f != "" {
			t.Errorf("expected empty filter for Unknown, got %q", f)
		}
	})

	t.Run("disabled yields empty", func(t *testing.T) {
		opts := config.EncodingOptions{HWAccel: config.AccelVAAPI}
		if f := ToneMapFilter(opts, RangeHDR10); f != "" {
			t.Errorf("expected empty filter when disabled, got %q", f)
		}
	})

	t.Run("cpu chain for software", func(t *testing.T) {
		f := ToneMapFilter(enabled(config.AccelNone), RangeHDR10)
		if !strings.Contains(f, "tonemap=tonemap=hable") {
			t.Errorf("expected hable chain, got %q", f)
		}
		if !strings.HasSuffix(f, "format=yuv420p") {
			t.Errorf("chain must end in yuv420p, got %q", f)
		}
	})

	t.Run("qsv vpp when flagged", func(t *testing.T) {
		opts := enabled(config.AccelQSV)
		opts.QSVVPPTonemap = true
		if f := ToneMapFilter(opts, RangeHDR10); !strings.HasPrefix(f, "vpp_qsv=") {
			t.Errorf("expected vpp_qsv filter, got %q", f)
		}
	})

	t.Run("qsv falls back to cpu without flag", func(t *testing.T) {
		f := ToneMapFilter(enabled(config.AccelQSV), RangeHDR10)
		if !strings.Contains(f, "hable") {
			t.Errorf("expected cpu chain, got %q", f)
		}
	})

	t.Run("vaapi native", func(t *testing.T) {
		f := ToneMapFilter(enabled(config.AccelVAAPI), RangeHLG)
		if !strings.HasPrefix(f, "tonemap_vaapi=") {
			t.Errorf("expected tonemap_vaapi, got %q", f)
		}
	})

	t.Run("videotoolbox scale_vt when flagged", func(t *testing.T) {
		opts := enabled(config.AccelVideoToolbox)
		opts.VideoToolboxTonemap = true
		if f := ToneMapFilter(opts, RangeDolbyVisionHDR10); !strings.HasPrefix(f, "scale_vt=") {
			t.Errorf("expected scale_vt, got %q", f)
		}
	})
}

func TestToneMapFilterOnDevice(t *testing.T) {
	tests := []struct {
		name string
		opts config.EncodingOptions
		want bool
	}{
		{"vaapi", config.EncodingOptions{HWAccel: config.AccelVAAPI}, true},
		{"qsv with vpp", config.EncodingOptions{HWAccel: config.AccelQSV, QSVVPPTonemap: true}, true},
		{"qsv without vpp", config.EncodingOptions{HWAccel: config.AccelQSV}, false},
		{"videotoolbox with flag", config.EncodingOptions{HWAccel: config.AccelVideoToolbox, VideoToolboxTonemap: true}, true},
		{"videotoolbox without flag", config.EncodingOptions{HWAccel: config.AccelVideoToolbox}, false},
		{"nvenc", config.EncodingOptions{HWAccel: config.AccelNVENC}, false},
		{"amf", config.EncodingOptions{HWAccel: config.AccelAMF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMapFilterOnDevice(tt.opts); got != tt.want {
				t.Errorf("ToneMapFilterOnDevice(%+v) = %v, want %v", tt.opts, got, tt.want)
			}
		})
	}
}

func TestSoftwareToneMapEligible(t *testing.T) {
	tests := []struct {
		name     string
		r        RangeType
		bitDepth int
		want     bool
	}{
		{"hdr10 8bit", RangeHDR10, 8, true},
		{"sdr 10bit", RangeSDR, 10, true},
		{"sdr 8bit", RangeSDR, 8, false},
		{"unknown 12bit", RangeUnknown, 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SoftwareToneMapEligible(tt.r, tt.bitDepth); got != tt.want {
				t.Errorf("SoftwareToneMapEligible(%v, %d) = %v, want %v",
					tt.r, tt.bitDepth, got, tt.want)
			}
		})
	}
}
