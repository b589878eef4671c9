// Package colorscience classifies video dynamic range from color metadata
// and builds tonemap filter chains for still-frame extraction.
package colorscience

import (
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

// RangeType classifies a video's dynamic-range encoding.
type RangeType int

const (
	// RangeUnknown means classification could not be determined.
	RangeUnknown RangeType = iota
	// RangeSDR is standard dynamic range.
	RangeSDR
	// RangeHDR10 is static-metadata HDR (SMPTE 2084 / PQ).
	RangeHDR10
	// RangeHDR10Plus is dynamic-metadata HDR10+.
	RangeHDR10Plus
	// RangeHLG is hybrid log-gamma broadcast HDR.
	RangeHLG
	// RangeDolbyVision is Dolby Vision without a fallback layer.
	RangeDolbyVision
	// RangeDolbyVisionHDR10 is Dolby Vision with an HDR10 base layer.
	RangeDolbyVisionHDR10
	// RangeDolbyVisionHDR10Plus is Dolby Vision with an HDR10+ base layer.
	RangeDolbyVisionHDR10Plus
	// RangeDolbyVisionHLG is Dolby Vision with an HLG base layer.
	RangeDolbyVisionHLG
)

// String returns a human-readable name for the range type.
func (r RangeType) String() string {
	switch r {
	case RangeSDR:
		return "SDR"
	case RangeHDR10:
		return "HDR10"
	case RangeHDR10Plus:
		return "HDR10+"
	case RangeHLG:
		return "HLG"
	case RangeDolbyVision:
		return "Dolby Vision"
	case RangeDolbyVisionHDR10:
		return "Dolby Vision (HDR10)"
	case RangeDolbyVisionHDR10Plus:
		return "Dolby Vision (HDR10+)"
	case RangeDolbyVisionHLG:
		return "Dolby Vision (HLG)"
	default:
		return "Unknown"
	}
}

// IsHDR reports whether the range type carries high dynamic range content.
func IsHDR(r RangeType) bool {
	switch r {
	case RangeHDR10, RangeHDR10Plus, RangeHLG, RangeDolbyVision,
		RangeDolbyVisionHDR10, RangeDolbyVisionHDR10Plus, RangeDolbyVisionHLG:
		return true
	default:
		return false
	}
}

// IsDolbyVision reports whether the range type is a Dolby Vision variant.
func IsDolbyVision(r RangeType) bool {
	switch r {
	case RangeDolbyVision, RangeDolbyVisionHDR10,
		RangeDolbyVisionHDR10Plus, RangeDolbyVisionHLG:
		return true
	default:
		return false
	}
}

// Classify determines the range type from raw color transfer and primaries
// strings as reported by the probe. The match is a case-insensitive
// substring heuristic over real-world metadata values, not a strict
// parse. Precedence: Dolby Vision > HDR10+ > HDR10 >
// HLG > SDR. Empty inputs on both sides classify as Unknown, any other
// unrecognized pair as SDR.
func Classify(transfer, primaries string) RangeType {
	if transfer == "" && primaries == "" {
		return RangeUnknown
	}

	t := strings.ToLower(transfer)
	p := strings.ToLower(primaries)

	dv := strings.Contains(t, "dovi") || strings.Contains(p, "dovi") ||
		strings.Contains(t, "dolby") || strings.Contains(p, "dolby")

	hlg := strings.Contains(t, "arib-std-b67") || strings.Contains(t, "hlg")
	pq := strings.Contains(t, "smpte2084") || strings.Contains(t, "pq") ||
		strings.Contains(p, "bt2020")
	hdr10plus := strings.Contains(t, "smpte428") || strings.Contains(t, "hdr10+") ||
		strings.Contains(p, "hdr10+")

	switch {
	case dv && hdr10plus:
		return RangeDolbyVisionHDR10Plus
	case dv && hlg:
		return RangeDolbyVisionHLG
	case dv && pq:
		return RangeDolbyVisionHDR10
	case dv:
		return RangeDolbyVision
	case hdr10plus:
		return RangeHDR10Plus
	case hlg:
		return RangeHLG
	case pq:
		return RangeHDR10
	default:
		return RangeSDR
	}
}

// cpuToneMapChain converts HDR pixel values to BT.709 SDR on the CPU.
// zscale to linear light, hable operator, back to bt709.
const cpuToneMapChain = "zscale=t=linear:npl=100,format=gbrpf32le,zscale=p=bt709," +
	"tonemap=tonemap=hable:desat=0," +
	"zscale=t=bt709:m=bt709:r=tv,format=yuv420p"

// ToneMapFilter returns the tonemap filter chain for the configured
// accelerator and range type. Returns "" for SDR or Unknown content or
// when tonemapping is disabled; callers treat an empty filter as "skip
// tonemapping", never as an error.
func ToneMapFilter(opts config.EncodingOptions, r RangeType) string {
	if !IsHDR(r) || !opts.EnableTonemap {
		return ""
	}

	switch opts.HWAccel {
	case config.AccelQSV:
		if opts.QSVVPPTonemap {
			return "vpp_qsv=tonemap=1:format=nv12"
		}
		return cpuToneMapChain
	case config.AccelVAAPI:
		return "tonemap_vaapi=format=nv12:t=bt709:m=bt709:p=bt709"
	case config.AccelVideoToolbox:
		if opts.VideoToolboxTonemap {
			return "scale_vt=color_matrix=bt709:color_primaries=bt709:color_transfer=bt709"
		}
		return cpuToneMapChain
	default:
		// Remaining accelerators decode on hardware but tonemap after
		// the frame is downloaded, so the CPU chain applies.
		return cpuToneMapChain
	}
}

// ToneMapFilterOnDevice reports whether ToneMapFilter's chain runs on
// device surfaces for the configured accelerator. When false, the chain
// is the CPU zscale path and the frame must be downloaded to system
// memory before it.
func ToneMapFilterOnDevice(opts config.EncodingOptions) bool {
	switch opts.HWAccel {
	case config.AccelQSV:
		return opts.QSVVPPTonemap
	case config.AccelVAAPI:
		return true
	case config.AccelVideoToolbox:
		return opts.VideoToolboxTonemap
	default:
		return false
	}
}

// SoftwareToneMapFilter returns the CPU tonemap chain for eligible
// content and "" otherwise. The software decode path never uses
// accelerator filters regardless of the configured accelerator.
func SoftwareToneMapFilter(r RangeType, bitDepth int) string {
	if !SoftwareToneMapEligible(r, bitDepth) {
		return ""
	}
	return cpuToneMapChain
}

// SoftwareToneMapEligible reports whether the software decode path should
// tonemap. Ten-bit content is eligible even when the range classification
// is not HDR; such files often carry HDR transfer data the container
// failed to surface.
func SoftwareToneMapEligible(r RangeType, bitDepth int) bool {
	return IsHDR(r) || bitDepth >= 10
}
