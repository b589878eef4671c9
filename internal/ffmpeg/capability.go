// Package ffmpeg builds and runs ffmpeg invocations for single-frame
// extraction, choosing between hardware and software decode paths.
package ffmpeg

import (
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/colorscience"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
)

// CanProcess reports whether the hardware decode path can handle the
// video under the given options. The decision is pure: no device probing,
// only metadata and configuration. A false result means the caller must
// use the software path, which is always viable.
func CanProcess(video *ffprobe.VideoMetadata, opts config.EncodingOptions) bool {
	if opts.HWAccel == config.AccelNone {
		return false
	}
	if !opts.SupportsCodec(video.Codec) {
		return false
	}
	// Unclassifiable range means the tonemap decision cannot be made
	// safely on hardware.
	if video.Range == colorscience.RangeUnknown {
		return false
	}

	if colorscience.IsHDR(video.Range) && opts.EnableTonemap {
		return hardwareToneMapCapable(opts)
	}
	return true
}

// hardwareToneMapCapable reports whether the configured accelerator can
// tonemap without falling back to CPU filters mid-pipeline.
func hardwareToneMapCapable(opts config.EncodingOptions) bool {
	switch opts.HWAccel {
	case config.AccelQSV:
		return opts.QSVVPPTonemap
	case config.AccelVideoToolbox:
		return opts.VideoToolboxTonemap
	case config.AccelNVENC, config.AccelAMF, config.AccelVAAPI:
		return true
	default:
		return false
	}
}
