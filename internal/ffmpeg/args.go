package ffmpeg

import (
	"math/rand"
	"strconv"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/colorscience"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
)

// fallbackDurationSecs substitutes for a missing or broken container
// duration when choosing a default seek point.
const fallbackDurationSecs = 3600.0

// Default seek window as fractions of the duration.
const (
	defaultSeekStartPct = 0.20
	defaultSeekEndPct   = 0.80
)

// ArgsBuilder produces a complete ffmpeg argument list that decodes one
// frame from the video and writes it to outputPath. A nil seekSecs means
// the builder picks a seek point itself; skipToneMap suppresses tonemap
// filters for callers that handle HDR downstream.
type ArgsBuilder interface {
	BuildArgs(outputPath string, video *ffprobe.VideoMetadata, opts config.EncodingOptions, seekSecs *float64, skipToneMap bool) ([]string, error)
}

// HardwareArgsBuilder builds arguments for accelerator-backed decoding.
// The frame is always downloaded to system memory as nv12 before output.
type HardwareArgsBuilder struct {
	rng *rand.Rand
}

// NewHardwareArgsBuilder creates a hardware args builder using rng for
// default seek selection.
func NewHardwareArgsBuilder(rng *rand.Rand) *HardwareArgsBuilder {
	return &HardwareArgsBuilder{rng: rng}
}

// BuildArgs implements ArgsBuilder.
func (b *HardwareArgsBuilder) BuildArgs(outputPath string, video *ffprobe.VideoMetadata, opts config.EncodingOptions, seekSecs *float64, skipToneMap bool) ([]string, error) {
	if outputPath == "" {
		return nil, errors.NewPathError("output path is empty")
	}
	if video == nil || video.Path == "" {
		return nil, errors.NewPathError("video has no input path")
	}

	seek := resolveSeek(b.rng, video.DurationSecs, seekSecs)

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
	}
	args = append(args, accelArgs(opts.HWAccel)...)
	args = append(args,
		"-ss", formatSeconds(seek),
		"-i", video.Path,
	)

	var filter string
	if !skipToneMap && video.IsHDR() {
		filter = colorscience.ToneMapFilter(opts, video.Range)
		if filter == "" {
			logging.Warn("no tonemap filter for accelerator, extracting untonemapped",
				"accel", opts.HWAccel, "range", video.Range)
		}
	}

	// The canvas stage works on CPU images, so every hardware chain
	// includes a download from the device surface. A device-side
	// tonemap filter runs before the download; the CPU zscale chain
	// needs system-memory frames and must come after it.
	chain := NewVideoFilterChain()
	if filter != "" && colorscience.ToneMapFilterOnDevice(opts) {
		chain.AddFilter(filter)
		chain.AddFilter("hwdownload").AddFilter("format=nv12")
	} else {
		chain.AddFilter("hwdownload").AddFilter("format=nv12")
		chain.AddFilter(filter)
	}

	args = append(args, "-vf", chain.Build())
	args = append(args,
		"-frames:v", "1",
		"-q:v", "2",
		"-y", outputPath,
	)
	return args, nil
}

// SoftwareArgsBuilder builds arguments for CPU decoding. This path is
// always viable and serves as the fallback when hardware decode fails.
type SoftwareArgsBuilder struct {
	rng *rand.Rand
}

// NewSoftwareArgsBuilder creates a software args builder using rng for
// default seek selection.
func NewSoftwareArgsBuilder(rng *rand.Rand) *SoftwareArgsBuilder {
	return &SoftwareArgsBuilder{rng: rng}
}

// BuildArgs implements ArgsBuilder.
func (b *SoftwareArgsBuilder) BuildArgs(outputPath string, video *ffprobe.VideoMetadata, opts config.EncodingOptions, seekSecs *float64, skipToneMap bool) ([]string, error) {
	if outputPath == "" {
		return nil, errors.NewPathError("output path is empty")
	}
	if video == nil || video.Path == "" {
		return nil, errors.NewPathError("video has no input path")
	}

	seek := resolveSeek(b.rng, video.DurationSecs, seekSecs)

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(seek),
		"-i", video.Path,
	}

	if !skipToneMap {
		// Ten-bit SDR-tagged files often carry unsurfaced HDR transfer
		// data, so bit depth alone qualifies for tonemapping here.
		if filter := colorscience.SoftwareToneMapFilter(video.Range, video.BitDepth); filter != "" {
			args = append(args, "-vf", filter)
		}
	}

	args = append(args,
		"-frames:v", "1",
		"-q:v", "2",
		"-y", outputPath,
	)
	return args, nil
}

// accelArgs returns the pre-input decode flags for the accelerator.
func accelArgs(accel config.HWAccel) []string {
	switch accel {
	case config.AccelQSV:
		return []string{
			"-init_hw_device", "qsv=hw",
			"-filter_hw_device", "hw",
			"-hwaccel", "qsv",
			"-hwaccel_output_format", "qsv",
		}
	case config.AccelVAAPI:
		return []string{"-hwaccel", "vaapi", "-hwaccel_output_format", "vaapi"}
	case config.AccelNVENC:
		return []string{"-hwaccel", "cuda", "-hwaccel_output_format", "cuda"}
	case config.AccelVideoToolbox:
		return []string{"-hwaccel", "videotoolbox", "-hwaccel_output_format", "videotoolbox"}
	case config.AccelAMF:
		return []string{"-hwaccel", "d3d11va"}
	case config.AccelV4L2M2M, config.AccelRKMPP:
		return []string{"-hwaccel", accel.String()}
	default:
		return nil
	}
}

// resolveSeek returns the explicit seek point when provided, otherwise a
// uniform random point inside the default window. Non-positive durations
// fall back to a nominal one-hour runtime.
func resolveSeek(rng *rand.Rand, durationSecs float64, seekSecs *float64) float64 {
	if seekSecs != nil {
		return *seekSecs
	}
	if durationSecs <= 0 {
		durationSecs = fallbackDurationSecs
	}
	start := durationSecs * defaultSeekStartPct
	end := durationSecs * defaultSeekEndPct
	return start + rng.Float64()*(end-start)
}

// formatSeconds renders a seek offset the way ffmpeg expects it.
func formatSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', 3, 64)
}
