// Package extraction orchestrates single-frame extraction from an
// episode video: scene analysis, timestamp selection, decode path
// choice, and retry with a fallback timestamp.
package extraction

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffmpeg"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/scene"
)

// fallbackEarlyPct is where the retry lands when the first timestamp was
// already at or past the midpoint.
const fallbackEarlyPct = 0.25

// Extractor extracts one representative frame per episode video.
// The caller owns the returned frame file and removes it when done.
type Extractor struct {
	rng     *rand.Rand
	workDir string
	hw      ffmpeg.ArgsBuilder
	sw      ffmpeg.ArgsBuilder
}

// NewExtractor creates an extractor writing temp frames under workDir.
func NewExtractor(rng *rand.Rand, workDir string) *Extractor {
	return &Extractor{
		rng:     rng,
		workDir: workDir,
		hw:      ffmpeg.NewHardwareArgsBuilder(rng),
		sw:      ffmpeg.NewSoftwareArgsBuilder(rng),
	}
}

// Result describes one extracted frame.
type Result struct {
	FramePath     string
	Timestamp     time.Duration
	BlackDetected bool
	UsedFallback  bool
}

// Extract analyzes the video, picks a timestamp avoiding black scenes,
// and decodes a single frame to a unique temp path. Hardware decode
// failures fall back to software; a failed extraction is retried once at
// a fallback timestamp before giving up.
func (e *Extractor) Extract(ctx context.Context, video *ffprobe.VideoMetadata, opts config.EncodingOptions, settings *config.PosterSettings) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError()
	}

	duration := time.Duration(video.DurationSecs * float64(time.Second))
	intervals := scene.DetectBlackIntervals(ctx, video.Path, duration,
		settings.BlackPixelThreshold, settings.BlackMinDurationSecs)

	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError()
	}

	timestamp := scene.SelectTimestamp(e.rng, duration, settings.Window, intervals)
	framePath := filepath.Join(e.workDir, "frame_"+uuid.NewString()+".png")

	useHardware := ffmpeg.CanProcess(video, opts)
	seek := timestamp.Seconds()

	result := &Result{
		FramePath:     framePath,
		Timestamp:     timestamp,
		BlackDetected: len(intervals) > 0,
	}

	err := e.decode(ctx, framePath, video, opts, useHardware, seek)
	if err == nil {
		return result, nil
	}
	if errors.IsCancelled(err) {
		return nil, err
	}

	retry := fallbackSeek(timestamp, duration)
	logging.Warn("frame extraction failed, retrying at fallback timestamp",
		"path", video.Path, "seek", seek, "retry_seek", retry.Seconds(), "error", err)

	if err := e.decode(ctx, framePath, video, opts, useHardware, retry.Seconds()); err != nil {
		_ = os.Remove(framePath)
		if errors.IsCancelled(err) {
			return nil, err
		}
		return nil, errors.NewDecodeError("frame extraction failed for "+video.Path, err)
	}
	result.Timestamp = retry
	result.UsedFallback = true
	return result, nil
}

// decode runs one extraction attempt, falling back from hardware to
// software on decode failure.
func (e *Extractor) decode(ctx context.Context, framePath string, video *ffprobe.VideoMetadata, opts config.EncodingOptions, useHardware bool, seekSecs float64) error {
	if useHardware {
		err := e.run(ctx, e.hw, framePath, video, opts, seekSecs)
		if err == nil {
			return nil
		}
		if errors.IsCancelled(err) {
			return err
		}
		logging.Warn("hardware decode failed, falling back to software",
			"path", video.Path, "accel", opts.HWAccel, "error", err)
	}
	return e.run(ctx, e.sw, framePath, video, opts, seekSecs)
}

// run builds the argument list and executes ffmpeg, verifying that a
// non-empty frame landed on disk.
func (e *Extractor) run(ctx context.Context, builder ffmpeg.ArgsBuilder, framePath string, video *ffprobe.VideoMetadata, opts config.EncodingOptions, seekSecs float64) error {
	args, err := builder.BuildArgs(framePath, video, opts, &seekSecs, false)
	if err != nil {
		return err
	}
	if err := ffmpeg.ExtractFrame(ctx, args); err != nil {
		return err
	}

	info, err := os.Stat(framePath)
	if err != nil {
		return errors.NewDecodeError("extracted frame missing: "+framePath, err)
	}
	if info.Size() == 0 {
		_ = os.Remove(framePath)
		return errors.NewDecodeError("extracted frame is empty: "+framePath, nil)
	}
	return nil
}

// fallbackSeek picks the retry timestamp. A first attempt before the
// midpoint moves to the midpoint; otherwise the retry lands at a quarter
// of the runtime.
func fallbackSeek(original, duration time.Duration) time.Duration {
	midpoint := duration / 2
	if original < midpoint {
		return midpoint
	}
	return time.Duration(float64(duration) * fallbackEarlyPct)
}
