// Package ffprobe extracts video stream metadata using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/colorscience"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
)

// VideoMetadata describes the first video stream of a media file.
type VideoMetadata struct {
	Path           string
	Container      string
	Codec          string
	Width          int
	Height         int
	DurationSecs   float64
	BitDepth       int
	ColorSpace     string
	ColorTransfer  string
	ColorPrimaries string
	Range          colorscience.RangeType
	Interlaced     bool
}

// IsHDR reports whether the stream carries high dynamic range content.
func (m *VideoMetadata) IsHDR() bool {
	return colorscience.IsHDR(m.Range)
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type ffprobeStream struct {
	CodecType        string `json:"codec_type"`
	CodecName        string `json:"codec_name"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	PixFmt           string `json:"pix_fmt"`
	ColorPrimaries   string `json:"color_primaries"`
	ColorTransfer    string `json:"color_transfer"`
	ColorSpace       string `json:"color_space"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
	FieldOrder       string `json:"field_order"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(ctx context.Context, inputPath string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCancelledError()
		}
		return nil, errors.NewProbeError("ffprobe failed for "+inputPath, err)
	}

	var result ffprobeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, errors.NewProbeError("failed to parse ffprobe output", err)
	}

	return &result, nil
}

// Probe returns metadata for the first video stream of the file.
func Probe(ctx context.Context, inputPath string) (*VideoMetadata, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return metadataFromOutput(probe, inputPath)
}

// metadataFromOutput builds VideoMetadata from a parsed probe result.
func metadataFromOutput(probe *ffprobeOutput, inputPath string) (*VideoMetadata, error) {
	var videoStream *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			videoStream = &probe.Streams[i]
			break
		}
	}
	if videoStream == nil {
		return nil, errors.NewProbeError("no video stream found in "+inputPath, nil)
	}

	if videoStream.Width <= 0 || videoStream.Height <= 0 {
		return nil, errors.NewProbeError("invalid dimensions in "+inputPath, nil)
	}

	var durationSecs float64
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			durationSecs = d
		}
	}

	return &VideoMetadata{
		Path:           inputPath,
		Container:      probe.Format.FormatName,
		Codec:          videoStream.CodecName,
		Width:          videoStream.Width,
		Height:         videoStream.Height,
		DurationSecs:   durationSecs,
		BitDepth:       parseBitDepth(videoStream.BitsPerRawSample, videoStream.PixFmt),
		ColorSpace:     videoStream.ColorSpace,
		ColorTransfer:  videoStream.ColorTransfer,
		ColorPrimaries: videoStream.ColorPrimaries,
		Range:          colorscience.Classify(videoStream.ColorTransfer, videoStream.ColorPrimaries),
		Interlaced:     videoStream.FieldOrder == "tt" || videoStream.FieldOrder == "bb" || videoStream.FieldOrder == "tb" || videoStream.FieldOrder == "bt",
	}, nil
}

// parseBitDepth resolves the stream bit depth, falling back to the pixel
// format suffix when bits_per_raw_sample is absent. Unknown formats
// default to 8.
func parseBitDepth(bitsPerRawSample, pixFmt string) int {
	if bitsPerRawSample != "" {
		if bd, err := strconv.Atoi(bitsPerRawSample); err == nil && bd > 0 {
			return bd
		}
	}

	// Matches pixel formats like yuv420p10le and p016le.
	switch {
	case strings.Contains(pixFmt, "16"):
		return 16
	case strings.Contains(pixFmt, "12"):
		return 12
	case strings.Contains(pixFmt, "10"):
		return 10
	default:
		return 8
	}
}
