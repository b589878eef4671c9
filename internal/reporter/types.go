// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// VideoSummary describes the current episode's source video before
// extraction.
type VideoSummary struct {
	InputFile    string
	OutputFile   string
	Duration     string
	Resolution   string
	DynamicRange string
	Codec        string
}

// SceneSummary contains timestamp selection results.
type SceneSummary struct {
	Message       string
	Timestamp     string
	BlackDetected bool
	Disabled      bool
}

// RenderConfigSummary contains the rendering configuration for the batch.
type RenderConfigSummary struct {
	Style      string
	Dimensions string
	Fill       string
	FileType   string
	Quality    string
	HWAccel    string
	Tonemap    string
}

// ValidationSummary contains poster validation results.
type ValidationSummary struct {
	Passed bool
	Steps  []ValidationStep
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// PosterOutcome contains the final result for one episode.
type PosterOutcome struct {
	InputFile  string
	OutputPath string
	SizeBytes  uint64
	Dimensions string
	RenderTime time.Duration
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalEpisodes int
	EpisodeList   []string
	OutputDir     string
}

// FileProgressContext contains the current episode index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount       int
	FailedCount           int
	TotalEpisodes         int
	TotalBytes            uint64
	TotalDuration         time.Duration
	ValidationPassedCount int
	ValidationFailedCount int
	EpisodeResults        []EpisodeResult
}

// EpisodeResult contains a per-episode outcome line.
type EpisodeResult struct {
	Filename   string
	OutputPath string
	SizeBytes  uint64
	Failed     bool
}

// StageProgress represents a generic stage update.
type StageProgress struct {
	Stage   string
	Percent float32
	Message string
	ETA     *time.Duration
}
