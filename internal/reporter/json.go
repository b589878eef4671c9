package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events for machine consumers.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Initialization(summary VideoSummary) {
	r.write(map[string]interface{}{
		"type":          "initialization",
		"input_file":    summary.InputFile,
		"output_file":   summary.OutputFile,
		"duration":      summary.Duration,
		"resolution":    summary.Resolution,
		"dynamic_range": summary.DynamicRange,
		"codec":         summary.Codec,
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) StageProgress(update StageProgress) {
	event := map[string]interface{}{
		"type":      "stage_progress",
		"stage":     update.Stage,
		"percent":   update.Percent,
		"message":   update.Message,
		"timestamp": r.timestamp(),
	}
	if update.ETA != nil {
		event["eta_seconds"] = int64(update.ETA.Seconds())
	}
	r.write(event)
}

func (r *JSONReporter) SceneResult(summary SceneSummary) {
	r.write(map[string]interface{}{
		"type":           "scene_result",
		"message":        summary.Message,
		"frame_time":     summary.Timestamp,
		"black_detected": summary.BlackDetected,
		"disabled":       summary.Disabled,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) RenderConfig(summary RenderConfigSummary) {
	r.write(map[string]interface{}{
		"type":       "render_config",
		"style":      summary.Style,
		"dimensions": summary.Dimensions,
		"fill":       summary.Fill,
		"file_type":  summary.FileType,
		"quality":    summary.Quality,
		"hwaccel":    summary.HWAccel,
		"tonemap":    summary.Tonemap,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":           "batch_started",
		"total_episodes": info.TotalEpisodes,
		"episode_list":   info.EpisodeList,
		"output_dir":     info.OutputDir,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) ValidationComplete(summary ValidationSummary) {
	steps := make([]map[string]interface{}, len(summary.Steps))
	for i, step := range summary.Steps {
		steps[i] = map[string]interface{}{
			"step":    step.Name,
			"passed":  step.Passed,
			"details": step.Details,
		}
	}

	r.write(map[string]interface{}{
		"type":              "validation_complete",
		"validation_passed": summary.Passed,
		"validation_steps":  steps,
		"timestamp":         r.timestamp(),
	})
}

func (r *JSONReporter) PosterComplete(summary PosterOutcome) {
	r.write(map[string]interface{}{
		"type":           "poster_complete",
		"input_file":     summary.InputFile,
		"output_path":    summary.OutputPath,
		"size_bytes":     summary.SizeBytes,
		"dimensions":     summary.Dimensions,
		"render_time_ms": summary.RenderTime.Milliseconds(),
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]interface{}{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	results := make([]map[string]interface{}, len(summary.EpisodeResults))
	for i, res := range summary.EpisodeResults {
		results[i] = map[string]interface{}{
			"filename":    res.Filename,
			"output_path": res.OutputPath,
			"size_bytes":  res.SizeBytes,
			"failed":      res.Failed,
		}
	}

	r.write(map[string]interface{}{
		"type":                   "batch_complete",
		"successful_count":       summary.SuccessfulCount,
		"failed_count":           summary.FailedCount,
		"total_episodes":         summary.TotalEpisodes,
		"total_bytes":            summary.TotalBytes,
		"total_duration_seconds": int64(summary.TotalDuration.Seconds()),
		"validation_passed":      summary.ValidationPassedCount,
		"validation_failed":      summary.ValidationFailedCount,
		"episode_results":        results,
		"timestamp":              r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
