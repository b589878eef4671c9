// Package processing orchestrates poster generation for a batch of
// episode videos.
package processing

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/canvas"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/discovery"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/extraction"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/ffprobe"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/poster"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/reporter"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/validation"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/worker"
)

// Options configures a batch run.
type Options struct {
	InputDir  string
	OutputDir string

	// Settings is the poster configuration applied to every episode
	// unless Resolver overrides it per series.
	Settings config.PosterSettings
	Resolver *config.Resolver

	Encoding config.EncodingOptions

	// Seed drives timestamp selection and brush stroke jitter. Each
	// episode derives its own generator from Seed and its batch index,
	// so a rerun with the same seed reproduces the same posters.
	Seed int64

	// Overwrite regenerates posters whose output file already exists.
	Overwrite bool

	// Concurrency bounds parallel episode pipelines. Zero picks a value
	// from the host core count and decode path.
	Concurrency int
}

// PosterResult contains the outcome for a single episode.
type PosterResult struct {
	Episode          discovery.Episode
	OutputPath       string
	SizeBytes        uint64
	Duration         time.Duration
	Skipped          bool
	ValidationPassed bool
	ValidationSteps  []validation.ValidationStep
	Err              error
}

// ProcessEpisodes generates posters for every episode video found under
// opts.InputDir. Episodes fail independently; only setup problems
// (unreadable input directory, unwritable output directory) abort the
// whole batch.
func ProcessEpisodes(ctx context.Context, opts Options, rep reporter.Reporter) ([]PosterResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	episodes, err := discovery.FindEpisodes(opts.InputDir)
	if err != nil {
		return nil, err
	}

	if err := util.EnsureDirectoryWritable(opts.OutputDir); err != nil {
		return nil, err
	}
	util.CheckDiskSpace(opts.OutputDir, func(format string, args ...any) {
		logging.Warn(fmt.Sprintf(format, args...))
	})

	// Interrupted runs can leave half-written posters behind.
	if n, err := util.CleanupStaleTempFiles(opts.OutputDir, ".poster", time.Hour); err == nil && n > 0 {
		logging.Info("removed stale temp poster files", "dir", opts.OutputDir, "count", n)
	}

	workDir, err := util.CreateTempDir(os.TempDir(), "episodeposter")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := workDir.Cleanup(); err != nil {
			logging.Warn("cannot remove temp work directory", "path", workDir.Path(), "error", err)
		}
	}()

	var names []string
	for _, ep := range episodes {
		names = append(names, util.GetFilename(ep.Path))
	}
	rep.BatchStarted(reporter.BatchStartInfo{
		TotalEpisodes: len(episodes),
		EpisodeList:   names,
		OutputDir:     opts.OutputDir,
	})
	rep.RenderConfig(renderConfigSummary(opts))

	permits := opts.Concurrency
	if permits <= 0 {
		permits = worker.DecodePermits(util.LogicalCores(), opts.Encoding.HWAccel != config.AccelNone)
	}
	sem := worker.NewSemaphore(permits)

	results := make([]PosterResult, len(episodes))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var processed int

	for i := range episodes {
		if err := sem.Acquire(ctx); err != nil {
			rep.Warning(fmt.Sprintf("batch cancelled: %v", ctx.Err()))
			results[i] = PosterResult{Episode: episodes[i], Err: errors.NewCancelledError()}
			for j := i + 1; j < len(episodes); j++ {
				results[j] = PosterResult{Episode: episodes[j], Err: errors.NewCancelledError()}
			}
			break
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.Release()

			mu.Lock()
			processed++
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: processed,
				TotalFiles:  len(episodes),
			})
			mu.Unlock()

			results[idx] = processOne(ctx, opts, episodes[idx], idx, workDir.Path(), rep)
		}(i)
	}
	wg.Wait()

	emitSummary(rep, results)
	return results, nil
}

// ProcessFile generates a poster for a single episode video. It runs
// the same pipeline as a batch of one, without the batch summary.
func ProcessFile(ctx context.Context, opts Options, path string, rep reporter.Reporter) (PosterResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	ep := discovery.ParseFilename(path)

	if err := util.EnsureDirectoryWritable(opts.OutputDir); err != nil {
		return PosterResult{Episode: ep}, err
	}

	workDir, err := util.CreateTempDir(os.TempDir(), "episodeposter")
	if err != nil {
		return PosterResult{Episode: ep}, err
	}
	defer func() {
		if err := workDir.Cleanup(); err != nil {
			logging.Warn("cannot remove temp work directory", "path", workDir.Path(), "error", err)
		}
	}()

	rep.RenderConfig(renderConfigSummary(opts))
	result := processOne(ctx, opts, ep, 0, workDir.Path(), rep)
	return result, result.Err
}

// processOne runs the full pipeline for a single episode: probe,
// extract, compose, render, save, validate.
func processOne(ctx context.Context, opts Options, ep discovery.Episode, idx int, workDir string, rep reporter.Reporter) PosterResult {
	start := time.Now()
	result := PosterResult{Episode: ep}

	settings := opts.Settings
	if opts.Resolver != nil {
		settings = opts.Resolver.Resolve(ep.SeriesName)
	}

	outputPath := outputPathFor(ep, opts.OutputDir, &settings)
	result.OutputPath = outputPath

	if !opts.Overwrite && util.FileExists(outputPath) {
		rep.Warning(fmt.Sprintf("Poster already exists: %s. Skipping episode.", outputPath))
		result.Skipped = true
		return result
	}

	video, err := ffprobe.Probe(ctx, ep.Path)
	if err != nil {
		return fail(rep, result, start, "Probe Error",
			fmt.Sprintf("Could not analyze %s: %v", util.GetFilename(ep.Path), err),
			ep.Path, "Check if the file is a valid video", err)
	}

	rep.Initialization(reporter.VideoSummary{
		InputFile:    util.GetFilename(ep.Path),
		OutputFile:   util.GetFilename(outputPath),
		Duration:     util.FormatDuration(video.DurationSecs),
		Resolution:   fmt.Sprintf("%dx%d", video.Width, video.Height),
		DynamicRange: video.Range.String(),
		Codec:        video.Codec,
	})

	rng := rand.New(rand.NewSource(opts.Seed + int64(idx)))
	extractor := extraction.NewExtractor(rng, workDir)

	frame, err := extractor.Extract(ctx, video, opts.Encoding, &settings)
	if err != nil {
		return fail(rep, result, start, "Extraction Error",
			fmt.Sprintf("Could not extract a frame from %s: %v", util.GetFilename(ep.Path), err),
			ep.Path, "Check that ffmpeg is installed and the video decodes", err)
	}
	defer func() {
		_ = os.Remove(frame.FramePath)
	}()

	rep.SceneResult(reporter.SceneSummary{
		Message:       sceneMessage(frame),
		Timestamp:     util.FormatTimestamp(frame.Timestamp),
		BlackDetected: frame.BlackDetected,
	})

	if ctx.Err() != nil {
		result.Err = errors.NewCancelledError()
		return result
	}

	base, err := canvas.Build(frame.FramePath, video, &settings)
	if err != nil {
		return fail(rep, result, start, "Canvas Error",
			fmt.Sprintf("Could not prepare the canvas for %s: %v", util.GetFilename(ep.Path), err),
			ep.Path, "", err)
	}

	if ctx.Err() != nil {
		result.Err = errors.NewCancelledError()
		return result
	}

	renderer := poster.NewRenderer(rng)
	img, err := renderer.Render(base, &ep, &settings)
	if err != nil {
		return fail(rep, result, start, "Render Error",
			fmt.Sprintf("Could not render the poster for %s: %v", util.GetFilename(ep.Path), err),
			ep.Path, "", err)
	}

	if ctx.Err() != nil {
		result.Err = errors.NewCancelledError()
		return result
	}

	finalPath, err := poster.SavePoster(img, outputPath, &settings)
	if err != nil {
		return fail(rep, result, start, "Write Error",
			fmt.Sprintf("Could not write the poster for %s: %v", util.GetFilename(ep.Path), err),
			outputPath, "Check output directory permissions and free space", err)
	}
	result.OutputPath = finalPath

	validationResult, err := validation.ValidatePosterFile(finalPath, validation.Options{
		ExpectedFormat: expectedFormat(settings.FileType),
		CheckBlank:     true,
	})
	if err != nil {
		result.ValidationSteps = []validation.ValidationStep{
			{Name: "Validation", Passed: false, Details: err.Error()},
		}
	} else {
		result.ValidationPassed = validationResult.IsValid()
		result.ValidationSteps = validationResult.GetValidationSteps()
	}

	var repSteps []reporter.ValidationStep
	for _, s := range result.ValidationSteps {
		repSteps = append(repSteps, reporter.ValidationStep{
			Name:    s.Name,
			Passed:  s.Passed,
			Details: s.Details,
		})
	}
	rep.ValidationComplete(reporter.ValidationSummary{
		Passed: result.ValidationPassed,
		Steps:  repSteps,
	})

	result.SizeBytes, _ = util.GetFileSize(finalPath)
	result.Duration = time.Since(start)

	bounds := img.Bounds()
	rep.PosterComplete(reporter.PosterOutcome{
		InputFile:  util.GetFilename(ep.Path),
		OutputPath: finalPath,
		SizeBytes:  result.SizeBytes,
		Dimensions: fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		RenderTime: result.Duration,
	})
	return result
}

// fail records an episode failure and reports it without aborting the
// batch.
func fail(rep reporter.Reporter, result PosterResult, start time.Time, title, message, context, suggestion string, err error) PosterResult {
	rep.Error(reporter.ReporterError{
		Title:      title,
		Message:    message,
		Context:    context,
		Suggestion: suggestion,
	})
	result.Err = err
	result.Duration = time.Since(start)
	return result
}

// emitSummary closes the batch with either a per-file completion or a
// full summary.
func emitSummary(rep reporter.Reporter, results []PosterResult) {
	var succeeded, failed int
	var totalBytes uint64
	var totalDuration time.Duration
	var validationPassed, validationFailed int
	var episodeResults []reporter.EpisodeResult

	for _, r := range results {
		if r.Skipped {
			continue
		}
		totalDuration += r.Duration
		if r.Err != nil {
			failed++
			episodeResults = append(episodeResults, reporter.EpisodeResult{
				Filename: util.GetFilename(r.Episode.Path),
				Failed:   true,
			})
			continue
		}
		succeeded++
		totalBytes += r.SizeBytes
		if r.ValidationPassed {
			validationPassed++
		} else {
			validationFailed++
		}
		episodeResults = append(episodeResults, reporter.EpisodeResult{
			Filename:   util.GetFilename(r.Episode.Path),
			OutputPath: r.OutputPath,
			SizeBytes:  r.SizeBytes,
		})
	}

	switch {
	case succeeded == 0 && failed == 0:
		rep.Warning("No posters were generated")
	case succeeded == 1 && failed == 0 && len(results) == 1:
		rep.OperationComplete(fmt.Sprintf("Generated poster %s", results[0].OutputPath))
	default:
		sort.Slice(episodeResults, func(i, j int) bool {
			return episodeResults[i].Filename < episodeResults[j].Filename
		})
		rep.BatchComplete(reporter.BatchSummary{
			SuccessfulCount:       succeeded,
			FailedCount:           failed,
			TotalEpisodes:         len(results),
			TotalBytes:            totalBytes,
			TotalDuration:         totalDuration,
			ValidationPassedCount: validationPassed,
			ValidationFailedCount: validationFailed,
			EpisodeResults:        episodeResults,
		})
	}
}

// outputPathFor derives the poster path: the video's stem in the output
// directory with the configured image extension. A webp request maps to
// png up front so skip detection sees the path that will really exist.
func outputPathFor(ep discovery.Episode, outputDir string, settings *config.PosterSettings) string {
	ext := settings.FileType.Extension()
	if settings.FileType == config.FileTypeWEBP {
		ext = config.FileTypePNG.Extension()
	}
	return filepath.Join(outputDir, util.GetFileStem(ep.Path)+ext)
}

// expectedFormat maps the configured output format to the name the image
// decoder reports during validation.
func expectedFormat(t config.FileType) string {
	if t == config.FileTypeWEBP {
		return string(config.FileTypePNG)
	}
	return string(t)
}

func sceneMessage(frame *extraction.Result) string {
	if frame.UsedFallback {
		return "selected fallback timestamp after a failed extraction"
	}
	if frame.BlackDetected {
		return "selected timestamp avoiding detected black scenes"
	}
	return "selected timestamp from the extraction window"
}

func renderConfigSummary(opts Options) reporter.RenderConfigSummary {
	s := opts.Settings
	tonemap := "disabled"
	if opts.Encoding.EnableTonemap {
		tonemap = "enabled"
	}
	return reporter.RenderConfigSummary{
		Style:      string(s.Style),
		Dimensions: fmt.Sprintf("%d:%d", s.AspectWidth, s.AspectHeight),
		Fill:       string(s.Fill),
		FileType:   string(s.FileType),
		Quality:    fmt.Sprintf("%d", s.Quality),
		HWAccel:    opts.Encoding.HWAccel.String(),
		Tonemap:    tonemap,
	}
}
