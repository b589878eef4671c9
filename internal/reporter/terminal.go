package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu        sync.Mutex
	progress  *progressbar.ProgressBar
	lastStage string
	cyan      *color.Color
	green     *color.Color
	yellow    *color.Color
	red       *color.Color
	magenta   *color.Color
	bold      *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) Initialization(summary VideoSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	r.printLabel(12, "File:", summary.InputFile)
	r.printLabel(12, "Poster:", summary.OutputFile)
	r.printLabel(12, "Duration:", summary.Duration)
	r.printLabel(12, "Resolution:", summary.Resolution)
	r.printLabel(12, "Dynamic:", summary.DynamicRange)
	r.printLabel(12, "Codec:", summary.Codec)
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.mu.Lock()
	if r.lastStage != update.Stage {
		r.mu.Unlock()
		fmt.Println()
		_, _ = r.cyan.Println(strings.ToUpper(update.Stage))
		r.mu.Lock()
		r.lastStage = update.Stage
	}
	r.mu.Unlock()
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) SceneResult(summary SceneSummary) {
	var status string
	if summary.Disabled {
		status = color.New(color.Faint).Sprint("black detection disabled")
	} else if summary.BlackDetected {
		status = r.green.Sprint(summary.Timestamp)
	} else {
		status = color.New(color.Faint).Sprint("no black scenes")
	}
	fmt.Printf("  %s %s (%s)\n", r.bold.Sprint("Frame time:"), summary.Message, status)
}

func (r *TerminalReporter) RenderConfig(summary RenderConfigSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("RENDERING")
	const w = 12
	r.printLabel(w, "Style:", summary.Style)
	r.printLabel(w, "Canvas:", summary.Dimensions)
	r.printLabel(w, "Fill:", summary.Fill)
	r.printLabel(w, "Format:", summary.FileType)
	r.printLabel(w, "Quality:", summary.Quality)
	r.printLabel(w, "Decoder:", summary.HWAccel)
	r.printLabel(w, "Tonemap:", summary.Tonemap)
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d episodes -> %s\n", info.TotalEpisodes, r.bold.Sprint(info.OutputDir))
	for i, name := range info.EpisodeList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions64(
		int64(info.TotalEpisodes),
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Posters [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nEpisode %s of %d\n",
		r.bold.Sprint(context.CurrentFile),
		context.TotalFiles)
}

func (r *TerminalReporter) ValidationComplete(summary ValidationSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VALIDATION")

	if summary.Passed {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("All checks passed"))
	} else {
		fmt.Printf("  %s\n", r.red.Sprint("Validation failed"))
	}

	maxLen := 0
	for _, step := range summary.Steps {
		if len(step.Name) > maxLen {
			maxLen = len(step.Name)
		}
	}

	for _, step := range summary.Steps {
		var status string
		if step.Passed {
			status = r.green.Sprint("✓")
		} else {
			status = r.red.Sprint("✗")
		}
		paddedName := fmt.Sprintf("%-*s", maxLen, step.Name)
		fmt.Printf("  - %s: %s (%s)\n", paddedName, status, step.Details)
	}
}

func (r *TerminalReporter) PosterComplete(summary PosterOutcome) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Add(1)
		desc := summary.OutputPath
		r.progress.Describe(desc)
	}
	r.mu.Unlock()

	fmt.Println()
	_, _ = r.cyan.Println("RESULT")
	fmt.Printf("  %s %s\n", r.bold.Sprint("Source:"), summary.InputFile)
	fmt.Printf("  %s %s (%s, %s)\n",
		r.bold.Sprint("Poster:"),
		r.green.Sprint(summary.OutputPath),
		summary.Dimensions,
		util.FormatBytes(summary.SizeBytes))
	fmt.Printf("  %s %s\n", r.bold.Sprint("Time:"), util.FormatDuration(summary.RenderTime.Seconds()))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	r.finishProgress()
	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.SuccessfulCount, summary.TotalEpisodes))
	if summary.FailedCount > 0 {
		fmt.Printf("  Failed: %s\n", r.red.Sprint(summary.FailedCount))
	}
	fmt.Printf("  Validation: %s passed, %s failed\n",
		r.green.Sprint(summary.ValidationPassedCount),
		r.red.Sprint(summary.ValidationFailedCount))
	fmt.Printf("  Output: %s\n", util.FormatBytes(summary.TotalBytes))
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.TotalDuration.Seconds()))

	for _, result := range summary.EpisodeResults {
		if result.Failed {
			fmt.Printf("  - %s (%s)\n", result.Filename, r.red.Sprint("failed"))
			continue
		}
		fmt.Printf("  - %s -> %s (%s)\n", result.Filename, result.OutputPath, util.FormatBytes(result.SizeBytes))
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
