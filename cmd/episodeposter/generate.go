package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/processing"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/reporter"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// generateArgs holds the parsed flags for the generate command.
type generateArgs struct {
	inputDir    string
	outputDir   string
	configPath  string
	logDir      string
	noLog       bool
	verbose     bool
	jsonOutput  bool
	style       string
	fileType    string
	fill        string
	aspect      string
	quality     int
	fontPath    string
	hwaccel     string
	tonemap     bool
	noLetterbox bool
	seed        int64
	overwrite   bool
	concurrency int
}

func newGenerateCmd() *cobra.Command {
	var ga generateArgs

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate posters for every episode video in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeGenerate(cmd, ga)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&ga.inputDir, "input", "i", "", "Input directory containing episode videos")
	fs.StringVarP(&ga.outputDir, "output", "o", "", "Output directory for posters")
	fs.StringVarP(&ga.configPath, "config", "c", "", "TOML configuration file")
	fs.StringVarP(&ga.logDir, "log-dir", "l", "", "Log directory (defaults to OUTPUT/logs)")
	fs.BoolVar(&ga.noLog, "no-log", false, "Disable log file creation")
	fs.BoolVarP(&ga.verbose, "verbose", "v", false, "Enable verbose output")
	fs.BoolVar(&ga.jsonOutput, "json", false, "Emit NDJSON events instead of terminal output")

	fs.StringVar(&ga.style, "style", "", "Poster style (standard, cutout, numeral, logo, frame, brush, split)")
	fs.StringVar(&ga.fileType, "file-type", "", "Output format (jpeg, png, webp, gif)")
	fs.StringVar(&ga.fill, "fill", "", "Frame fill strategy (original, fill, fit)")
	fs.StringVar(&ga.aspect, "aspect", "", "Poster aspect ratio, e.g. 16:9")
	fs.IntVar(&ga.quality, "quality", 0, "Encode quality for lossy formats (1-100)")
	fs.StringVar(&ga.fontPath, "font", "", "TrueType font file for poster text")

	fs.StringVar(&ga.hwaccel, "hwaccel", "", "Hardware decoder (qsv, nvenc, amf, vaapi, videotoolbox, v4l2m2m, rkmpp)")
	fs.BoolVar(&ga.tonemap, "tonemap", false, "Tone map HDR sources to SDR during extraction")
	fs.BoolVar(&ga.noLetterbox, "no-letterbox-crop", false, "Disable letterbox black bar removal")

	fs.Int64Var(&ga.seed, "seed", 0, "Random seed for reproducible timestamp selection")
	fs.BoolVar(&ga.overwrite, "overwrite", false, "Regenerate posters that already exist")
	fs.IntVar(&ga.concurrency, "concurrency", 0, "Parallel episode pipelines (0 = auto)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func executeGenerate(cmd *cobra.Command, ga generateArgs) error {
	inputDir, err := filepath.Abs(ga.inputDir)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if !util.DirectoryExists(inputDir) {
		return fmt.Errorf("input directory does not exist: %s", inputDir)
	}

	outputDir, err := filepath.Abs(ga.outputDir)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := util.EnsureDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	settings, encoding, resolver, err := buildConfiguration(cmd, ga)
	if err != nil {
		return err
	}

	if err := setupLogging(ga, outputDir); err != nil {
		return err
	}

	host := util.GetSystemInfo()
	logging.Info("starting poster generation",
		"host", host.Hostname, "os", host.OS, "arch", host.Arch, "cores", host.NumCPU)

	var rep reporter.Reporter
	if ga.jsonOutput {
		rep = reporter.NewJSONReporter()
	} else {
		rep = reporter.NewTerminalReporter()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = processing.ProcessEpisodes(ctx, processing.Options{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Settings:    settings,
		Resolver:    resolver,
		Encoding:    encoding,
		Seed:        resolveSeed(cmd.Flags().Changed("seed"), ga.seed),
		Overwrite:   ga.overwrite,
		Concurrency: ga.concurrency,
	}, rep)
	return err
}

// resolveSeed returns the flag value when --seed was given, otherwise a
// time-derived seed so separate runs pick different frames.
func resolveSeed(explicit bool, seed int64) int64 {
	if explicit {
		return seed
	}
	return time.Now().UnixNano()
}

// buildConfiguration layers CLI flags over the optional TOML config
// file: the file provides the base, explicitly set flags win.
func buildConfiguration(cmd *cobra.Command, ga generateArgs) (config.PosterSettings, config.EncodingOptions, *config.Resolver, error) {
	settings := config.DefaultPosterSettings()
	encoding := config.DefaultEncodingOptions()
	var resolver *config.Resolver

	if ga.configPath != "" {
		file, err := config.Load(ga.configPath)
		if err != nil {
			return settings, encoding, nil, err
		}
		settings = file.Poster
		encoding = file.Encoding
		if len(file.Profiles) > 0 {
			resolver = file.NewResolver()
		}
	}

	if ga.style != "" {
		style, err := config.ParseStyle(ga.style)
		if err != nil {
			return settings, encoding, nil, err
		}
		settings.Style = style
	}
	if ga.fileType != "" {
		fileType, err := config.ParseFileType(ga.fileType)
		if err != nil {
			return settings, encoding, nil, err
		}
		settings.FileType = fileType
	}
	if ga.fill != "" {
		fill, err := config.ParseFillStrategy(ga.fill)
		if err != nil {
			return settings, encoding, nil, err
		}
		settings.Fill = fill
	}
	if ga.aspect != "" {
		w, h, err := parseAspect(ga.aspect)
		if err != nil {
			return settings, encoding, nil, err
		}
		settings.AspectWidth = w
		settings.AspectHeight = h
	}
	if ga.quality != 0 {
		settings.Quality = ga.quality
	}
	if ga.fontPath != "" {
		settings.Episode.FontPath = ga.fontPath
		settings.Title.FontPath = ga.fontPath
	}
	if ga.noLetterbox {
		settings.Letterbox.Enabled = false
	}

	if ga.hwaccel != "" {
		accel, err := config.ParseHWAccel(ga.hwaccel)
		if err != nil {
			return settings, encoding, nil, err
		}
		encoding.HWAccel = accel
	}
	if cmd.Flags().Changed("tonemap") {
		encoding.EnableTonemap = ga.tonemap
	}

	if err := settings.Validate(); err != nil {
		return settings, encoding, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// The CLI overrides apply to the defaults only; profile settings
	// from the config file are already validated by Load.
	if resolver != nil {
		resolver.SetDefault(settings)
	}

	return settings, encoding, resolver, nil
}

// setupLogging points the global logger at a run log file, or at stderr
// when file logging is disabled.
func setupLogging(ga generateArgs, outputDir string) error {
	level := logging.LevelInfo
	if ga.verbose {
		level = logging.LevelDebug
	}

	if ga.noLog {
		logging.Init(level, os.Stderr)
		return nil
	}

	logDir := ga.logDir
	if logDir == "" {
		logDir = filepath.Join(outputDir, "logs")
	}

	logger, err := logging.NewFileLogger(logDir, level)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logging.SetGlobal(logger)
	return nil
}

// parseAspect parses a "W:H" aspect ratio string.
func parseAspect(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q, expected W:H", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid aspect ratio width in %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid aspect ratio height in %q", s)
	}
	return w, h, nil
}
