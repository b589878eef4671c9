package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/processing"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/reporter"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// previewArgs reuses the generate flag set; only the input changes from
// a directory to a single video file.
type previewArgs struct {
	generateArgs
	inputFile string
}

func newPreviewCmd() *cobra.Command {
	var pa previewArgs

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Generate a poster for a single episode video",
		Long: "Generate a poster for one video file so style and font settings\n" +
			"can be checked before a full batch run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePreview(cmd, pa)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&pa.inputFile, "input", "i", "", "Episode video file")
	fs.StringVarP(&pa.outputDir, "output", "o", "", "Output directory for the poster")
	fs.StringVarP(&pa.configPath, "config", "c", "", "TOML configuration file")
	fs.BoolVarP(&pa.verbose, "verbose", "v", false, "Enable verbose output")

	fs.StringVar(&pa.style, "style", "", "Poster style (standard, cutout, numeral, logo, frame, brush, split)")
	fs.StringVar(&pa.fileType, "file-type", "", "Output format (jpeg, png, webp, gif)")
	fs.StringVar(&pa.fill, "fill", "", "Frame fill strategy (original, fill, fit)")
	fs.StringVar(&pa.aspect, "aspect", "", "Poster aspect ratio, e.g. 16:9")
	fs.IntVar(&pa.quality, "quality", 0, "Encode quality for lossy formats (1-100)")
	fs.StringVar(&pa.fontPath, "font", "", "TrueType font file for poster text")

	fs.StringVar(&pa.hwaccel, "hwaccel", "", "Hardware decoder (qsv, nvenc, amf, vaapi, videotoolbox, v4l2m2m, rkmpp)")
	fs.BoolVar(&pa.tonemap, "tonemap", false, "Tone map HDR sources to SDR during extraction")
	fs.BoolVar(&pa.noLetterbox, "no-letterbox-crop", false, "Disable letterbox black bar removal")

	fs.Int64Var(&pa.seed, "seed", 0, "Random seed for reproducible timestamp selection")
	fs.BoolVar(&pa.overwrite, "overwrite", false, "Regenerate the poster if it already exists")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func executePreview(cmd *cobra.Command, pa previewArgs) error {
	inputFile, err := filepath.Abs(pa.inputFile)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if !util.FileExists(inputFile) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	outputDir, err := filepath.Abs(pa.outputDir)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := util.EnsureDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	settings, encoding, resolver, err := buildConfiguration(cmd, pa.generateArgs)
	if err != nil {
		return err
	}

	pa.noLog = true
	if err := setupLogging(pa.generateArgs, outputDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := processing.ProcessFile(ctx, processing.Options{
		OutputDir: outputDir,
		Settings:  settings,
		Resolver:  resolver,
		Encoding:  encoding,
		Seed:      resolveSeed(cmd.Flags().Changed("seed"), pa.seed),
		Overwrite: pa.overwrite,
	}, inputFile, reporter.NewTerminalReporter())
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Poster already exists: %s (use --overwrite to regenerate)\n", result.OutputPath)
	}
	return nil
}
