// Package episodeposter generates poster images for TV episode video
// files.
//
// The library extracts a representative frame from each episode with
// FFmpeg, avoiding black scenes and handling HDR sources, then composes
// a poster with one of several typography styles and validates the
// written file.
//
// Basic usage:
//
//	gen, err := episodeposter.New(
//	    episodeposter.WithStyle(episodeposter.StyleNumeral),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx, "episodes/", "posters/", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated %d of %d posters\n",
//	    result.SuccessfulCount, result.TotalEpisodes)
package episodeposter

import (
	"context"
	"time"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/discovery"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/processing"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/reporter"
)

// Re-export style types
type Style = config.Style

const (
	StyleStandard = config.StyleStandard
	StyleCutout   = config.StyleCutout
	StyleNumeral  = config.StyleNumeral
	StyleLogo     = config.StyleLogo
	StyleFrame    = config.StyleFrame
	StyleBrush    = config.StyleBrush
	StyleSplit    = config.StyleSplit
)

// ParseStyle converts a style string to a Style value.
// Valid values are "standard", "cutout", "numeral", "logo", "frame",
// "brush", and "split" (case-insensitive).
func ParseStyle(s string) (Style, error) {
	return config.ParseStyle(s)
}

// Re-export output format types
type FileType = config.FileType

const (
	FileTypeJPEG = config.FileTypeJPEG
	FileTypePNG  = config.FileTypePNG
	FileTypeWEBP = config.FileTypeWEBP
	FileTypeGIF  = config.FileTypeGIF
)

// Settings is the full poster rendering configuration.
type Settings = config.PosterSettings

// DefaultSettings returns the standard-style default configuration.
func DefaultSettings() Settings {
	return config.DefaultPosterSettings()
}

// Reporter receives progress events during generation.
type Reporter = reporter.Reporter

// Episode describes one discovered episode video.
type Episode = discovery.Episode

// Generator is the main entry point for poster generation.
type Generator struct {
	settings    config.PosterSettings
	encoding    config.EncodingOptions
	resolver    *config.Resolver
	seed        int64
	seedSet     bool
	overwrite   bool
	concurrency int
}

// Result contains the result for a single episode.
type Result struct {
	Episode          Episode
	OutputPath       string
	SizeBytes        uint64
	Skipped          bool
	ValidationPassed bool
	Err              error
}

// BatchResult contains the result of a batch run.
type BatchResult struct {
	Results               []Result
	SuccessfulCount       int
	FailedCount           int
	TotalEpisodes         int
	ValidationPassedCount int
}

// Option configures the generator.
type Option func(*Generator)

// New creates a new Generator with the given options.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		settings: config.DefaultPosterSettings(),
		encoding: config.DefaultEncodingOptions(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.settings.Validate(); err != nil {
		return nil, err
	}
	if !g.seedSet {
		g.seed = time.Now().UnixNano()
	}

	return g, nil
}

// WithSettings replaces the full poster configuration.
func WithSettings(s Settings) Option {
	return func(g *Generator) {
		g.settings = s
	}
}

// WithStyle sets the poster typography style.
func WithStyle(s Style) Option {
	return func(g *Generator) {
		g.settings.Style = s
	}
}

// WithFileType sets the output image format.
func WithFileType(t FileType) Option {
	return func(g *Generator) {
		g.settings.FileType = t
	}
}

// WithQuality sets the encode quality for lossy formats (1-100).
func WithQuality(q int) Option {
	return func(g *Generator) {
		g.settings.Quality = q
	}
}

// WithAspectRatio sets the poster aspect ratio, e.g. 16:9.
func WithAspectRatio(width, height int) Option {
	return func(g *Generator) {
		g.settings.AspectWidth = width
		g.settings.AspectHeight = height
	}
}

// WithFont uses the given TrueType font file for all poster text.
func WithFont(path string) Option {
	return func(g *Generator) {
		g.settings.Episode.FontPath = path
		g.settings.Title.FontPath = path
	}
}

// WithHWAccel enables hardware-accelerated decoding. Valid values match
// FFmpeg hwaccel names, e.g. "qsv", "nvenc", "vaapi", "videotoolbox".
func WithHWAccel(name string) Option {
	return func(g *Generator) {
		accel, err := config.ParseHWAccel(name)
		if err != nil {
			return
		}
		g.encoding.HWAccel = accel
	}
}

// WithTonemap controls HDR to SDR tone mapping during extraction.
func WithTonemap(enable bool) Option {
	return func(g *Generator) {
		g.encoding.EnableTonemap = enable
	}
}

// WithSeed fixes the random seed so reruns produce identical posters.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seedSet = true
	}
}

// WithOverwrite regenerates posters whose output file already exists.
func WithOverwrite() Option {
	return func(g *Generator) {
		g.overwrite = true
	}
}

// WithConcurrency bounds the number of episodes processed in parallel.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		g.concurrency = n
	}
}

// WithProfile registers a named settings profile for WithSeriesProfile.
func WithProfile(name string, s Settings) Option {
	return func(g *Generator) {
		if g.resolver == nil {
			g.resolver = config.NewResolver()
		}
		g.resolver.SetProfile(name, s)
	}
}

// WithSeriesProfile assigns a series to a registered profile. Episodes
// of that series render with the profile's settings instead of the
// defaults.
func WithSeriesProfile(seriesName, profileName string) Option {
	return func(g *Generator) {
		if g.resolver == nil {
			g.resolver = config.NewResolver()
		}
		g.resolver.Assign([]config.Assignment{{SeriesID: seriesName, Profile: profileName}})
	}
}

// GenerateWithReporter generates posters for every episode video under
// inputDir using a custom Reporter. This provides direct access to all
// pipeline events, unlike Generate which uses the EventHandler
// abstraction.
func (g *Generator) GenerateWithReporter(ctx context.Context, inputDir, outputDir string, rep Reporter) (*BatchResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return g.run(ctx, inputDir, outputDir, rep)
}

// Generate generates posters for every episode video under inputDir.
func (g *Generator) Generate(ctx context.Context, inputDir, outputDir string, handler EventHandler) (*BatchResult, error) {
	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}
	return g.run(ctx, inputDir, outputDir, rep)
}

func (g *Generator) run(ctx context.Context, inputDir, outputDir string, rep reporter.Reporter) (*BatchResult, error) {
	resolver := g.resolver
	if resolver != nil {
		resolver.SetDefault(g.settings)
	}

	results, err := processing.ProcessEpisodes(ctx, processing.Options{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Settings:    g.settings,
		Resolver:    resolver,
		Encoding:    g.encoding,
		Seed:        g.seed,
		Overwrite:   g.overwrite,
		Concurrency: g.concurrency,
	}, rep)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{TotalEpisodes: len(results)}
	for _, r := range results {
		batch.Results = append(batch.Results, Result{
			Episode:          r.Episode,
			OutputPath:       r.OutputPath,
			SizeBytes:        r.SizeBytes,
			Skipped:          r.Skipped,
			ValidationPassed: r.ValidationPassed,
			Err:              r.Err,
		})
		if r.Skipped {
			continue
		}
		if r.Err != nil {
			batch.FailedCount++
			continue
		}
		batch.SuccessfulCount++
		if r.ValidationPassed {
			batch.ValidationPassedCount++
		}
	}
	return batch, nil
}

// FindEpisodes lists the episode videos a generation run would process.
func FindEpisodes(dir string) ([]Episode, error) {
	return discovery.FindEpisodes(dir)
}
