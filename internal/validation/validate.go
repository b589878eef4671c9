package validation

import "fmt"

const (
	// minPosterBytes is the smallest plausible size for an encoded poster.
	// Anything below this is treated as a truncated write.
	minPosterBytes = 1024
	// minMeanLuminance is the threshold below which a poster is considered
	// blank. A fully black frame that slipped past scene selection lands
	// here.
	minMeanLuminance = 1.0
)

// Options contains optional parameters for validation.
type Options struct {
	ExpectedDimensions *[2]int
	ExpectedFormat     string
	CheckBlank         bool
}

// ValidatePosterFile performs validation of a rendered poster file.
// It delegates to ValidateWithAnalyzer using the DefaultAnalyzer.
func ValidatePosterFile(path string, opts Options) (*Result, error) {
	return ValidateWithAnalyzer(NewDefaultAnalyzer(), path, opts)
}

// ValidateWithAnalyzer performs validation using an ImageAnalyzer.
// This allows for testing without filesystem dependencies.
func ValidateWithAnalyzer(analyzer ImageAnalyzer, path string, opts Options) (*Result, error) {
	result := &Result{
		IsFormatCorrect:     true,
		IsDimensionsCorrect: true,
		IsNotBlank:          true,
	}

	info, err := analyzer.GetImageInfo(path)
	if err != nil {
		result.PresenceMessage = "Cannot read poster: " + err.Error()
		result.DecodeMessage = "Decode skipped"
		return result, nil
	}

	result.SizeBytes = info.SizeBytes
	if info.SizeBytes < minPosterBytes {
		result.PresenceMessage = fmt.Sprintf("Poster file suspiciously small: %d bytes", info.SizeBytes)
	} else {
		result.IsPresent = true
		result.PresenceMessage = fmt.Sprintf("Poster written (%d bytes)", info.SizeBytes)
	}

	result.IsDecodable = true
	result.Format = info.Format
	result.DecodeMessage = "Decoded as " + info.Format

	if opts.ExpectedFormat != "" {
		result.ExpectedFormat = opts.ExpectedFormat
		if info.Format == opts.ExpectedFormat {
			result.FormatMessage = "Format matches: " + info.Format
		} else {
			result.IsFormatCorrect = false
			result.FormatMessage = "Expected " + opts.ExpectedFormat + ", got " + info.Format
		}
	} else {
		result.FormatMessage = "No format expectation"
	}

	dims := [2]int{info.Width, info.Height}
	result.ActualDimensions = &dims
	if opts.ExpectedDimensions != nil {
		if dims == *opts.ExpectedDimensions {
			result.DimensionMessage = "Dimensions match: " + formatDimensions(dims)
		} else {
			result.IsDimensionsCorrect = false
			result.DimensionMessage = fmt.Sprintf("Dimension mismatch: got %s, expected %s",
				formatDimensions(dims), formatDimensions(*opts.ExpectedDimensions))
		}
	} else if info.Width <= 0 || info.Height <= 0 {
		result.IsDimensionsCorrect = false
		result.DimensionMessage = "Degenerate dimensions: " + formatDimensions(dims)
	} else {
		result.DimensionMessage = "Dimensions: " + formatDimensions(dims)
	}

	if opts.CheckBlank {
		lum, err := analyzer.GetMeanLuminance(path)
		if err != nil {
			result.IsNotBlank = false
			result.BlankMessage = "Cannot analyze content: " + err.Error()
		} else {
			result.MeanLuminance = &lum
			if lum < minMeanLuminance {
				result.IsNotBlank = false
				result.BlankMessage = fmt.Sprintf("Poster appears blank (mean luminance %.2f)", lum)
			} else {
				result.BlankMessage = fmt.Sprintf("Content present (mean luminance %.2f)", lum)
			}
		}
	} else {
		result.BlankMessage = "Blank check skipped"
	}

	return result, nil
}
