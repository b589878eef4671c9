// Package validation provides post-render validation checks.
package validation

// ImageAnalyzer provides image analysis capabilities for validation.
// This interface allows validation logic to be tested without touching
// the filesystem.
type ImageAnalyzer interface {
	// GetImageInfo returns basic properties of the image file.
	GetImageInfo(path string) (*AnalyzerImageInfo, error)

	// GetMeanLuminance returns the average luminance of the image on an
	// 8-bit scale. It requires a full decode and is therefore a separate
	// call from GetImageInfo.
	GetMeanLuminance(path string) (float64, error)
}

// AnalyzerImageInfo contains the image properties needed for validation.
type AnalyzerImageInfo struct {
	Width     int
	Height    int
	Format    string
	SizeBytes int64
}
