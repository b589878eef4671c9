// Package config provides configuration types and defaults for poster generation.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidStyle indicates an unknown poster style name was provided.
	ErrInvalidStyle = errors.New("invalid poster style")

	// ErrInvalidFillStrategy indicates an unknown fill strategy name.
	ErrInvalidFillStrategy = errors.New("invalid fill strategy")

	// ErrInvalidFileType indicates an unknown output file type.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrInvalidSafeArea indicates a safe-area margin outside the valid range.
	ErrInvalidSafeArea = errors.New("safe area out of range")

	// ErrInvalidAspectRatio indicates a non-positive aspect ratio component.
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio")

	// ErrInvalidQuality indicates an encode quality outside 1-100.
	ErrInvalidQuality = errors.New("quality out of range")

	// ErrInvalidWindow indicates a malformed extraction window.
	ErrInvalidWindow = errors.New("invalid extraction window")

	// ErrInvalidFontSize indicates a non-positive font size percentage.
	ErrInvalidFontSize = errors.New("invalid font size")

	// ErrInvalidLetterbox indicates a letterbox threshold outside 0-255.
	ErrInvalidLetterbox = errors.New("invalid letterbox threshold")

	// ErrInvalidAccelerator indicates an unknown hardware accelerator name.
	ErrInvalidAccelerator = errors.New("invalid hardware accelerator")
)
