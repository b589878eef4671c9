package validation

import "fmt"

// Result contains the overall validation result for one rendered poster.
type Result struct {
	IsPresent           bool
	IsDecodable         bool
	IsFormatCorrect     bool
	IsDimensionsCorrect bool
	IsNotBlank          bool

	// Details
	Format           string
	ExpectedFormat   string
	ActualDimensions *[2]int
	SizeBytes        int64
	MeanLuminance    *float64

	PresenceMessage  string
	DecodeMessage    string
	FormatMessage    string
	DimensionMessage string
	BlankMessage     string
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// IsValid returns true if all validation checks passed.
func (r *Result) IsValid() bool {
	return r.IsPresent &&
		r.IsDecodable &&
		r.IsFormatCorrect &&
		r.IsDimensionsCorrect &&
		r.IsNotBlank
}

// GetValidationSteps returns all validation steps with results.
func (r *Result) GetValidationSteps() []ValidationStep {
	return []ValidationStep{
		{
			Name:    "Output file",
			Passed:  r.IsPresent,
			Details: r.PresenceMessage,
		},
		{
			Name:    "Image decode",
			Passed:  r.IsDecodable,
			Details: r.DecodeMessage,
		},
		{
			Name:    "Image format",
			Passed:  r.IsFormatCorrect,
			Details: r.FormatMessage,
		},
		{
			Name:    "Dimensions",
			Passed:  r.IsDimensionsCorrect,
			Details: r.DimensionMessage,
		},
		{
			Name:    "Image content",
			Passed:  r.IsNotBlank,
			Details: r.BlankMessage,
		},
	}
}

// GetFailures returns descriptions of failed validation checks.
func (r *Result) GetFailures() []string {
	var failures []string
	for _, step := range r.GetValidationSteps() {
		if !step.Passed {
			failures = append(failures, step.Name+": "+step.Details)
		}
	}
	return failures
}

func formatDimensions(dims [2]int) string {
	return fmt.Sprintf("%dx%d", dims[0], dims[1])
}
