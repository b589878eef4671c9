package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Initialization(summary VideoSummary)
	StageProgress(update StageProgress)
	SceneResult(summary SceneSummary)
	RenderConfig(summary RenderConfigSummary)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	ValidationComplete(summary ValidationSummary)
	PosterComplete(summary PosterOutcome)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Initialization(VideoSummary)          {}
func (NullReporter) StageProgress(StageProgress)          {}
func (NullReporter) SceneResult(SceneSummary)             {}
func (NullReporter) RenderConfig(RenderConfigSummary)     {}
func (NullReporter) BatchStarted(BatchStartInfo)          {}
func (NullReporter) FileProgress(FileProgressContext)     {}
func (NullReporter) ValidationComplete(ValidationSummary) {}
func (NullReporter) PosterComplete(PosterOutcome)         {}
func (NullReporter) Warning(string)                       {}
func (NullReporter) Error(ReporterError)                  {}
func (NullReporter) OperationComplete(string)             {}
func (NullReporter) BatchComplete(BatchSummary)           {}
func (NullReporter) Verbose(string)                       {}
