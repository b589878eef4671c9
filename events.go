package episodeposter

import (
	"time"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/reporter"
)

// EventType identifies the kind of event delivered to an EventHandler.
type EventType string

const (
	EventTypeSceneSelected      EventType = "scene_selected"
	EventTypeValidationComplete EventType = "validation_complete"
	EventTypePosterComplete     EventType = "poster_complete"
	EventTypeWarning            EventType = "warning"
	EventTypeError              EventType = "error"
	EventTypeBatchComplete      EventType = "batch_complete"
)

// Event is implemented by all event payloads.
type Event interface {
	Type() EventType
}

// EventHandler receives events during generation. Returning an error
// does not stop the batch; it is ignored.
type EventHandler func(Event) error

// BaseEvent carries the fields common to every event.
type BaseEvent struct {
	EventType EventType
	Time      int64
}

// Type returns the event's type tag.
func (e BaseEvent) Type() EventType { return e.EventType }

// NewTimestamp returns the current time as a Unix timestamp.
func NewTimestamp() int64 { return time.Now().Unix() }

// SceneSelectedEvent reports the timestamp chosen for frame extraction.
type SceneSelectedEvent struct {
	BaseEvent
	Timestamp     string
	BlackDetected bool
}

// ValidationStep mirrors one poster validation check.
type ValidationStep struct {
	Step    string
	Passed  bool
	Details string
}

// ValidationCompleteEvent reports the poster validation outcome.
type ValidationCompleteEvent struct {
	BaseEvent
	ValidationPassed bool
	ValidationSteps  []ValidationStep
}

// PosterCompleteEvent reports a finished poster.
type PosterCompleteEvent struct {
	BaseEvent
	InputFile  string
	OutputPath string
	SizeBytes  uint64
	Dimensions string
}

// WarningEvent reports a non-fatal condition.
type WarningEvent struct {
	BaseEvent
	Message string
}

// ErrorEvent reports an episode failure.
type ErrorEvent struct {
	BaseEvent
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchCompleteEvent reports the batch outcome.
type BatchCompleteEvent struct {
	BaseEvent
	SuccessfulCount       int
	FailedCount           int
	TotalEpisodes         int
	ValidationPassedCount int
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Initialization(reporter.VideoSummary)      {}
func (r *eventReporter) StageProgress(reporter.StageProgress)      {}
func (r *eventReporter) RenderConfig(reporter.RenderConfigSummary) {}
func (r *eventReporter) BatchStarted(reporter.BatchStartInfo)      {}
func (r *eventReporter) FileProgress(reporter.FileProgressContext) {}
func (r *eventReporter) OperationComplete(string)                  {}
func (r *eventReporter) Verbose(string)                            {}

func (r *eventReporter) SceneResult(s reporter.SceneSummary) {
	_ = r.handler(SceneSelectedEvent{
		BaseEvent:     BaseEvent{EventType: EventTypeSceneSelected, Time: NewTimestamp()},
		Timestamp:     s.Timestamp,
		BlackDetected: s.BlackDetected,
	})
}

func (r *eventReporter) ValidationComplete(s reporter.ValidationSummary) {
	steps := make([]ValidationStep, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = ValidationStep{
			Step:    step.Name,
			Passed:  step.Passed,
			Details: step.Details,
		}
	}
	_ = r.handler(ValidationCompleteEvent{
		BaseEvent:        BaseEvent{EventType: EventTypeValidationComplete, Time: NewTimestamp()},
		ValidationPassed: s.Passed,
		ValidationSteps:  steps,
	})
}

func (r *eventReporter) PosterComplete(s reporter.PosterOutcome) {
	_ = r.handler(PosterCompleteEvent{
		BaseEvent:  BaseEvent{EventType: EventTypePosterComplete, Time: NewTimestamp()},
		InputFile:  s.InputFile,
		OutputPath: s.OutputPath,
		SizeBytes:  s.SizeBytes,
		Dimensions: s.Dimensions,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) BatchComplete(s reporter.BatchSummary) {
	_ = r.handler(BatchCompleteEvent{
		BaseEvent:             BaseEvent{EventType: EventTypeBatchComplete, Time: NewTimestamp()},
		SuccessfulCount:       s.SuccessfulCount,
		FailedCount:           s.FailedCount,
		TotalEpisodes:         s.TotalEpisodes,
		ValidationPassedCount: s.ValidationPassedCount,
	})
}
