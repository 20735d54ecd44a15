package dataprocessing

// Pipeline stage names passed to a StageObserver, in execution order.
const (
	StageValidate      = "validate"
	StageSort          = "sort"
	StageOccurrence    = "occurrence"
	StageTitleSubtitle = "missing_title_subtitle"
	StageReference     = "missing_reference"
	StageProbe         = "probe"
	StageSummaries     = "summaries"
)

// StageObserver is called when a pipeline stage starts. The returned
// function, if not nil, is called when the stage ends.
type StageObserver func(stage string) func()
