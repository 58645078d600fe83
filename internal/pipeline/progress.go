package pipeline

import (
	"io"

	"github.com/starchartio/starchart/internal/style"
)

// Stage identifies a pipeline phase for progress reporting.
type Stage string

const (
	StageLoad       Stage = "load"
	StageParse      Stage = "parse"
	StageCategorize Stage = "categorize"
	StageAnalyze    Stage = "analyze"
	StageRender     Stage = "render"
)

// Label returns the progress line shown while the stage runs.
func (s Stage) Label() string {
	switch s {
	case StageLoad:
		return "Reading ratings"
	case StageParse:
		return "Parsing ratings"
	case StageCategorize:
		return "Categorizing ratings"
	case StageAnalyze:
		return "Analyzing distribution"
	case StageRender:
		return "Rendering chart"
	}
	return string(s)
}

// Observer receives stage transitions as a run progresses.
type Observer interface {
	StageStarted(stage Stage)
	StageFinished(stage Stage)
}

type noopObserver struct{}

func (noopObserver) StageStarted(Stage)  {}
func (noopObserver) StageFinished(Stage) {}

// SpinnerObserver drives a terminal spinner from stage transitions.
type SpinnerObserver struct {
	spinner style.Spinner
}

// NewSpinnerObserver returns an observer animating a spinner on w.
func NewSpinnerObserver(w io.Writer) *SpinnerObserver {
	return &SpinnerObserver{spinner: style.NewSpinner(w)}
}

// StageStarted updates the spinner message for the new stage.
func (o *SpinnerObserver) StageStarted(stage Stage) {
	o.spinner.SetSuffix(" " + stage.Label())
	o.spinner.Start()
}

// StageFinished implements Observer.
func (o *SpinnerObserver) StageFinished(Stage) {}

// Stop halts the spinner. Safe to call after a failed run.
func (o *SpinnerObserver) Stop() {
	o.spinner.Stop()
}
