// Package starchart provides a public API for running rating analyses
// programmatically. It allows third-party applications to embed starchart's
// pipeline without shelling out to the command line tool.
//
// The main functionality includes:
//   - Running an analysis from a configuration file
//   - Configuring run behavior through functional options
//   - Monitoring pipeline progress through stage observers
//
// Example usage:
//
//	// Run an analysis and inspect the distribution
//	result, err := starchart.Run("analysis.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, category := range result.Report.Categories {
//		fmt.Printf("%s: %.1f%%\n", category.Name, category.Proportion*100)
//	}
package starchart

import (
	"context"
	"io"

	"github.com/starchartio/starchart/internal/pipeline"
)

// Option represents a functional option for configuring an analysis run.
// Options follow the functional options pattern, allowing callers to extend
// run behavior without breaking the Run signature.
type Option = pipeline.RunnerOption

// Observer receives stage transitions as an analysis progresses. Implement
// it to surface pipeline progress in your own UI or logs.
//
// Example:
//
//	type logObserver struct{}
//
//	func (logObserver) StageStarted(stage starchart.Stage)  { log.Printf("start %s", stage) }
//	func (logObserver) StageFinished(stage starchart.Stage) { log.Printf("done %s", stage) }
type Observer = pipeline.Observer

// Stage identifies a pipeline phase reported to observers.
type Stage = pipeline.Stage

// Result describes a completed analysis: row counts, skipped rows, the
// category report and the chart location.
type Result = pipeline.Result

// WithObserver creates an Option that registers an observer for monitoring
// pipeline stages in real time. The observer is notified when each stage
// starts and finishes, in pipeline order: load, parse, categorize, analyze,
// render.
//
// Parameters:
//   - observer: An implementation of Observer that will receive stage transitions
//
// Returns:
//   - Option: A functional option that can be passed to Run
func WithObserver(observer Observer) Option {
	return pipeline.WithObserver(observer)
}

// Run executes an analysis from the configuration file at configFile and
// returns the run result.
//
// This is the primary entry point for running analyses programmatically. The
// function loads and validates the configuration, the category table and the
// ratings file, then parses, categorizes and analyzes the ratings and renders
// the distribution chart to the configured output path.
//
// Parameters:
//   - configFile: Path to the analysis configuration YAML file
//   - options: Variadic functional options for configuring run behavior
//
// Returns:
//   - *Result: Row counts, skipped rows, the category report and the chart
//     location
//   - error: Any error that occurred while loading inputs or running the
//     pipeline
//
// Errors can occur due to:
//   - A missing or invalid configuration file
//   - A missing or inconsistent category table
//   - A missing ratings file
//   - Malformed rating rows when the configuration aborts on parse errors
//   - Chart rendering failures
//
// Example:
//
//	result, err := starchart.Run("analysis.yaml", starchart.WithObserver(myObserver))
//	if err != nil {
//		return fmt.Errorf("analysis failed: %w", err)
//	}
//
//	fmt.Printf("analyzed %d ratings, chart at %s\n", result.Report.Total, result.ChartFile)
func Run(configFile string, options ...Option) (*Result, error) {
	runner := pipeline.NewRunner(options...)

	return runner.Execute(pipeline.RunContext{
		Context: context.Background(),
		StdOut:  io.Discard,
		StdErr:  io.Discard,
	}, configFile)
}
