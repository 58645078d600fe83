// Package pipeline wires the loader, parser, categorizer and reporter into
// a single sequential run over one dataset.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/starchartio/starchart/internal/analysis"
	"github.com/starchartio/starchart/internal/category"
	"github.com/starchartio/starchart/internal/chart"
	"github.com/starchartio/starchart/internal/config"
	"github.com/starchartio/starchart/internal/rating"
)

// Plan is a loaded, validated run ready to execute.
type Plan struct {
	Config *config.Config
	Table  *category.Table
}

// Load resolves the configuration and the category table and checks that the
// data file exists. A successful Load is everything a dry run needs.
func Load(ctx context.Context, configPath string) (*Plan, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := category.Load(cfg.LabelsPath, *cfg.Scale)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.DataPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &rating.NotFoundError{Path: cfg.DataPath, Err: err}
		}
		return nil, fmt.Errorf("checking data file %s: %w", cfg.DataPath, err)
	}

	return &Plan{Config: cfg, Table: table}, nil
}

// Runner executes loaded plans.
type Runner struct {
	observer Observer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithObserver attaches a progress observer to the run.
func WithObserver(observer Observer) RunnerOption {
	return func(r *Runner) {
		r.observer = observer
	}
}

// NewRunner creates a runner with the given options.
func NewRunner(options ...RunnerOption) *Runner {
	r := &Runner{observer: noopObserver{}}

	for _, option := range options {
		option(r)
	}

	return r
}

// Execute loads the configuration at configPath and runs it in one call.
func (r *Runner) Execute(ctx RunContext, configPath string) (*Result, error) {
	plan, err := Load(ctx.Context, configPath)
	if err != nil {
		return nil, err
	}

	return r.Run(ctx, plan)
}

// Run executes the plan in strict sequence: read rows, parse, categorize,
// analyze, render the chart. The context is checked between stages and
// inside the row loops so an interrupted run stops promptly.
func (r *Runner) Run(ctx RunContext, plan *Plan) (*Result, error) {
	cfg := plan.Config
	result := &Result{
		ConfigFile: cfg.SourceFile,
		Status:     "running",
		StartTime:  time.Now(),
		Policy:     cfg.OnParseError,
	}

	r.observer.StageStarted(StageLoad)
	rows, err := rating.ReadFile(cfg.DataPath)
	r.observer.StageFinished(StageLoad)
	if err != nil {
		return nil, err
	}
	result.RowsTotal = len(rows)

	if err := ctx.Context.Err(); err != nil {
		return nil, err
	}

	r.observer.StageStarted(StageParse)
	values, skipped, err := r.parse(ctx, cfg, rows)
	r.observer.StageFinished(StageParse)
	if err != nil {
		return nil, err
	}
	result.RowsParsed = len(values)
	result.RowsSkipped = len(skipped)
	result.Skipped = skipped

	r.observer.StageStarted(StageCategorize)
	ratings, err := r.categorize(ctx, plan.Table, values)
	r.observer.StageFinished(StageCategorize)
	if err != nil {
		return nil, err
	}

	r.observer.StageStarted(StageAnalyze)
	result.Report = analysis.Analyze(ratings, plan.Table.Names())
	r.observer.StageFinished(StageAnalyze)

	if result.Report.Total == 0 {
		result.ChartSkipped = true
		log.Warn().Str("data_file", cfg.DataPath).Msg("No valid ratings; chart not written")
	} else {
		r.observer.StageStarted(StageRender)
		err := chart.Render(result.Report, chart.Options{
			Path:  cfg.OutputPath,
			Title: cfg.Chart.Title,
			Scale: *cfg.Scale,
		})
		r.observer.StageFinished(StageRender)
		if err != nil {
			return nil, err
		}
		result.ChartFile = cfg.OutputPath
	}

	result.Status = "completed"
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	log.Info().
		Int("rows", result.RowsTotal).
		Int("skipped", result.RowsSkipped).
		Dur("duration", result.Duration).
		Msg("Analysis completed")

	return result, nil
}

// parse converts rows to numeric values under the configured policy: abort
// fails on the first malformed row, skip collects it and moves on.
func (r *Runner) parse(ctx RunContext, cfg *config.Config, rows []rating.Raw) ([]int, []SkippedRow, error) {
	parser := rating.NewParser(*cfg.Scale)

	var (
		values  []int
		skipped []SkippedRow
	)
	for _, row := range rows {
		if err := ctx.Context.Err(); err != nil {
			return nil, nil, err
		}

		value, err := parser.Parse(row)
		if err != nil {
			if cfg.OnParseError == config.PolicySkip {
				log.Warn().
					Int("line", row.Line).
					Str("input", row.Text).
					Err(err).
					Msg("Skipping malformed rating")
				skipped = append(skipped, skippedRow(row, err))
				continue
			}
			return nil, nil, err
		}
		values = append(values, value)
	}

	return values, skipped, nil
}

func skippedRow(row rating.Raw, err error) SkippedRow {
	reason := err.Error()
	var parseErr *rating.ParseError
	if errors.As(err, &parseErr) {
		reason = parseErr.Err.Error()
	}

	return SkippedRow{Line: row.Line, Input: row.Text, Reason: reason}
}

// categorize buckets every value through the table. Unmatched values are
// always fatal; the skip policy covers parse failures only.
func (r *Runner) categorize(ctx RunContext, table *category.Table, values []int) ([]analysis.CategorizedRating, error) {
	ratings := make([]analysis.CategorizedRating, 0, len(values))
	for _, v := range values {
		if err := ctx.Context.Err(); err != nil {
			return nil, err
		}

		name, err := table.Categorize(float64(v))
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, analysis.CategorizedRating{Value: v, Category: name})
	}

	return ratings, nil
}
