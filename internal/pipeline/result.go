package pipeline

import (
	"time"

	"github.com/starchartio/starchart/internal/analysis"
	"github.com/starchartio/starchart/internal/config"
)

// SkippedRow records one malformed row dropped under the skip policy.
type SkippedRow struct {
	Line   int    `json:"line" yaml:"line"`
	Input  string `json:"input" yaml:"input"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result is the complete outcome of a run: row accounting, the distribution
// report and the chart artifact.
type Result struct {
	ConfigFile   string           `json:"config_file" yaml:"config_file"`
	Status       string           `json:"status" yaml:"status"`
	StartTime    time.Time        `json:"start_time" yaml:"start_time"`
	EndTime      time.Time        `json:"end_time" yaml:"end_time"`
	Duration     time.Duration    `json:"duration" yaml:"duration"`
	Policy       config.Policy    `json:"on_parse_error" yaml:"on_parse_error"`
	RowsTotal    int              `json:"rows_total" yaml:"rows_total"`
	RowsParsed   int              `json:"rows_parsed" yaml:"rows_parsed"`
	RowsSkipped  int              `json:"rows_skipped" yaml:"rows_skipped"`
	Skipped      []SkippedRow     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Report       *analysis.Report `json:"report" yaml:"report"`
	ChartFile    string           `json:"chart_file,omitempty" yaml:"chart_file,omitempty"`
	ChartSkipped bool             `json:"chart_skipped,omitempty" yaml:"chart_skipped,omitempty"`
}
