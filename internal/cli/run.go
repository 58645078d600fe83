package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/starchartio/starchart/internal/category"
	"github.com/starchartio/starchart/internal/config"
	"github.com/starchartio/starchart/internal/pipeline"
	"github.com/starchartio/starchart/internal/rating"
	"github.com/starchartio/starchart/internal/report"
	"github.com/starchartio/starchart/internal/style"
	"github.com/starchartio/starchart/internal/yamldoc"
)

// runAnalysis loads and executes the analysis at configPath and renders the
// result in the configured output format. Returned errors have already been
// printed; the caller only decides the exit code.
func runAnalysis(ctx pipeline.RunContext, configPath string) error {
	plan, err := pipeline.Load(ctx.Context, configPath)
	if err != nil {
		printRunError(ctx.StdErr, err)
		return err
	}

	if onParseError != "" {
		policy, err := config.ParsePolicy(onParseError)
		if err != nil {
			printRunError(ctx.StdErr, err)
			return err
		}
		plan.Config.OnParseError = policy
	}

	if dryRun {
		if !viper.GetBool("quiet") {
			style.Success(ctx.StdOut, fmt.Sprintf("%s is valid (dry-run mode)", filepath.Base(configPath)))
		}
		return nil
	}

	interactive := !viper.GetBool("quiet") && viper.GetString("output") == "text"
	if interactive {
		ctx.Printf("\nAnalyzing %s (%d categories)\n\n",
			style.InfoStyle.Render(filepath.Base(plan.Config.DataPath)),
			len(plan.Table.Categories))
	}

	var options []pipeline.RunnerOption
	var observer *pipeline.SpinnerObserver
	if interactive {
		observer = pipeline.NewSpinnerObserver(ctx.StdErr)
		options = append(options, pipeline.WithObserver(observer))
	}

	result, err := pipeline.NewRunner(options...).Run(ctx, plan)
	if observer != nil {
		observer.Stop()
	}
	if err != nil {
		printRunError(ctx.StdErr, err)
		return err
	}

	outputResult(ctx, result)
	return nil
}

func outputResult(ctx pipeline.RunContext, result *pipeline.Result) {
	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(ctx.StdOut, result)
	case "yaml":
		style.PrintYAML(ctx.StdOut, result)
	default:
		printTextResult(ctx, result)
	}
}

func printTextResult(ctx pipeline.RunContext, result *pipeline.Result) {
	if viper.GetBool("quiet") {
		return
	}

	report.Write(ctx.StdOut, result.Report)

	ctx.Printf("\n%s Analyzed %d ratings %s\n", style.SuccessIcon(), result.Report.Total,
		style.MutedStyle.Render("("+formatDuration(result.Duration)+")"))

	if result.RowsSkipped > 0 {
		ctx.Printf("%s Skipped %d malformed row(s)\n", style.WarningIcon(), result.RowsSkipped)
		if viper.GetBool("verbose") {
			for _, row := range result.Skipped {
				ctx.Printf("  %s\n", style.MutedStyle.Render(
					fmt.Sprintf("line %d: %q (%s)", row.Line, row.Input, row.Reason)))
			}
		}
	}

	if result.ChartSkipped {
		ctx.Printf("%s No valid ratings; chart not written\n", style.WarningIcon())
	} else {
		ctx.Printf("%s Chart written to %s\n", style.SuccessIcon(), style.AccentStyle.Render(result.ChartFile))
	}
}

// printRunError renders a failed run on stderr. Configuration problems print
// each collected error with its position, context and suggestion; other
// failures print as a single message.
func printRunError(w io.Writer, err error) {
	var multi *yamldoc.MultiError
	if errors.As(err, &multi) {
		header := fmt.Sprintf("Found %d problem(s)", len(multi.Errors))
		if file := errorFile(err); file != "" {
			header = fmt.Sprintf("Found %d problem(s) in %s", len(multi.Errors), style.FormatFilePath(file))
		}
		style.Error(w, header)
		for _, problem := range multi.Errors {
			first, rest, _ := strings.Cut(problem.Error(), "\n")
			fmt.Fprintf(w, "\n  %s %s\n", style.GetSeverityIcon("error"), first)
			if rest != "" {
				fmt.Fprintf(w, "%s\n", indentLines(rest, "  "))
			}
		}
		return
	}

	var docErr *yamldoc.Error
	if errors.As(err, &docErr) {
		style.Error(w, docErr.Error())
		return
	}

	var notFound *rating.NotFoundError
	if errors.As(err, &notFound) {
		style.Error(w, notFound.Error())
		fmt.Fprintln(w, style.MutedStyle.Render("Check data_path in the analysis configuration."))
		return
	}

	var parseErr *rating.ParseError
	if errors.As(err, &parseErr) {
		style.Error(w, parseErr.Error())
		fmt.Fprintln(w, style.MutedStyle.Render("Re-run with --on-parse-error skip to drop malformed rows."))
		return
	}

	style.Error(w, err.Error())
}

// errorFile extracts the file a configuration error refers to, if any.
func errorFile(err error) string {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return cfgErr.File
	}

	var tableErr *category.TableError
	if errors.As(err, &tableErr) {
		return tableErr.File
	}

	return ""
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func formatDuration(duration time.Duration) string {
	return fmt.Sprintf("%.2fs", duration.Seconds())
}
