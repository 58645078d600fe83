// Package cli implements the starchart command line interface.
package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/starchartio/starchart/internal/pipeline"
	"github.com/starchartio/starchart/internal/style"
)

// Build-time variables (set by goreleaser or build scripts)
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

var (
	// Global flags
	logLevel     string
	outputFormat string
	quiet        bool
	verbose      bool

	// Run flags
	dryRun       bool
	onParseError string
	printSchema  bool
)

// rootCmd is the single starchart entry point. There are no subcommands; the
// one positional argument is the analysis configuration file.
var rootCmd = &cobra.Command{
	Use:   "starchart [flags] <analysis.yaml>",
	Short: "Starchart - chart the shape of your star ratings",
	Long: `Starchart reads textual ratings ("4 stars") from a flat file, parses them
into numeric values, buckets them through a configured category table and
reports the distribution as a terminal summary and a bar chart image.

Examples:
  starchart analysis.yaml                        # run the analysis
  starchart analysis.yaml --output json          # machine readable result
  starchart analysis.yaml --dry-run              # validate configuration only
  starchart analysis.yaml --on-parse-error skip  # drop malformed rows
  starchart --schema                             # print the configuration schema`,
	Version: getVersion(),
	Args: func(cmd *cobra.Command, args []string) error {
		if printSchema {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema {
			if err := writeSchema(cmd.OutOrStdout()); err != nil {
				style.Error(cmd.ErrOrStderr(), fmt.Sprintf("Failed to generate schema: %v", err))
				os.Exit(1)
			}
			return
		}

		// Setup signal handling for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-sigChan
			log.Info().Msg("Received interrupt signal, shutting down gracefully...")
			cancel()
		}()

		runCtx := pipeline.RunContext{
			Context: ctx,
			StdOut:  cmd.OutOrStdout(),
			StdErr:  cmd.ErrOrStderr(),
		}

		if err := runAnalysis(runCtx, args[0]); err != nil {
			os.Exit(1)
		}
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error) (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Run flags
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "load and validate the configuration without running the analysis")
	rootCmd.Flags().StringVar(&onParseError, "on-parse-error", "", "override the configured malformed-row policy (abort, skip)")
	rootCmd.Flags().BoolVar(&printSchema, "schema", false, "print the JSON schema of the analysis configuration and exit")
}

// initConfig wires environment configuration: a .env file when present, then
// STARCHART_* variables for any bound setting.
func initConfig() {
	_ = godotenv.Load()

	viper.SetEnvPrefix("STARCHART")
	viper.AutomaticEnv() // read in environment variables that match
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := viper.GetString("log-level")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	// Configure console output for better readability
	if !viper.GetBool("quiet") && outputFormat == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s by %s, go: %s)", Version, Commit, Date, BuiltBy, GoVersion)
}
