// Package cmd provides the CLI commands for the wiki search tooling.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/config"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/logging"
	"github.com/wiqnnc/wiki/internal/profiling"
	"github.com/wiqnnc/wiki/pkg/version"
)

// Persistent flags.
var (
	debugMode      bool
	projectDir     string
	profileOpts    profiling.Options
	profiler       *profiling.Session
	loggingCleanup func()
)

// NewRootCmd creates the root command for the wiki CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wiki",
		Short: "Offline site search for a personal wiki",
		Long: `wiki builds a static full-text search index from the wiki's JSON
content collections and queries it from the terminal or over MCP.

Run 'wiki' (or 'wiki build') in the site directory to write
public/search-index.json and public/search-manifest.json.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	cmd.SetVersionTemplate("wiki version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.wiki/logs/")
	cmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Site directory containing .wiki.yaml")

	cmd.PersistentFlags().StringVar(&profileOpts.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileOpts.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfilingAndLogging starts any requested profiles and installs the
// default logger: JSON to the log file and stderr with --debug, warnings on
// stderr otherwise.
func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if profileOpts.Enabled() {
		s, err := profiling.Start(profileOpts)
		if err != nil {
			return err
		}
		profiler = s
	}

	if !debugMode {
		slog.SetDefault(logging.NewStderr("warn"))
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	var profErr error
	if profiler != nil {
		slog.Debug("profiling stopped", slog.String("mem", profiling.MemSummary()))
		profErr = profiler.Stop()
		profiler = nil
	}

	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return profErr
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, wikierrors.FormatForCLI(err))
	}
	return err
}

// loadConfig loads the configuration for the --dir site directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, wikierrors.ConfigError("failed to load configuration", err).
			WithSuggestion("Fix .wiki.yaml or run 'wiki init --force' to regenerate it")
	}
	return cfg, nil
}
