package logging

import "log/slog"

// SetupMCPMode installs a file-only default logger. Stdout is reserved for
// JSON-RPC, and clients often treat stderr noise as a failed start.
func SetupMCPMode(level string) (func(), error) {
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.WriteToStderr = false

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	slog.Info("MCP mode logging initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level))
	return cleanup, nil
}
