package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/configs"
	"github.com/wiqnnc/wiki/internal/config"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .wiki.yaml configuration template",
		Long: `Write .wiki.yaml with every setting at its default value.

An existing file is kept unless --force is given; with --force the old
file is first copied to a timestamped backup (the newest three are kept).`,
		Example: `  # Create .wiki.yaml in the current directory
  wiki init

  # Regenerate, keeping a backup of the old file
  wiki init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .wiki.yaml (a backup is kept)")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	path := filepath.Join(projectDir, config.ProjectFileName)

	if existing := config.ProjectConfigPath(projectDir); existing != "" {
		if !force {
			return wikierrors.New(wikierrors.ErrCodeConfigInvalid,
				fmt.Sprintf("%s already exists", existing), nil).
				WithSuggestion("Use 'wiki init --force' to overwrite it")
		}
		backup, err := config.BackupFile(existing)
		if err != nil {
			return wikierrors.ConfigError("failed to back up existing config", err)
		}
		if backup != "" {
			out.Statusf("💾", "Backed up %s to %s", filepath.Base(existing), filepath.Base(backup))
		}
		path = existing
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return wikierrors.ConfigError("failed to write config", err)
	}

	out.Successf("Created %s", path)
	out.Status("", "Next steps:")
	out.Code("wiki validate\nwiki build\nwiki search")
	return nil
}
