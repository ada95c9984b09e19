package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wiqnnc/wiki/internal/content"
	wikierrors "github.com/wiqnnc/wiki/internal/errors"
	"github.com/wiqnnc/wiki/internal/output"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content collections against their schemas",
		Long: `Validate every JSON collection under the data directory and report all
failures at once. No index is built and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			if err := content.ValidateDir(cfg.Paths.Data); err != nil {
				return wikierrors.ValidationError("content collections are invalid", err).
					WithDetail("data_dir", cfg.Paths.Data)
			}
			out.Successf("%s valid in %s", output.Count(len(content.Collections), "collection"), cfg.Paths.Data)
			return nil
		},
	}
}
