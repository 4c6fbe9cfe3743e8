package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the configuration environment variables",
		Long: `Lists the environment variables read by export and serve.

Values can also be set in a YAML file passed with --config, for example:

  api:
    access_key: ...
    secret_key: ...
  collection: opensource
  ignoreErrors: true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := archive.Describe()
			if err != nil {
				return fmt.Errorf("failed to describe configuration: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)
			return nil
		},
	}
}

// loadConfig reads the configuration, applies flag overrides and checks
// the credentials.
func loadConfig(cmd *cobra.Command, path string) (archive.Config, error) {
	cfg, err := archive.LoadConfig(path)
	if err != nil {
		return archive.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("collection") {
		cfg.Collection, _ = flags.GetString("collection")
	}
	if flags.Changed("ignore-errors") {
		cfg.IgnoreErrors, _ = flags.GetBool("ignore-errors")
	}

	if err := cfg.Validate(); err != nil {
		return archive.Config{}, fmt.Errorf("%w: set ARCHIVE_ACCESS_KEY and ARCHIVE_SECRET_KEY or pass --config", err)
	}
	return cfg, nil
}
