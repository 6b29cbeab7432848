package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spiffcs/faceless/config"
	"github.com/spiffcs/faceless/internal/log"
)

// New creates the root command with all subcommands registered.
func New(options ...Option) *cobra.Command {
	opts := NewOptions(options...)

	rootCmd := &cobra.Command{
		Use:   "faceless",
		Short: "Label issues opened by accounts without an avatar",
		Long: `A GitHub Action that checks whether the author of a new issue still
shows the identicon GitHub generated for them. If so, the issue is labeled
and, optionally, closed with a comment. Repository collaborators are never
touched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(opts.EnvFile); err != nil {
				return err
			}
			log.Initialize(log.LevelFromEnv(opts.Verbosity, opts.getenv), cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTriage(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", opts.EnvFile, "Load environment variables from a .env file")
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "YAML config file (action inputs take precedence)")

	rootCmd.Flags().StringVar(&opts.EventPath, "event", opts.EventPath, "Event payload file (default: $GITHUB_EVENT_PATH)")
	rootCmd.Flags().BoolVar(&opts.DryRun, "dry-run", opts.DryRun, "Log label/close actions without performing them")

	// Register subcommands
	rootCmd.AddCommand(NewCmdCheck(opts))
	rootCmd.AddCommand(NewCmdConfig(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
