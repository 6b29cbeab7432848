package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spiffcs/faceless/internal/avatar"
)

// NewCmdCheck creates the check command.
func NewCmdCheck(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <username>...",
		Short: "Check whether users still show their default avatar",
		Long: `Compare each user's avatar with the identicon GitHub generates for
their login and report which ones match. No repository is touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *Options, usernames []string) error {
	detector := avatar.NewDetector(
		avatar.NewHasher(avatar.WithUserAgent(userAgent())),
		avatar.WithURLTemplates(opts.AvatarURLTemplate, opts.IdenticonURLTemplate),
	)

	out := cmd.OutOrStdout()
	for _, username := range usernames {
		faceless, err := detector.IsDefaultAvatar(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", username, err)
		}

		verdict := color.GreenString("custom avatar")
		if faceless {
			verdict = color.RedString("default avatar")
		}
		_, _ = fmt.Fprintf(out, "%s: %s\n", username, verdict)
	}
	return nil
}
