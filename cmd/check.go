package cmd

import (
	"github.com/compozy/rcbot/internal/config"
	"github.com/compozy/rcbot/internal/orchestrator"
	"github.com/spf13/cobra"
)

// checkFlags are command line overrides for a single run.
type checkFlags struct {
	dryRun           bool
	noSuccessMessage bool
	organization     string
	baseBranch       string
	headBranch       string
	concurrency      int
	concurrencySet   bool
}

// apply writes the flags that were given over cfg.
func (f checkFlags) apply(cfg *config.Config) {
	if f.dryRun {
		cfg.Production = false
	}
	if f.noSuccessMessage {
		cfg.SendNotificationEvenAllSuccess = false
	}
	if f.organization != "" {
		cfg.Organization = f.organization
	}
	if f.baseBranch != "" {
		cfg.BaseBranch = f.baseBranch
	}
	if f.headBranch != "" {
		cfg.HeadBranch = f.headBranch
	}
	if f.concurrencySet {
		cfg.Concurrency = f.concurrency
	}
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every repository for commits not merged into the base branch",
		Long: `Compare the head branch with the base branch in every repository of the
organization and post the repositories with pending commits to the Slack channel.

Outside production (or with --dry-run) the message is printed instead of posted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.concurrencySet = cmd.Flags().Changed("concurrency")
			c, err := newContainer(containerOptions{
				configFile: globalFlags.configFile,
				verbose:    globalFlags.verbose,
				logJSON:    globalFlags.logJSON,
				override:   flags.apply,
				out:        cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()

			orch, err := orchestrator.NewReminderOrchestrator(
				orchestrator.ReminderConfig{
					Organization:                   c.cfg.Organization,
					BaseBranch:                     c.cfg.BaseBranch,
					HeadBranch:                     c.cfg.HeadBranch,
					SendNotificationEvenAllSuccess: c.cfg.SendNotificationEvenAllSuccess,
				},
				c.githubRepo,
				c.slackSvc,
				orchestrator.WithLogger(c.logger),
				orchestrator.WithConcurrency(c.cfg.Concurrency),
			)
			if err != nil {
				return err
			}
			return orch.Execute(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the message instead of posting it")
	cmd.Flags().BoolVar(&flags.noSuccessMessage, "no-success-message", false, "Stay silent when every repository is up to date")
	cmd.Flags().StringVarP(&flags.organization, "org", "o", "", "GitHub organization (overrides config)")
	cmd.Flags().StringVar(&flags.baseBranch, "base", "", "Branch the changes should be merged into (overrides config)")
	cmd.Flags().StringVar(&flags.headBranch, "head", "", "Branch holding the pending changes (overrides config)")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Maximum comparisons in flight, 0 for no limit")
	return cmd
}
