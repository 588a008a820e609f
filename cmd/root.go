package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/compozy/rcbot/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rc-bot",
	Short: "Reminds the team about branches that are not merged",
	Long: `rc-bot compares a head branch with a base branch in every repository of a
GitHub organization and posts the repositories with pending commits to a Slack channel.`,
	Version:       version.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var globalFlags struct {
	configFile string
	verbose    bool
	logJSON    bool
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.configFile, "config", "", "Path to a config file (default .rc-bot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.logJSON, "log-json", false, "Log as JSON")
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
