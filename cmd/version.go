package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/compozy/rcbot/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rc-bot %s\n", orDefault(version.Version, "dev"))
			fmt.Fprintf(out, "commit:\t%s\n", orDefault(version.CommitHash, "unknown"))
			fmt.Fprintf(out, "built:\t%s\n", orDefault(version.BuildDate, "unknown"))
			fmt.Fprintf(out, "go:\t%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
