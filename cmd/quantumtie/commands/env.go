package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"quantumtie/internal/envinfo"
)

func envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the detected hardware and terminal environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := envinfo.Detect()
			envinfo.Print(cmd.OutOrStdout(), info)
			if warn := envinfo.RootWarning(info); warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			return nil
		},
	}
}
