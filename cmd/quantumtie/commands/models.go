package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Cache backend noise models for local Aer simulation",
	}
	cmd.AddCommand(modelsUpdateCmd(), modelsListCmd())
	return cmd
}

func modelsUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [backend[=file]...]",
		Short: "Fetch calibration data from the runtime (default devices if none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var devices map[string]string
			if len(args) > 0 {
				devices = make(map[string]string, len(args))
				for _, a := range args {
					name, file, _ := strings.Cut(a, "=")
					if name == "" {
						return fmt.Errorf("bad device %q (want backend or backend=file)", a)
					}
					devices[name] = file
				}
			}
			recs, err := wire.ModelCache.Update(cmd.Context(), devices)
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", r.Backend, wire.ModelCache.Path(r))
			}
			return err
		},
	}
}

func modelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show cached noise models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := wire.ModelCache.List()
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached models. Run `quantumtie models update`.")
				return nil
			}
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-22s %s\n", r.Backend, r.File, r.FetchedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}
