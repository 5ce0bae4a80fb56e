package cmd

import (
	"fmt"
	"text/tabwriter"

	"bench-dashboard/internal/aggregate"
	"bench-dashboard/internal/plot/mappings"
	"bench-dashboard/internal/view"

	"github.com/spf13/cobra"
)

func newIdleCmd() *cobra.Command {
	var scope string

	idleCmd := &cobra.Command{
		Use:   "idle",
		Short: "Print the idle power of every framework",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := view.ParseScope(scope)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := buildStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			metric := s.PowerMetric()
			mapping, _ := mappings.GetMetricMapping(metric)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "NAME\tFRAMEWORK\t%s\n", mapping.Label)
			for _, row := range aggregate.Idle(store.Rows()) {
				v, _ := row.Value(metric)
				fmt.Fprintf(tw, "%s\t%s\t%.3f\n", row.Name, row.DisplayName, v)
			}
			return tw.Flush()
		},
	}

	idleCmd.Flags().StringVar(&scope, "scope", string(view.ScopeCPU), "Energy scope (cpu, dram)")
	return idleCmd
}
