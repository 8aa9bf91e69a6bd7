package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/sqlite"
)

func newRunsCmd(a *app) *cobra.Command {
	var storePath, runID string
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded batch runs, or the results of one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if storePath == "" {
				storePath = a.settings.Store
			}
			if storePath == "" {
				return fmt.Errorf("--store required")
			}

			ctx := cmd.Context()
			st, err := sqlite.OpenSQLite(ctx, storePath)
			if err != nil {
				return err
			}
			defer st.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if runID != "" {
				results, err := st.Results(ctx, runID)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "#\tQUERY\tALGORITHM\tRESULT")
				for _, r := range results {
					outcome := r.Error
					if outcome == "" {
						outcome = inference.Result{
							Probability:     r.Probability,
							Additions:       r.Additions,
							Multiplications: r.Multiplications,
						}.String()
					}
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", r.Seq, r.Query, r.Algorithm, outcome)
				}
				return nil
			}

			runs, err := st.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "ID\tNETWORK\tSOURCE\tSTARTED\tQUERIES\tANSWERED\tFAILED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
					r.ID, r.Network, r.Source, r.StartedAt.Local().Format(time.DateTime), r.Queries, r.Answered, r.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "SQLite database (default from settings)")
	cmd.Flags().StringVar(&runID, "id", "", "show the results of this run")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs listed")
	return cmd
}
