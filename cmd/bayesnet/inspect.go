package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
)

func newInspectCmd(a *app) *cobra.Command {
	var networkPath string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe a network and check its distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := config.LoadNetworkFile(networkPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asYAML {
				data, err := config.EncodeNetwork(net)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintf(out, "network %s, %d variables\n\n", net.Name(), net.Len())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VARIABLE\tOUTCOMES\tPARENTS\tCPT ROWS")
			for _, v := range net.Variables() {
				parents := strings.Join(v.Parents, ",")
				if parents == "" {
					parents = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", v.Name, strings.Join(v.Outcomes, ","), parents, net.TableSize(v.Name))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if err := net.CheckDistributions(1e-6); err != nil {
				fmt.Fprintf(out, "\nWARNING: %v\n", err)
				a.logger.Sugar().Warnw("distribution check failed", "network", net.Name(), "error", err)
				return nil
			}
			fmt.Fprintln(out, "\nall distributions sum to 1")
			return nil
		},
	}

	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network file, .xml or .yaml (required)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the network in the YAML format instead")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}
