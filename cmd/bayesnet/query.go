package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/bayesnet/pkg/bayesnet"
	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/query"
)

func newQueryCmd(a *app) *cobra.Command {
	var networkPath string
	var algorithm int

	cmd := &cobra.Command{
		Use:   "query [P(Q=v|E=v,...)]...",
		Short: "Answer queries given on the command line or read from stdin",
		Long: `Answers each query argument against --network. A query may carry its own
algorithm number after a comma, as in batch files; otherwise --algorithm is
used. With no arguments, queries are read from stdin one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("algorithm") {
				algorithm = a.settings.DefaultAlgorithm
			}
			algo := inference.Algorithm(algorithm)
			if !algo.Valid() {
				return fmt.Errorf("--algorithm must be 1, 2 or 3, got %d", algorithm)
			}

			net, err := config.LoadNetworkFile(networkPath)
			if err != nil {
				return err
			}
			b, err := bayesnet.New(bayesnet.Options{Network: net, Logger: a.logger})
			if err != nil {
				return err
			}
			defer b.Close()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, arg := range args {
					if err := answer(out, b, arg, algo); err != nil {
						return err
					}
				}
				return nil
			}
			return interactive(cmd.InOrStdin(), out, b, algo)
		},
	}

	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network file, .xml or .yaml (required)")
	cmd.Flags().IntVarP(&algorithm, "algorithm", "a", 3, "1 enumeration, 2 elimination, 3 heuristic elimination")
	_ = cmd.MarkFlagRequired("network")
	return cmd
}

// answer prints the result of one query line
func answer(w io.Writer, b *bayesnet.Bayes, text string, algo inference.Algorithm) error {
	req, err := parseRequest(text, algo)
	if err != nil {
		return err
	}
	res, err := b.Answer(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res)
	return nil
}

// parseRequest accepts "P(...)" or "P(...),n"
func parseRequest(text string, algo inference.Algorithm) (bayesnet.Request, error) {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ")") {
		q, err := query.Parse(text)
		if err != nil {
			return bayesnet.Request{}, err
		}
		return bayesnet.Request{Query: q, Algorithm: algo}, nil
	}
	line, err := query.ParseLine(text)
	if err != nil {
		return bayesnet.Request{}, err
	}
	return bayesnet.Request{Query: line.Query, Algorithm: line.Algorithm}, nil
}

// interactive answers stdin lines until EOF. Errors are printed, not fatal.
func interactive(r io.Reader, w io.Writer, b *bayesnet.Bayes, algo inference.Algorithm) error {
	fmt.Fprintf(w, "Network %s: %s\n", b.Network().Name(), strings.Join(b.Network().Names(), ", "))
	fmt.Fprintln(w, "Type a query such as P(X=v|Y=v) (Ctrl+D to exit):")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := answer(w, b, text, algo); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	fmt.Fprintln(w)
	return scanner.Err()
}
