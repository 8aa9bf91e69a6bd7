package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/bayesnet/pkg/bayesnet"
	"github.com/cognicore/bayesnet/pkg/bayesnet/batch"
	"github.com/cognicore/bayesnet/pkg/bayesnet/config"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/memstore"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/sqlite"
)

func newRunCmd(a *app) *cobra.Command {
	var output, storePath string
	var workers int

	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Answer every query of a batch file",
		Long: `Reads a batch file whose first line names the network file and whose
other lines are queries followed by an algorithm number:

  alarm_net.xml
  P(B=T|J=T,M=T),1
  P(J=T|B=T),3

One "<probability>,<additions>,<multiplications>" line is written per
answered query. Lines that cannot be parsed or answered are logged and left
out of the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				a.settings.Output = output
			}
			if cmd.Flags().Changed("store") {
				a.settings.Store = storePath
			}
			if cmd.Flags().Changed("workers") {
				a.settings.Workers = workers
			}
			return a.runBatch(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default from settings: output.txt)")
	cmd.Flags().StringVar(&storePath, "store", "", "SQLite database recording the run")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "queries answered concurrently")
	return cmd
}

func (a *app) runBatch(ctx context.Context, input string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := a.logger.With(zap.String("input", input))

	file, err := batch.Read(input)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}
	for _, e := range file.Invalid() {
		log.Warn("skipping line", zap.Int("line", e.Number), zap.Error(e.Err))
	}

	net, err := config.LoadNetworkFile(file.NetworkPath)
	if err != nil {
		return err
	}

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	b, err := bayesnet.New(bayesnet.Options{
		Network: net,
		Store:   st,
		Logger:  a.logger,
		Workers: a.settings.Workers,
		Source:  input,
	})
	if err != nil {
		st.Close()
		return err
	}
	defer b.Close()

	valid := file.Valid()
	reqs := make([]bayesnet.Request, len(valid))
	for i, e := range valid {
		reqs[i] = bayesnet.Request{Query: e.Line.Query, Algorithm: e.Line.Algorithm}
	}

	report, err := b.Run(ctx, reqs)
	if err != nil {
		return err
	}
	if err := batch.WriteFile(a.settings.Output, report.Results()); err != nil {
		return err
	}

	log.Info("wrote results",
		zap.String("output", a.settings.Output),
		zap.String("run", report.RunID),
		zap.Int("answered", report.Answered),
		zap.Int("failed", report.Failed+len(file.Invalid())))
	return nil
}

// openStore opens the configured SQLite store, or an in-memory one
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.settings.Store == "" {
		return memstore.New(), nil
	}
	st, err := sqlite.OpenSQLite(ctx, a.settings.Store)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.settings.Store, err)
	}
	return st, nil
}
