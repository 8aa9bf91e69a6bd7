package bayesnet

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/inference/elimination"
	"github.com/cognicore/bayesnet/pkg/bayesnet/inference/enumeration"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/memstore"
)

// Bayes answers queries against one network and records batch runs
type Bayes struct {
	net     *network.Network
	store   store.Store
	log     *zap.Logger
	workers int
	source  string
	engines map[inference.Algorithm]inference.Engine

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Bayes instance
type Options struct {
	Network *network.Network
	Store   store.Store // memstore when nil
	Logger  *zap.Logger // no logging when nil
	Workers int         // concurrent queries in Run, at least 1
	Source  string      // recorded with every run, e.g. the batch file name
}

// New creates a Bayes instance with one engine per algorithm
func New(opts Options) (*Bayes, error) {
	if opts.Network == nil {
		return nil, fmt.Errorf("%w: no network", internalerr.ErrInvalidConfig)
	}
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	net := opts.Network
	return &Bayes{
		net:     net,
		store:   opts.Store,
		log:     opts.Logger.With(zap.String("network", net.Name())),
		workers: opts.Workers,
		source:  opts.Source,
		engines: map[inference.Algorithm]inference.Engine{
			inference.Enumeration:          enumeration.New(net),
			inference.Elimination:          elimination.New(net, elimination.WithOrder(elimination.Alphabetical)),
			inference.HeuristicElimination: elimination.New(net, elimination.WithOrder(elimination.Heuristic)),
		},
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close cleanly shuts down the Bayes instance
func (b *Bayes) Close() error {
	return b.store.Close()
}

// Network returns the network queries are answered against
func (b *Bayes) Network() *network.Network {
	return b.net
}

// Engine returns the engine registered for a
func (b *Bayes) Engine(a inference.Algorithm) (inference.Engine, error) {
	e, ok := b.engines[a]
	if !ok {
		return nil, fmt.Errorf("%w: %d", internalerr.ErrInvalidAlgorithm, int(a))
	}
	return e, nil
}

// Request is one query and the algorithm to answer it with
type Request struct {
	Query     inference.Query
	Algorithm inference.Algorithm
}

// Answer runs a single request
func (b *Bayes) Answer(req Request) (inference.Result, error) {
	e, err := b.Engine(req.Algorithm)
	if err != nil {
		return inference.Result{}, err
	}
	res, err := e.Answer(req.Query)
	if err != nil {
		return inference.Result{}, fmt.Errorf("%s: %w", req.Query, err)
	}
	return res, nil
}

// Outcome pairs a request with its result or error
type Outcome struct {
	Request Request
	Result  inference.Result
	Err     error
}

// Report summarizes a Run
type Report struct {
	RunID      string
	Outcomes   []Outcome // same order as the requests
	Answered   int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Results returns the results of the answered requests, in request order
func (r *Report) Results() []inference.Result {
	out := make([]inference.Result, 0, r.Answered)
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o.Result)
		}
	}
	return out
}

// Run answers reqs concurrently and records the run in the store. A failed
// query does not stop the run; it is logged and stored with its error.
// Run returns an error only when ctx is cancelled or the store fails.
func (b *Bayes) Run(ctx context.Context, reqs []Request) (*Report, error) {
	report := &Report{
		RunID:     b.newID(),
		Outcomes:  make([]Outcome, len(reqs)),
		StartedAt: time.Now(),
	}
	log := b.log.With(zap.String("run", report.RunID))

	err := b.store.CreateRun(ctx, store.Run{
		ID:        report.RunID,
		Network:   b.net.Name(),
		Source:    b.source,
		Queries:   len(reqs),
		StartedAt: report.StartedAt,
	})
	if err != nil {
		log.Error("create run failed", zap.Error(err))
		return nil, err
	}
	log.Info("run started", zap.Int("queries", len(reqs)), zap.Int("workers", b.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, req := range reqs {
		i, req := i, req // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.Answer(req)
			report.Outcomes[i] = Outcome{Request: req, Result: res, Err: err}
			if err != nil {
				log.Warn("query failed",
					zap.String("query", req.Query.String()),
					zap.Int("algorithm", int(req.Algorithm)),
					zap.Error(err))
				return nil
			}
			log.Debug("query answered",
				zap.String("query", req.Query.String()),
				zap.Int("algorithm", int(req.Algorithm)),
				zap.String("result", res.String()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("run cancelled", zap.Error(err))
		return nil, err
	}

	rows := make([]store.Result, len(report.Outcomes))
	for i, o := range report.Outcomes {
		rows[i] = store.Result{
			Seq:       i,
			Query:     o.Request.Query.String(),
			Algorithm: int(o.Request.Algorithm),
		}
		if o.Err != nil {
			report.Failed++
			rows[i].Error = o.Err.Error()
			continue
		}
		report.Answered++
		rows[i].Probability = o.Result.Probability
		rows[i].Additions = o.Result.Additions
		rows[i].Multiplications = o.Result.Multiplications
	}
	report.FinishedAt = time.Now()

	if err := b.store.AppendResults(ctx, report.RunID, rows); err != nil {
		log.Error("store results failed", zap.Error(err))
		return nil, err
	}
	if err := b.store.FinishRun(ctx, report.RunID, report.FinishedAt, report.Answered, report.Failed); err != nil {
		log.Error("finish run failed", zap.Error(err))
		return nil, err
	}

	log.Info("run finished",
		zap.Int("answered", report.Answered),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

// Runs returns up to limit recorded runs, newest first
func (b *Bayes) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	return b.store.ListRuns(ctx, limit)
}

func (b *Bayes) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}
