// Package elimination answers queries with variable elimination over the
// factors of the query's ancestor set.
//
// Each query works on private copies of the relevant CPT factors: evidence
// is instantiated, hidden variables are joined and summed out one at a time,
// and the factors left over the target are joined and normalized.
package elimination

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Engine is a variable elimination engine
type Engine struct {
	net   *network.Network
	order Order
}

// Option configures an Engine
type Option func(*Engine)

// WithOrder sets the hidden variable order (default Heuristic)
func WithOrder(o Order) Option {
	return func(e *Engine) {
		e.order = o
	}
}

// New creates an elimination engine over net
func New(net *network.Network, opts ...Option) *Engine {
	e := &Engine{net: net, order: Heuristic}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements inference.Engine
func (e *Engine) Name() string {
	return "elimination/" + e.order.String()
}

// Answer implements inference.Engine
func (e *Engine) Answer(q inference.Query) (inference.Result, error) {
	if res, done, err := inference.Prepare(e.net, q); err != nil || done {
		return res, err
	}

	relevant, err := e.net.Relevant(q.Names()...)
	if err != nil {
		return inference.Result{}, err
	}
	factors, err := e.net.Factors(relevant...)
	if err != nil {
		return inference.Result{}, err
	}

	for _, ob := range q.Evidence {
		for i, f := range factors {
			if !f.Contains(ob.Variable) {
				continue
			}
			g, err := factor.Instantiate(f, ob.Variable, ob.Value)
			if err != nil {
				return inference.Result{}, err
			}
			factors[i] = g
		}
	}
	factors = discardTrivial(factors)

	inQuery := make(map[string]bool, len(q.Evidence)+1)
	for _, name := range q.Names() {
		inQuery[name] = true
	}
	var hidden []string
	for _, name := range relevant {
		if !inQuery[name] {
			hidden = append(hidden, name)
		}
	}

	var res inference.Result
	for _, h := range e.order.Sequence(e.net, hidden) {
		var group []*factor.Factor
		for _, f := range factors {
			if f.Contains(h) {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}
		factor.Sort(group)

		joined, mults := joinAll(group)
		res.Multiplications += mults

		summed, adds, err := factor.Eliminate(joined, h)
		if err != nil {
			return inference.Result{}, err
		}
		res.Additions += adds

		factors = discardTrivial(replace(factors, group, summed))
	}

	var final []*factor.Factor
	for _, f := range factors {
		if f.Contains(q.Target) {
			final = append(final, f)
		}
	}
	if len(final) == 0 {
		return inference.Result{}, fmt.Errorf("%w: no factor left over %q", internalerr.ErrEmptyFactorSet, q.Target)
	}
	factor.Sort(final)

	answer, mults := joinAll(final)
	res.Multiplications += mults

	adds, err := answer.Normalize()
	if err != nil {
		return inference.Result{}, fmt.Errorf("%s: %w", q, err)
	}
	res.Additions += adds

	k, err := answer.KeyOf(q.Value)
	if err != nil {
		return inference.Result{}, err
	}
	res.Probability, _ = answer.Value(k)
	return res, nil
}

// joinAll multiplies fs left to right and returns the total cost
func joinAll(fs []*factor.Factor) (*factor.Factor, int) {
	acc := fs[0]
	total := 0
	for _, f := range fs[1:] {
		var m int
		acc, m = factor.Join(acc, f)
		total += m
	}
	return acc, total
}

// replace removes group from fs and puts result where the last factor of
// group used to be.
func replace(fs, group []*factor.Factor, result *factor.Factor) []*factor.Factor {
	last := group[len(group)-1]
	members := make(map[*factor.Factor]bool, len(group))
	for _, g := range group {
		members[g] = true
	}

	out := make([]*factor.Factor, 0, len(fs)-len(group)+1)
	for _, f := range fs {
		switch {
		case f == last:
			out = append(out, result)
		case members[f]:
		default:
			out = append(out, f)
		}
	}
	return out
}

// discardTrivial drops single-row factors; they scale every answer row
// equally and vanish under normalization.
func discardTrivial(fs []*factor.Factor) []*factor.Factor {
	out := fs[:0]
	for _, f := range fs {
		if f.Len() > 1 {
			out = append(out, f)
		}
	}
	return out
}
