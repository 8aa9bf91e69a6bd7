// Package enumeration answers queries by summing the full joint distribution.
//
// It never prunes the network and serves as the slow reference that other
// engines are checked against.
package enumeration

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Engine is a brute-force inference engine
type Engine struct {
	net *network.Network
}

// New creates an enumeration engine over net
func New(net *network.Network) *Engine {
	return &Engine{net: net}
}

// Name implements inference.Engine
func (e *Engine) Name() string {
	return "enumeration"
}

// Answer implements inference.Engine.
//
// For every target outcome, every combination of the variables outside the
// query is expanded with the chain rule: one CPT entry per network variable,
// multiplied together. Each combination costs (variables - 1)
// multiplications and is added once into either the numerator or the rest.
func (e *Engine) Answer(q inference.Query) (inference.Result, error) {
	if res, done, err := inference.Prepare(e.net, q); err != nil || done {
		return res, err
	}

	all := e.net.Names()
	inQuery := make(map[string]bool)
	for _, name := range q.Names() {
		inQuery[name] = true
	}

	var hidden []string
	var domains [][]string
	for _, name := range all {
		if inQuery[name] {
			continue
		}
		outcomes, _ := e.net.Outcomes(name)
		hidden = append(hidden, name)
		domains = append(domains, outcomes)
	}

	targetOutcomes, _ := e.net.Outcomes(q.Target)
	assignment := q.Assignment()

	var numerator, rest float64
	terms, mults := 0, 0
	for _, t := range targetOutcomes {
		assignment[q.Target] = t

		err := enumerate(hidden, domains, assignment, func() error {
			p, m, err := e.joint(all, assignment)
			if err != nil {
				return err
			}
			mults += m
			terms++
			if t == q.Value {
				numerator += p
			} else {
				rest += p
			}
			return nil
		})
		if err != nil {
			return inference.Result{}, err
		}
	}

	alpha := numerator + rest
	if alpha == 0 {
		return inference.Result{}, fmt.Errorf("%w: evidence of %s has zero probability", internalerr.ErrZeroNormalization, q)
	}

	return inference.Result{
		Probability:     numerator / alpha,
		Additions:       terms - 1,
		Multiplications: mults,
	}, nil
}

// joint multiplies the CPT entry of every variable under assignment
func (e *Engine) joint(names []string, assignment map[string]string) (float64, int, error) {
	result := 1.0
	mults := 0
	for i, name := range names {
		p, err := e.net.Probability(name, assignment)
		if err != nil {
			return 0, 0, err
		}
		if i == 0 {
			result = p
			continue
		}
		result *= p
		mults++
	}
	return result, mults, nil
}

// enumerate writes every combination of domains into assignment, the last
// variable varying fastest, and calls fn after each.
func enumerate(names []string, domains [][]string, assignment map[string]string, fn func() error) error {
	idx := make([]int, len(names))
	for i, name := range names {
		assignment[name] = domains[i][0]
	}

	for {
		if err := fn(); err != nil {
			return err
		}

		i := len(names) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(domains[i]) {
				assignment[names[i]] = domains[i][idx[i]]
				break
			}
			idx[i] = 0
			assignment[names[i]] = domains[i][0]
		}
		if i < 0 {
			return nil
		}
	}
}
