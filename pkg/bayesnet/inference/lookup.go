package inference

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Validate checks that every query variable exists, appears once and is
// fixed to one of its outcomes.
func Validate(net *network.Network, q Query) error {
	seen := make(map[string]bool, len(q.Evidence)+1)
	check := func(name, value string) error {
		outcomes, ok := net.Outcomes(name)
		if !ok {
			return fmt.Errorf("%w: %q", internalerr.ErrUnknownVariable, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q appears more than once", internalerr.ErrInvalidQuery, name)
		}
		seen[name] = true
		for _, o := range outcomes {
			if o == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %q for variable %q", internalerr.ErrUnknownOutcome, value, name)
	}

	if err := check(q.Target, q.Value); err != nil {
		return err
	}
	for _, ob := range q.Evidence {
		if err := check(ob.Variable, ob.Value); err != nil {
			return err
		}
	}
	return nil
}

// DirectLookup answers q straight from the target's CPT when the evidence
// variables are exactly the target's parents, in any order. ok is false
// when the fast path does not apply.
func DirectLookup(net *network.Network, q Query) (p float64, ok bool, err error) {
	parents, found := net.Parents(q.Target)
	if !found {
		return 0, false, fmt.Errorf("%w: %q", internalerr.ErrUnknownVariable, q.Target)
	}
	if len(parents) != len(q.Evidence) {
		return 0, false, nil
	}

	given := make(map[string]bool, len(q.Evidence))
	for _, ob := range q.Evidence {
		given[ob.Variable] = true
	}
	for _, parent := range parents {
		if !given[parent] {
			return 0, false, nil
		}
	}

	p, err = net.Probability(q.Target, q.Assignment())
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

// Prepare validates q and tries the direct lookup. Engines call it first and
// return the result unchanged when done is true.
func Prepare(net *network.Network, q Query) (res Result, done bool, err error) {
	if err := Validate(net, q); err != nil {
		return Result{}, false, err
	}
	p, ok, err := DirectLookup(net, q)
	if err != nil || !ok {
		return Result{}, false, err
	}
	return Result{Probability: p, Direct: true}, true, nil
}
