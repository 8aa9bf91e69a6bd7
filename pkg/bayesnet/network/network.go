// Package network holds a discrete Bayesian network: its variables and the
// factor built once from every conditional probability table.
//
// A Network is read-only after New returns. Master factors are never handed
// out by reference; Factor returns a deep copy, so any number of queries can
// share one network, sequentially or concurrently.
package network

import (
	"fmt"
	"math"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Network is an immutable set of variables and their CPT factors
type Network struct {
	name    string
	order   []string
	vars    map[string]Variable
	factors map[string]*factor.Factor
}

// New validates vars and builds one factor per variable.
// No partial network is returned on error.
func New(name string, vars []Variable) (*Network, error) {
	n := &Network{
		name:    name,
		order:   make([]string, 0, len(vars)),
		vars:    make(map[string]Variable, len(vars)),
		factors: make(map[string]*factor.Factor, len(vars)),
	}

	for _, v := range vars {
		if !factor.ValidLabel(v.Name) {
			return nil, fmt.Errorf("%w: invalid variable name %q", internalerr.ErrMalformedNetwork, v.Name)
		}
		if _, dup := n.vars[v.Name]; dup {
			return nil, fmt.Errorf("%w: variable %q declared twice", internalerr.ErrMalformedNetwork, v.Name)
		}
		if len(v.Outcomes) < 2 {
			return nil, fmt.Errorf("%w: variable %q needs at least two outcomes", internalerr.ErrMalformedNetwork, v.Name)
		}
		n.order = append(n.order, v.Name)
		n.vars[v.Name] = v.clone()
	}

	// parents may be declared after their children, so resolve in a second pass
	for _, name := range n.order {
		v := n.vars[name]
		seen := make(map[string]bool, len(v.Parents))
		for _, p := range v.Parents {
			if p == v.Name {
				return nil, fmt.Errorf("%w: variable %q lists itself as parent", internalerr.ErrMalformedNetwork, v.Name)
			}
			if seen[p] {
				return nil, fmt.Errorf("%w: variable %q lists parent %q twice", internalerr.ErrMalformedNetwork, v.Name, p)
			}
			seen[p] = true
		}

		f, err := BuildFactor(v, n.Outcomes)
		if err != nil {
			return nil, err
		}
		n.factors[name] = f
	}

	return n, nil
}

// BuildFactor turns a variable's CPT into a factor over [v] + parents.
//
// Row i of the CPT is decoded as a mixed-radix number: the variable's own
// outcome is the fastest digit, followed by the parents from last to first.
func BuildFactor(v Variable, outcomesOf func(name string) ([]string, bool)) (*factor.Factor, error) {
	scope := v.Scope()
	domains := make([][]string, len(scope))
	domains[0] = v.Outcomes
	size := len(v.Outcomes)
	for i, p := range v.Parents {
		outcomes, ok := outcomesOf(p)
		if !ok {
			return nil, fmt.Errorf("%w: parent %q of %q is not declared", internalerr.ErrMalformedNetwork, p, v.Name)
		}
		domains[i+1] = outcomes
		size *= len(outcomes)
	}

	if len(v.CPT) != size {
		return nil, fmt.Errorf("%w: %q has %d CPT values, expected %d", internalerr.ErrMalformedNetwork, v.Name, len(v.CPT), size)
	}

	f, err := factor.New(v.Name, scope, domains, 0)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", v.Name, err)
	}

	vals := make([]string, len(scope))
	for i, p := range v.CPT {
		decodeRow(i, domains, vals)
		k, err := f.KeyOf(vals...)
		if err != nil {
			return nil, err
		}
		if err := f.Set(k, p); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// decodeRow writes the assignment of CPT row i into vals
func decodeRow(i int, domains [][]string, vals []string) {
	k := len(domains[0])
	vals[0] = domains[0][i%k]
	rest := i / k
	for j := len(domains) - 1; j >= 1; j-- {
		d := domains[j]
		vals[j] = d[rest%len(d)]
		rest /= len(d)
	}
}

// Name returns the network name
func (n *Network) Name() string {
	return n.name
}

// Len returns the number of variables
func (n *Network) Len() int {
	return len(n.order)
}

// Names returns variable names in declaration order
func (n *Network) Names() []string {
	return append([]string(nil), n.order...)
}

// Has reports whether name is a variable of the network
func (n *Network) Has(name string) bool {
	_, ok := n.vars[name]
	return ok
}

// Variable returns a copy of the named variable
func (n *Network) Variable(name string) (Variable, bool) {
	v, ok := n.vars[name]
	if !ok {
		return Variable{}, false
	}
	return v.clone(), true
}

// Variables returns copies of every variable in declaration order
func (n *Network) Variables() []Variable {
	out := make([]Variable, len(n.order))
	for i, name := range n.order {
		out[i] = n.vars[name].clone()
	}
	return out
}

// Outcomes returns the outcome labels of the named variable
func (n *Network) Outcomes(name string) ([]string, bool) {
	v, ok := n.vars[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), v.Outcomes...), true
}

// Parents returns the declared parents of the named variable
func (n *Network) Parents(name string) ([]string, bool) {
	v, ok := n.vars[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), v.Parents...), true
}

// Factor returns a working copy of the named variable's CPT factor
func (n *Network) Factor(name string) (*factor.Factor, bool) {
	f, ok := n.factors[name]
	if !ok {
		return nil, false
	}
	return f.Clone(), true
}

// Factors returns working copies of the named factors, in the given order
func (n *Network) Factors(names ...string) ([]*factor.Factor, error) {
	out := make([]*factor.Factor, 0, len(names))
	for _, name := range names {
		f, ok := n.Factor(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownVariable, name)
		}
		out = append(out, f)
	}
	return out, nil
}

// Probability reads P(name = assignment[name] | parents = assignment[parents])
// straight from the master CPT. Extra assignment entries are ignored.
func (n *Network) Probability(name string, assignment map[string]string) (float64, error) {
	f, ok := n.factors[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", internalerr.ErrUnknownVariable, name)
	}
	k, err := f.KeyFor(assignment)
	if err != nil {
		return 0, err
	}
	p, _ := f.Value(k)
	return p, nil
}

// TableSize returns the number of CPT rows of the named variable
func (n *Network) TableSize(name string) int {
	if f, ok := n.factors[name]; ok {
		return f.Len()
	}
	return 0
}

// CheckDistributions verifies that every CPT column (one parent assignment)
// sums to 1 within tol.
func (n *Network) CheckDistributions(tol float64) error {
	for _, name := range n.order {
		v := n.vars[name]
		k := len(v.Outcomes)
		for start := 0; start < len(v.CPT); start += k {
			sum := 0.0
			for _, p := range v.CPT[start : start+k] {
				sum += p
			}
			if math.Abs(sum-1) > tol {
				return fmt.Errorf("%w: %q rows %d-%d sum to %g", internalerr.ErrMalformedNetwork, name, start, start+k-1, sum)
			}
		}
	}
	return nil
}
