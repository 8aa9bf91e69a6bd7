// Package factor implements probability tables over an ordered scope of
// discrete variables and the algebra used by exact inference: evidence
// instantiation, pointwise product (join) and summing out (elimination).
//
// Every table access goes through a Key built by the factor itself, so a key
// can never be assembled in an order that disagrees with the factor's scope.
package factor

import (
	"fmt"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Factor is a table mapping every joint assignment of its scope to a value.
//
// The key set is always exactly the cartesian product of the scope domains.
type Factor struct {
	name    string
	scope   []string
	domains [][]string
	table   map[Key]float64
}

// New creates a factor over scope with every row set to fill.
// domains[i] lists the outcomes of scope[i].
func New(name string, scope []string, domains [][]string, fill float64) (*Factor, error) {
	if len(scope) != len(domains) {
		return nil, fmt.Errorf("%w: %d scope variables but %d domains", internalerr.ErrMalformedNetwork, len(scope), len(domains))
	}

	seen := make(map[string]bool, len(scope))
	for i, v := range scope {
		if seen[v] {
			return nil, fmt.Errorf("%w: variable %q appears twice in scope", internalerr.ErrMalformedNetwork, v)
		}
		seen[v] = true

		if len(domains[i]) == 0 {
			return nil, fmt.Errorf("%w: variable %q has no outcomes", internalerr.ErrMalformedNetwork, v)
		}
		labels := make(map[string]bool, len(domains[i]))
		for _, o := range domains[i] {
			if !ValidLabel(o) || labels[o] {
				return nil, fmt.Errorf("%w: bad outcome %q for %q", internalerr.ErrMalformedNetwork, o, v)
			}
			labels[o] = true
		}
	}

	f := newFactor(name, copyStrings(scope), copyDomains(domains))
	each(f.domains, func(vals []string) {
		f.table[makeKey(vals)] = fill
	})
	return f, nil
}

// newFactor allocates an empty table; callers fill every row
func newFactor(name string, scope []string, domains [][]string) *Factor {
	return &Factor{
		name:    name,
		scope:   scope,
		domains: domains,
		table:   make(map[Key]float64, tableSize(domains)),
	}
}

// Name returns the variable the factor was built for, or "" for derived factors
func (f *Factor) Name() string {
	return f.name
}

// Scope returns the scope variables in order
func (f *Factor) Scope() []string {
	return copyStrings(f.scope)
}

// Domain returns the outcomes of v within this factor
func (f *Factor) Domain(v string) ([]string, bool) {
	i := f.Index(v)
	if i < 0 {
		return nil, false
	}
	return copyStrings(f.domains[i]), true
}

// Index returns the position of v in the scope, or -1
func (f *Factor) Index(v string) int {
	for i, s := range f.scope {
		if s == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in the scope
func (f *Factor) Contains(v string) bool {
	return f.Index(v) >= 0
}

// Len returns the number of table rows
func (f *Factor) Len() int {
	return len(f.table)
}

// KeyOf builds the key for the given outcome labels, listed in scope order.
func (f *Factor) KeyOf(vals ...string) (Key, error) {
	if len(vals) != len(f.scope) {
		return Key{}, fmt.Errorf("%w: %d values for scope %v", internalerr.ErrInvalidQuery, len(vals), f.scope)
	}
	for i, v := range vals {
		if !containsString(f.domains[i], v) {
			return Key{}, fmt.Errorf("%w: %q for variable %q", internalerr.ErrUnknownOutcome, v, f.scope[i])
		}
	}
	return makeKey(vals), nil
}

// KeyFor builds the key from a variable → outcome assignment. The assignment
// may hold extra variables; every scope variable must be present.
func (f *Factor) KeyFor(assignment map[string]string) (Key, error) {
	vals := make([]string, len(f.scope))
	for i, v := range f.scope {
		o, ok := assignment[v]
		if !ok {
			return Key{}, fmt.Errorf("%w: %q missing from assignment", internalerr.ErrUnknownVariable, v)
		}
		vals[i] = o
	}
	return f.KeyOf(vals...)
}

// Value returns the table value for k
func (f *Factor) Value(k Key) (float64, bool) {
	p, ok := f.table[k]
	return p, ok
}

// Set overwrites the value of an existing row
func (f *Factor) Set(k Key, p float64) error {
	if _, ok := f.table[k]; !ok {
		return fmt.Errorf("%w: key %s not in factor over %v", internalerr.ErrUnknownOutcome, k, f.scope)
	}
	f.table[k] = p
	return nil
}

// Each calls fn for every row in canonical order (first scope variable
// varying fastest).
func (f *Factor) Each(fn func(k Key, p float64)) {
	each(f.domains, func(vals []string) {
		k := makeKey(vals)
		fn(k, f.table[k])
	})
}

// Sum adds up every row
func (f *Factor) Sum() float64 {
	sum := 0.0
	f.Each(func(_ Key, p float64) {
		sum += p
	})
	return sum
}

// Clone returns a deep copy. Mutating the copy never affects f.
func (f *Factor) Clone() *Factor {
	c := newFactor(f.name, copyStrings(f.scope), copyDomains(f.domains))
	for k, p := range f.table {
		c.table[k] = p
	}
	return c
}

// String renders the factor as f(A,B) followed by its rows
func (f *Factor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "f(%s)", strings.Join(f.scope, ","))
	f.Each(func(k Key, p float64) {
		fmt.Fprintf(&b, " %s=%g", k, p)
	})
	return b.String()
}

// each enumerates the cartesian product of domains with the first dimension
// varying fastest. vals is reused between calls.
func each(domains [][]string, fn func(vals []string)) {
	idx := make([]int, len(domains))
	vals := make([]string, len(domains))
	for i, d := range domains {
		if len(d) == 0 {
			return
		}
		vals[i] = d[0]
	}

	for {
		fn(vals)

		i := 0
		for ; i < len(domains); i++ {
			idx[i]++
			if idx[i] < len(domains[i]) {
				vals[i] = domains[i][idx[i]]
				break
			}
			idx[i] = 0
			vals[i] = domains[i][0]
		}
		if i == len(domains) {
			return
		}
	}
}

func tableSize(domains [][]string) int {
	n := 1
	for _, d := range domains {
		n *= len(d)
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyDomains(domains [][]string) [][]string {
	out := make([][]string, len(domains))
	for i, d := range domains {
		out[i] = copyStrings(d)
	}
	return out
}
