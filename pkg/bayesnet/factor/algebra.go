package factor

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Instantiate fixes v to value: rows disagreeing with value are dropped and
// the v column is removed from the scope. Values are not renormalized.
func Instantiate(f *Factor, v, value string) (*Factor, error) {
	idx := f.Index(v)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q not in factor over %v", internalerr.ErrUnknownVariable, v, f.scope)
	}
	if !containsString(f.domains[idx], value) {
		return nil, fmt.Errorf("%w: %q for variable %q", internalerr.ErrUnknownOutcome, value, v)
	}

	g := newFactor(f.name, without(f.scope, idx), withoutDomain(f.domains, idx))
	full := make([]string, len(f.scope))
	each(g.domains, func(vals []string) {
		copy(full[:idx], vals[:idx])
		full[idx] = value
		copy(full[idx+1:], vals[idx:])
		g.table[makeKey(vals)] = f.table[makeKey(full)]
	})
	return g, nil
}

// Join returns the pointwise product of f1 and f2 and the number of
// multiplications performed.
//
// The result scope is f1's scope followed by the variables of f2 not already
// present. Each result row is seeded with the matching f1 value and then
// multiplied once by the matching f2 value, so the cost equals the number of
// result rows.
func Join(f1, f2 *Factor) (*Factor, int) {
	scope := copyStrings(f1.scope)
	domains := copyDomains(f1.domains)
	for i, v := range f2.scope {
		if !f1.Contains(v) {
			scope = append(scope, v)
			domains = append(domains, copyStrings(f2.domains[i]))
		}
	}

	g := newFactor("", scope, domains)
	pos1 := positions(scope, f1.scope)
	pos2 := positions(scope, f2.scope)
	proj1 := make([]string, len(pos1))
	proj2 := make([]string, len(pos2))

	mults := 0
	each(domains, func(vals []string) {
		for i, p := range pos1 {
			proj1[i] = vals[p]
		}
		for i, p := range pos2 {
			proj2[i] = vals[p]
		}
		p := f1.table[makeKey(proj1)]
		p *= f2.table[makeKey(proj2)]
		mults++
		g.table[makeKey(vals)] = p
	})
	return g, mults
}

// Eliminate sums v out of f. A group of n rows sharing the remaining
// assignment costs n-1 additions; the total is returned.
func Eliminate(f *Factor, v string) (*Factor, int, error) {
	idx := f.Index(v)
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: %q not in factor over %v", internalerr.ErrUnknownVariable, v, f.scope)
	}

	g := newFactor(f.name, without(f.scope, idx), withoutDomain(f.domains, idx))
	full := make([]string, len(f.scope))
	adds := 0
	each(g.domains, func(vals []string) {
		copy(full[:idx], vals[:idx])
		copy(full[idx+1:], vals[idx:])

		sum := 0.0
		for j, o := range f.domains[idx] {
			full[idx] = o
			if j > 0 {
				adds++
			}
			sum += f.table[makeKey(full)]
		}
		g.table[makeKey(vals)] = sum
	})
	return g, adds, nil
}

// Normalize scales f in place so its rows sum to 1 and returns the number of
// additions used to compute the sum.
func (f *Factor) Normalize() (int, error) {
	sum := f.Sum()
	if sum == 0 {
		return 0, fmt.Errorf("%w: factor over %v", internalerr.ErrZeroNormalization, f.scope)
	}
	for k, p := range f.table {
		f.table[k] = p / sum
	}
	return len(f.table) - 1, nil
}

// positions maps each variable of sub to its index in scope
func positions(scope, sub []string) []int {
	out := make([]int, len(sub))
	for i, v := range sub {
		for j, s := range scope {
			if s == v {
				out[i] = j
				break
			}
		}
	}
	return out
}

func without(s []string, idx int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:idx]...)
	return append(out, s[idx+1:]...)
}

func withoutDomain(domains [][]string, idx int) [][]string {
	out := make([][]string, 0, len(domains)-1)
	for i, d := range domains {
		if i != idx {
			out = append(out, copyStrings(d))
		}
	}
	return out
}
