package elimination

import (
	"sort"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// Order chooses the sequence in which hidden variables are summed out
type Order int

const (
	// Heuristic eliminates variables with small CPTs first, breaking ties by
	// the character sum of the CPT scope and then by name.
	Heuristic Order = iota
	// Alphabetical eliminates variables in name order
	Alphabetical
)

func (o Order) String() string {
	if o == Alphabetical {
		return "alphabetical"
	}
	return "heuristic"
}

// Sequence returns hidden sorted for elimination. hidden is not modified.
func (o Order) Sequence(net *network.Network, hidden []string) []string {
	out := append([]string(nil), hidden...)
	sort.Strings(out)
	if o == Alphabetical {
		return out
	}

	cpt := make(map[string]*factor.Factor, len(out))
	for _, name := range out {
		if f, ok := net.Factor(name); ok {
			cpt[name] = f
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := cpt[out[i]], cpt[out[j]]
		if a == nil || b == nil {
			return false
		}
		return factor.Compare(a, b) < 0
	})
	return out
}
