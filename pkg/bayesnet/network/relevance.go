package network

import (
	"fmt"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Ancestors walks parent links breadth-first from name. The result starts
// with name itself and holds every ancestor once.
func (n *Network) Ancestors(name string) ([]string, error) {
	if !n.Has(name) {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownVariable, name)
	}

	visited := map[string]bool{name: true}
	queue := []string{name}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		for _, p := range n.vars[cur].Parents {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return out, nil
}

// Relevant returns the union of the ancestor sets of names, in declaration
// order. Variables outside it cannot influence a query over names.
func (n *Network) Relevant(names ...string) ([]string, error) {
	keep := make(map[string]bool)
	for _, name := range names {
		anc, err := n.Ancestors(name)
		if err != nil {
			return nil, err
		}
		for _, a := range anc {
			keep[a] = true
		}
	}

	out := make([]string, 0, len(keep))
	for _, name := range n.order {
		if keep[name] {
			out = append(out, name)
		}
	}
	return out, nil
}
