package network

// Variable describes one node of a Bayesian network
type Variable struct {
	Name     string
	Outcomes []string
	Parents  []string

	// CPT lists P(Name | Parents) with the node's own outcome varying fastest,
	// then the parents in nested-loop order (last parent fastest, first
	// parent slowest).
	CPT []float64
}

// Scope returns the node followed by its parents
func (v Variable) Scope() []string {
	scope := make([]string, 0, len(v.Parents)+1)
	scope = append(scope, v.Name)
	return append(scope, v.Parents...)
}

func (v Variable) clone() Variable {
	return Variable{
		Name:     v.Name,
		Outcomes: append([]string(nil), v.Outcomes...),
		Parents:  append([]string(nil), v.Parents...),
		CPT:      append([]float64(nil), v.CPT...),
	}
}
