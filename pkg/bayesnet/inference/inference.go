package inference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Engine answers exact conditional probability queries.
// Implementations live in sub-packages (enumeration, elimination) so that
// algorithms can be swapped and compared on the same network.
type Engine interface {
	// Name identifies the algorithm in logs and reports
	Name() string

	// Answer computes P(q.Target = q.Value | q.Evidence) together with the
	// number of additions and multiplications performed
	Answer(q Query) (Result, error)
}

// Observation fixes one evidence variable to an outcome
type Observation struct {
	Variable string
	Value    string
}

// Query asks for P(Target = Value | Evidence)
type Query struct {
	Target   string
	Value    string
	Evidence []Observation
}

// NewQuery builds a query from parallel name/value lists.
// names[0]/values[0] is the target, the rest are evidence pairs.
func NewQuery(names, values []string) (Query, error) {
	if len(names) == 0 {
		return Query{}, fmt.Errorf("%w: no target variable", internalerr.ErrInvalidQuery)
	}
	if len(names) != len(values) {
		return Query{}, fmt.Errorf("%w: %d names but %d values", internalerr.ErrInvalidQuery, len(names), len(values))
	}

	q := Query{Target: names[0], Value: values[0]}
	for i := 1; i < len(names); i++ {
		q.Evidence = append(q.Evidence, Observation{Variable: names[i], Value: values[i]})
	}
	return q, nil
}

// Names returns the target followed by the evidence variables
func (q Query) Names() []string {
	names := make([]string, 0, len(q.Evidence)+1)
	names = append(names, q.Target)
	for _, ob := range q.Evidence {
		names = append(names, ob.Variable)
	}
	return names
}

// Assignment returns target and evidence as a variable → outcome map
func (q Query) Assignment() map[string]string {
	a := make(map[string]string, len(q.Evidence)+1)
	a[q.Target] = q.Value
	for _, ob := range q.Evidence {
		a[ob.Variable] = ob.Value
	}
	return a
}

// String renders the query as P(B=T|J=T,M=T)
func (q Query) String() string {
	var b strings.Builder
	b.WriteString("P(")
	b.WriteString(q.Target + "=" + q.Value)
	for i, ob := range q.Evidence {
		if i == 0 {
			b.WriteString("|")
		} else {
			b.WriteString(",")
		}
		b.WriteString(ob.Variable + "=" + ob.Value)
	}
	b.WriteString(")")
	return b.String()
}

// Result is an answer plus the arithmetic it cost
type Result struct {
	Probability     float64
	Additions       int
	Multiplications int

	// Direct is set when the value was read straight from a CPT
	Direct bool
}

// String renders "<probability>,<additions>,<multiplications>"
func (r Result) String() string {
	return fmt.Sprintf("%s,%d,%d", FormatProbability(r.Probability), r.Additions, r.Multiplications)
}

// FormatProbability rounds to 5 decimals and drops trailing zeros
func FormatProbability(p float64) string {
	s := strconv.FormatFloat(p, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

// Algorithm selects an engine by its batch-file number
type Algorithm int

const (
	// Enumeration sums the full joint distribution
	Enumeration Algorithm = 1
	// Elimination is variable elimination with hidden variables in name order
	Elimination Algorithm = 2
	// HeuristicElimination orders hidden variables by CPT size, then name weight
	HeuristicElimination Algorithm = 3
)

// Valid reports whether a names a known algorithm
func (a Algorithm) Valid() bool {
	return a >= Enumeration && a <= HeuristicElimination
}

func (a Algorithm) String() string {
	switch a {
	case Enumeration:
		return "enumeration"
	case Elimination:
		return "elimination"
	case HeuristicElimination:
		return "heuristic-elimination"
	}
	return "algorithm(" + strconv.Itoa(int(a)) + ")"
}

// ParseAlgorithm accepts "1".."3"
func ParseAlgorithm(s string) (Algorithm, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Algorithm(n).Valid() {
		return 0, fmt.Errorf("%w: %q", internalerr.ErrInvalidAlgorithm, s)
	}
	return Algorithm(n), nil
}
