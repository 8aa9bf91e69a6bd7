package network_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/bayesnet/pkg/bayesnet/factor"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network/networktest"
)

func prob(t *testing.T, n *network.Network, name string, assignment map[string]string) float64 {
	t.Helper()
	p, err := n.Probability(name, assignment)
	if err != nil {
		t.Fatalf("Probability(%s, %v): %v", name, assignment, err)
	}
	return p
}

func TestBuildFactorRowOrder(t *testing.T) {
	n := networktest.Alarm(t)

	tests := []struct {
		a, e, b string
		want    float64
	}{
		{"T", "T", "T", 0.95},
		{"F", "T", "T", 0.05},
		{"T", "T", "F", 0.29},
		{"T", "F", "T", 0.94},
		{"F", "F", "F", 0.999},
	}

	for _, tt := range tests {
		got := prob(t, n, "A", map[string]string{"A": tt.a, "E": tt.e, "B": tt.b})
		if got != tt.want {
			t.Errorf("P(A=%s|E=%s,B=%s) = %f, want %f", tt.a, tt.e, tt.b, got, tt.want)
		}
	}
}

func TestBuildFactorThreeValuedParent(t *testing.T) {
	n := networktest.Sprinkler(t)

	if got := prob(t, n, "Rain", map[string]string{"Rain": "no", "Season": "spring"}); got != 0.6 {
		t.Errorf("P(Rain=no|spring) = %f, want 0.6", got)
	}
	if got := prob(t, n, "Wet", map[string]string{"Wet": "wet", "Sprinkler": "off", "Rain": "yes"}); got != 0.85 {
		t.Errorf("P(Wet=wet|off,yes) = %f, want 0.85", got)
	}
}

func TestBuildFactorScope(t *testing.T) {
	n := networktest.Alarm(t)

	f, ok := n.Factor("A")
	if !ok {
		t.Fatal("factor A missing")
	}
	if diff := cmp.Diff([]string{"A", "E", "B"}, f.Scope()); diff != "" {
		t.Errorf("scope mismatch (-want +got):\n%s", diff)
	}
	if f.Len() != 8 {
		t.Errorf("expected 8 rows, got %d", f.Len())
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	base := func() []network.Variable { return networktest.ChainVariables() }

	tests := []struct {
		name   string
		mutate func([]network.Variable) []network.Variable
	}{
		{"cpt too short", func(v []network.Variable) []network.Variable {
			v[1].CPT = v[1].CPT[:3]
			return v
		}},
		{"undeclared parent", func(v []network.Variable) []network.Variable {
			v[2].Parents = []string{"X"}
			return v
		}},
		{"duplicate name", func(v []network.Variable) []network.Variable {
			return append(v, v[0])
		}},
		{"single outcome", func(v []network.Variable) []network.Variable {
			v[0].Outcomes = []string{"T"}
			v[0].CPT = []float64{1}
			return v
		}},
		{"self parent", func(v []network.Variable) []network.Variable {
			v[0].Parents = []string{"A"}
			return v
		}},
		{"duplicate outcome", func(v []network.Variable) []network.Variable {
			v[0].Outcomes = []string{"T", "T"}
			return v
		}},
		{"empty name", func(v []network.Variable) []network.Variable {
			v[0].Name = ""
			return v
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := network.New("chain", tt.mutate(base()))
			if !errors.Is(err, internalerr.ErrMalformedNetwork) {
				t.Errorf("expected ErrMalformedNetwork, got %v", err)
			}
			if n != nil {
				t.Error("no partial network should be returned")
			}
		})
	}
}

func TestNewAcceptsParentsDeclaredLater(t *testing.T) {
	vars := networktest.ChainVariables()
	vars[0], vars[2] = vars[2], vars[0]

	n, err := network.New("reversed", vars)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "B", "A"}, n.Names()); diff != "" {
		t.Errorf("declaration order lost (-want +got):\n%s", diff)
	}
}

func TestNewCopiesInput(t *testing.T) {
	vars := networktest.ChainVariables()
	n, err := network.New("chain", vars)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	vars[0].CPT[0] = 0.99
	vars[0].Outcomes[0] = "yes"

	v, _ := n.Variable("A")
	if v.CPT[0] != 0.3 || v.Outcomes[0] != "T" {
		t.Errorf("network aliases caller slices: %+v", v)
	}

	v.Parents = append(v.Parents, "C")
	if again, _ := n.Parents("A"); len(again) != 0 {
		t.Error("Variable() leaked internal state")
	}
}

func TestFactorReturnsWorkingCopy(t *testing.T) {
	n := networktest.Chain(t)

	f, _ := n.Factor("B")
	k, _ := f.KeyOf("T", "T")
	if err := f.Set(k, 0.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	g, err := factor.Instantiate(f, "A", "T")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if _, err := g.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if got := prob(t, n, "B", map[string]string{"B": "T", "A": "T"}); got != 0.8 {
		t.Errorf("master factor changed: got %f, want 0.8", got)
	}
}

func TestFactorsUnknown(t *testing.T) {
	n := networktest.Chain(t)

	if _, err := n.Factors("A", "Z"); !errors.Is(err, internalerr.ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
	fs, err := n.Factors("C", "A")
	if err != nil {
		t.Fatalf("Factors: %v", err)
	}
	if fs[0].Name() != "C" || fs[1].Name() != "A" {
		t.Errorf("unexpected order: %s, %s", fs[0].Name(), fs[1].Name())
	}
}

func TestProbabilityErrors(t *testing.T) {
	n := networktest.Chain(t)

	if _, err := n.Probability("Z", nil); !errors.Is(err, internalerr.ErrUnknownVariable) {
		t.Errorf("unknown variable: got %v", err)
	}
	if _, err := n.Probability("B", map[string]string{"B": "T"}); !errors.Is(err, internalerr.ErrUnknownVariable) {
		t.Errorf("missing parent: got %v", err)
	}
	if _, err := n.Probability("A", map[string]string{"A": "maybe"}); !errors.Is(err, internalerr.ErrUnknownOutcome) {
		t.Errorf("bad outcome: got %v", err)
	}
}

func TestCheckDistributions(t *testing.T) {
	if err := networktest.Sprinkler(t).CheckDistributions(1e-9); err != nil {
		t.Errorf("sprinkler should be valid: %v", err)
	}

	vars := networktest.ChainVariables()
	vars[1].CPT = []float64{0.8, 0.3, 0.1, 0.9}
	n, err := network.New("bad", vars)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := n.CheckDistributions(1e-9); !errors.Is(err, internalerr.ErrMalformedNetwork) {
		t.Errorf("expected ErrMalformedNetwork, got %v", err)
	}
}
