// Package networktest provides small reference networks shared by tests.
package networktest

import (
	"testing"

	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

func tf() []string { return []string{"T", "F"} }

// AlarmVariables is the textbook burglary/earthquake alarm network
func AlarmVariables() []network.Variable {
	return []network.Variable{
		{Name: "B", Outcomes: tf(), CPT: []float64{0.001, 0.999}},
		{Name: "E", Outcomes: tf(), CPT: []float64{0.002, 0.998}},
		{Name: "A", Outcomes: tf(), Parents: []string{"E", "B"},
			CPT: []float64{0.95, 0.05, 0.29, 0.71, 0.94, 0.06, 0.001, 0.999}},
		{Name: "J", Outcomes: tf(), Parents: []string{"A"}, CPT: []float64{0.9, 0.1, 0.05, 0.95}},
		{Name: "M", Outcomes: tf(), Parents: []string{"A"}, CPT: []float64{0.7, 0.3, 0.01, 0.99}},
	}
}

// ChainVariables is A -> B -> C with binary outcomes
func ChainVariables() []network.Variable {
	return []network.Variable{
		{Name: "A", Outcomes: tf(), CPT: []float64{0.3, 0.7}},
		{Name: "B", Outcomes: tf(), Parents: []string{"A"}, CPT: []float64{0.8, 0.2, 0.1, 0.9}},
		{Name: "C", Outcomes: tf(), Parents: []string{"B"}, CPT: []float64{0.9, 0.1, 0.2, 0.8}},
	}
}

// SprinklerVariables mixes a three-valued root with two-parent nodes
func SprinklerVariables() []network.Variable {
	return []network.Variable{
		{Name: "Season", Outcomes: []string{"winter", "spring", "summer"}, CPT: []float64{0.3, 0.3, 0.4}},
		{Name: "Rain", Outcomes: []string{"yes", "no"}, Parents: []string{"Season"},
			CPT: []float64{0.6, 0.4, 0.4, 0.6, 0.1, 0.9}},
		{Name: "Sprinkler", Outcomes: []string{"on", "off"}, Parents: []string{"Season"},
			CPT: []float64{0.05, 0.95, 0.3, 0.7, 0.6, 0.4}},
		{Name: "Wet", Outcomes: []string{"wet", "dry"}, Parents: []string{"Sprinkler", "Rain"},
			CPT: []float64{0.99, 0.01, 0.9, 0.1, 0.85, 0.15, 0.02, 0.98}},
		{Name: "Slippery", Outcomes: []string{"yes", "no"}, Parents: []string{"Wet"},
			CPT: []float64{0.7, 0.3, 0.01, 0.99}},
	}
}

// Alarm builds the alarm network or fails the test
func Alarm(t testing.TB) *network.Network {
	return mustBuild(t, "alarm", AlarmVariables())
}

// Chain builds the three-node chain or fails the test
func Chain(t testing.TB) *network.Network {
	return mustBuild(t, "chain", ChainVariables())
}

// Sprinkler builds the sprinkler network or fails the test
func Sprinkler(t testing.TB) *network.Network {
	return mustBuild(t, "sprinkler", SprinklerVariables())
}

func mustBuild(t testing.TB, name string, vars []network.Variable) *network.Network {
	t.Helper()
	n, err := network.New(name, vars)
	if err != nil {
		t.Fatalf("network.New(%s): %v", name, err)
	}
	return n
}
