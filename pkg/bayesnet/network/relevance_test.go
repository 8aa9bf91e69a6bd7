package network_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network/networktest"
)

func TestAncestors(t *testing.T) {
	n := networktest.Alarm(t)

	tests := []struct {
		name string
		want []string
	}{
		{"B", []string{"B"}},
		{"A", []string{"A", "E", "B"}},
		{"J", []string{"J", "A", "E", "B"}},
	}

	for _, tt := range tests {
		got, err := n.Ancestors(tt.name)
		if err != nil {
			t.Fatalf("Ancestors(%s): %v", tt.name, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Ancestors(%s) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestAncestorsSharedParentsVisitedOnce(t *testing.T) {
	n := networktest.Sprinkler(t)

	got, err := n.Ancestors("Slippery")
	if err != nil {
		t.Fatalf("Ancestors: %v", err)
	}
	sort.Strings(got)
	want := []string{"Rain", "Season", "Slippery", "Sprinkler", "Wet"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRelevantUnionInDeclarationOrder(t *testing.T) {
	n := networktest.Alarm(t)

	got, err := n.Relevant("B", "J")
	if err != nil {
		t.Fatalf("Relevant: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "E", "A", "J"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// M is a descendant-only node for this query and must be pruned
	for _, name := range got {
		if name == "M" {
			t.Error("M should be pruned")
		}
	}
}

func TestRelevantChain(t *testing.T) {
	n := networktest.Chain(t)

	got, err := n.Relevant("C", "A")
	if err != nil {
		t.Fatalf("Relevant: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, err = n.Relevant("A")
	if err != nil {
		t.Fatalf("Relevant: %v", err)
	}
	if diff := cmp.Diff([]string{"A"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRelevantUnknown(t *testing.T) {
	n := networktest.Chain(t)

	if _, err := n.Relevant("A", "Q"); !errors.Is(err, internalerr.ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}
