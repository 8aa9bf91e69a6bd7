package xmlbif

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

const chainBIF = `<?xml version="1.0"?>
<BIF VERSION="0.3">
<NETWORK>
<NAME>chain</NAME>
<VARIABLE TYPE="nature">
	<NAME>A</NAME>
	<OUTCOME>T</OUTCOME>
	<OUTCOME>F</OUTCOME>
	<PROPERTY>position = (0, 0)</PROPERTY>
</VARIABLE>
<VARIABLE TYPE="nature">
	<NAME>B</NAME>
	<OUTCOME>T</OUTCOME>
	<OUTCOME>F</OUTCOME>
</VARIABLE>
<DEFINITION>
	<FOR>B</FOR>
	<GIVEN>A</GIVEN>
	<TABLE>
		0.8 0.2
		0.1 0.9
	</TABLE>
</DEFINITION>
<DEFINITION>
	<FOR>A</FOR>
	<TABLE>0.3 0.7</TABLE>
</DEFINITION>
</NETWORK>
</BIF>
`

func TestDecodeMatchesDefinitionsByName(t *testing.T) {
	vars, err := Decode(strings.NewReader(chainBIF))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []network.Variable{
		{Name: "A", Outcomes: []string{"T", "F"}, Parents: []string{}, CPT: []float64{0.3, 0.7}},
		{Name: "B", Outcomes: []string{"T", "F"}, Parents: []string{"A"}, CPT: []float64{0.8, 0.2, 0.1, 0.9}},
	}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLatin1(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?>
<NETWORK>
<VARIABLE><NAME>Temp</NAME><OUTCOME>ni`)
	buf.WriteByte(0xf1) // ñ in Latin-1
	buf.WriteString(`o</OUTCOME><OUTCOME>normal</OUTCOME></VARIABLE>
<DEFINITION><FOR>Temp</FOR><TABLE>0.25 0.75</TABLE></DEFINITION>
</NETWORK>`)

	vars, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := vars[0].Outcomes[0]; got != "niño" {
		t.Errorf("outcome = %q, want niño", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "P(A=T)"},
		{"no variables", "<NETWORK><NAME>x</NAME></NETWORK>"},
		{"missing definition", "<NETWORK><VARIABLE><NAME>A</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE></NETWORK>"},
		{"undeclared definition", `<NETWORK>
			<VARIABLE><NAME>A</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
			<DEFINITION><FOR>A</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>
			<DEFINITION><FOR>Z</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>
		</NETWORK>`},
		{"bad number", `<NETWORK>
			<VARIABLE><NAME>A</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
			<DEFINITION><FOR>A</FOR><TABLE>0.5 half</TABLE></DEFINITION>
		</NETWORK>`},
		{"unclosed", "<NETWORK><VARIABLE><NAME>A</NAME>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc)); !errors.Is(err, internalerr.ErrMalformedNetwork) {
				t.Errorf("expected ErrMalformedNetwork, got %v", err)
			}
		})
	}
}

func TestLoadAlarm(t *testing.T) {
	n, err := Load(filepath.Join("..", "..", "..", "testdata", "alarm", "alarm_net.xml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if n.Name() != "alarm_net" {
		t.Errorf("name = %q", n.Name())
	}
	if diff := cmp.Diff([]string{"E", "B", "A", "J", "M"}, n.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	p, err := n.Probability("A", map[string]string{"A": "T", "E": "T", "B": "F"})
	if err != nil {
		t.Fatalf("Probability: %v", err)
	}
	if p != 0.29 {
		t.Errorf("P(A=T|E=T,B=F) = %v, want 0.29", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}
