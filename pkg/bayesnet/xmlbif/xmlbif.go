// Package xmlbif reads networks in the XMLBIF interchange format.
//
// Both the full <BIF><NETWORK>...</NETWORK></BIF> form and a bare <NETWORK>
// root are accepted. DEFINITION blocks are matched to variables by their FOR
// element, so they may appear in any order.
package xmlbif

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

type variableElem struct {
	Name     string   `xml:"NAME"`
	Outcomes []string `xml:"OUTCOME"`
}

type definitionElem struct {
	For   string   `xml:"FOR"`
	Given []string `xml:"GIVEN"`
	Table string   `xml:"TABLE"`
}

type document struct {
	name        string
	variables   []variableElem
	definitions []definitionElem
}

// Decode reads an XMLBIF document and returns its variables in declaration
// order, ready for network.New.
func Decode(r io.Reader) ([]network.Variable, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}
	return doc.resolve()
}

// Load reads and builds the network stored at path. The network takes the
// NAME of the NETWORK element, or the file name when there is none.
func Load(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	vars, err := doc.resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := doc.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return network.New(name, vars)
}

func decode(r io.Reader) (*document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &document{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedNetwork, err)
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch el.Name.Local {
		case "VARIABLE":
			var v variableElem
			if err := dec.DecodeElement(&v, &el); err != nil {
				return nil, fmt.Errorf("%w: VARIABLE: %v", internalerr.ErrMalformedNetwork, err)
			}
			doc.variables = append(doc.variables, v)
		case "DEFINITION", "PROBABILITY":
			var d definitionElem
			if err := dec.DecodeElement(&d, &el); err != nil {
				return nil, fmt.Errorf("%w: DEFINITION: %v", internalerr.ErrMalformedNetwork, err)
			}
			doc.definitions = append(doc.definitions, d)
		case "NAME":
			// only the NETWORK name is read here, VARIABLE names are consumed above
			var name string
			if err := dec.DecodeElement(&name, &el); err != nil {
				return nil, fmt.Errorf("%w: NAME: %v", internalerr.ErrMalformedNetwork, err)
			}
			if doc.name == "" {
				doc.name = strings.TrimSpace(name)
			}
		}
	}

	if len(doc.variables) == 0 {
		return nil, fmt.Errorf("%w: no VARIABLE elements", internalerr.ErrMalformedNetwork)
	}
	return doc, nil
}

// resolve pairs every variable with its definition
func (d *document) resolve() ([]network.Variable, error) {
	defs := make(map[string]definitionElem, len(d.definitions))
	for _, def := range d.definitions {
		name := strings.TrimSpace(def.For)
		if _, dup := defs[name]; dup {
			return nil, fmt.Errorf("%w: %q defined twice", internalerr.ErrMalformedNetwork, name)
		}
		defs[name] = def
	}

	vars := make([]network.Variable, 0, len(d.variables))
	for _, ve := range d.variables {
		name := strings.TrimSpace(ve.Name)
		def, ok := defs[name]
		if !ok {
			return nil, fmt.Errorf("%w: no DEFINITION for %q", internalerr.ErrMalformedNetwork, name)
		}
		delete(defs, name)

		cpt, err := parseTable(def.Table)
		if err != nil {
			return nil, fmt.Errorf("%w: TABLE of %q: %v", internalerr.ErrMalformedNetwork, name, err)
		}
		vars = append(vars, network.Variable{
			Name:     name,
			Outcomes: trimAll(ve.Outcomes),
			Parents:  trimAll(def.Given),
			CPT:      cpt,
		})
	}

	for _, def := range d.definitions {
		name := strings.TrimSpace(def.For)
		if _, left := defs[name]; left {
			return nil, fmt.Errorf("%w: DEFINITION for undeclared variable %q", internalerr.ErrMalformedNetwork, name)
		}
	}
	return vars, nil
}

func parseTable(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func trimAll(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
