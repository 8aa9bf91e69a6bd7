// Package query parses the textual query notation P(Q=v|E1=v1,E2=v2) and
// the batch-file lines that pair a query with an algorithm number.
package query

import (
	"fmt"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

// Line is one parsed batch line
type Line struct {
	Query     inference.Query
	Algorithm inference.Algorithm
	Raw       string
}

// Parse reads "P(B=T|J=T,M=T)". Evidence is optional: "P(B=T)".
func Parse(s string) (inference.Query, error) {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "P(") || !strings.HasSuffix(text, ")") {
		return inference.Query{}, fmt.Errorf("%w: %q is not of the form P(...)", internalerr.ErrInvalidQuery, s)
	}
	body := text[2 : len(text)-1]

	head, tail, hasEvidence := strings.Cut(body, "|")
	target, value, err := pair(head)
	if err != nil {
		return inference.Query{}, fmt.Errorf("%w in %q", err, s)
	}

	q := inference.Query{Target: target, Value: value}
	if !hasEvidence {
		return q, nil
	}
	for _, part := range strings.Split(tail, ",") {
		name, val, err := pair(part)
		if err != nil {
			return inference.Query{}, fmt.Errorf("%w in %q", err, s)
		}
		q.Evidence = append(q.Evidence, inference.Observation{Variable: name, Value: val})
	}
	return q, nil
}

// ParseLine reads "P(B=T|J=T,M=T),2": a query followed by the algorithm
// number after the last comma.
func ParseLine(s string) (Line, error) {
	raw := strings.TrimSpace(s)
	idx := strings.LastIndex(raw, ",")
	if idx < 0 {
		return Line{}, fmt.Errorf("%w: %q has no algorithm", internalerr.ErrInvalidAlgorithm, s)
	}

	q, err := Parse(raw[:idx])
	if err != nil {
		return Line{}, err
	}
	algo, err := inference.ParseAlgorithm(raw[idx+1:])
	if err != nil {
		return Line{}, err
	}
	return Line{Query: q, Algorithm: algo, Raw: raw}, nil
}

func pair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" || strings.Contains(value, "=") {
		return "", "", fmt.Errorf("%w: bad assignment %q", internalerr.ErrInvalidQuery, s)
	}
	return name, value, nil
}
