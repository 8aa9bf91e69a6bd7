// Package batch reads query batch files and writes their answers.
//
// A batch file starts with the path of the network file, followed by one
// query line per line: P(B=T|J=T,M=T),2. Blank lines are ignored.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/query"
)

// Entry is one query line of a batch file. Err is set when the line could
// not be parsed; such entries are reported and skipped.
type Entry struct {
	Number int
	Line   query.Line
	Err    error
}

// File is a parsed batch file
type File struct {
	NetworkPath string
	Entries     []Entry
}

// Read parses the batch file at path. A relative network path is resolved
// against the directory of the batch file.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, filepath.Dir(path))
}

// Parse reads a batch file from r, resolving the network path against dir
func Parse(r io.Reader, dir string) (*File, error) {
	scanner := bufio.NewScanner(r)
	out := &File{}
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if out.NetworkPath == "" {
			out.NetworkPath = text
			if !filepath.IsAbs(text) && dir != "" {
				out.NetworkPath = filepath.Join(dir, text)
			}
			continue
		}

		line, err := query.ParseLine(text)
		out.Entries = append(out.Entries, Entry{Number: number, Line: line, Err: err})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	if out.NetworkPath == "" {
		return nil, fmt.Errorf("%w: batch file names no network", internalerr.ErrInvalidConfig)
	}
	return out, nil
}

// Valid returns the entries that parsed
func (f *File) Valid() []Entry {
	var out []Entry
	for _, e := range f.Entries {
		if e.Err == nil {
			out = append(out, e)
		}
	}
	return out
}

// Invalid returns the entries that did not parse
func (f *File) Invalid() []Entry {
	var out []Entry
	for _, e := range f.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Write writes one "<p>,<adds>,<mults>" line per result
func Write(w io.Writer, results []inference.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := bw.WriteString(r.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes results to path, replacing any existing file
func WriteFile(path string, results []inference.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
