package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
)

// NetworkFile is the YAML network format
type NetworkFile struct {
	Name      string         `yaml:"name"`
	Variables []VariableFile `yaml:"variables"`
}

// VariableFile is one variable of a YAML network.
// Table is laid out like an XMLBIF TABLE: the variable's own outcome varies
// fastest, then the last parent, then the one before it.
type VariableFile struct {
	Name     string    `yaml:"name"`
	Outcomes []string  `yaml:"outcomes"`
	Parents  []string  `yaml:"parents"`
	Table    []float64 `yaml:"table"`
}

// LoadNetwork loads a network from a YAML file
func LoadNetwork(path string) (*network.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nf NetworkFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedNetwork, err)
	}
	if nf.Name == "" {
		nf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return nf.Build()
}

// Build validates the file contents and constructs the network
func (nf *NetworkFile) Build() (*network.Network, error) {
	if len(nf.Variables) == 0 {
		return nil, fmt.Errorf("%w: no variables", internalerr.ErrMalformedNetwork)
	}
	vars := make([]network.Variable, len(nf.Variables))
	for i, v := range nf.Variables {
		vars[i] = network.Variable{
			Name:     v.Name,
			Outcomes: v.Outcomes,
			Parents:  v.Parents,
			CPT:      v.Table,
		}
	}
	return network.New(nf.Name, vars)
}

// EncodeNetwork renders n in the YAML network format
func EncodeNetwork(n *network.Network) ([]byte, error) {
	nf := NetworkFile{Name: n.Name()}
	for _, v := range n.Variables() {
		nf.Variables = append(nf.Variables, VariableFile{
			Name:     v.Name,
			Outcomes: v.Outcomes,
			Parents:  v.Parents,
			Table:    v.CPT,
		})
	}
	return yaml.Marshal(&nf)
}

// Settings are the run settings of the command line tool
type Settings struct {
	Workers          int    `yaml:"workers"`
	Output           string `yaml:"output"`
	Store            string `yaml:"store"`
	LogLevel         string `yaml:"log_level"`
	DefaultAlgorithm int    `yaml:"default_algorithm"`
}

// DefaultSettings returns the settings used when no file is given
func DefaultSettings() Settings {
	return Settings{
		Workers:          4,
		Output:           "output.txt",
		LogLevel:         "info",
		DefaultAlgorithm: 3,
	}
}

// LoadSettings loads settings from a YAML file. Fields missing from the
// file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks value ranges
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", internalerr.ErrInvalidConfig, s.Workers)
	}
	if s.DefaultAlgorithm < 1 || s.DefaultAlgorithm > 3 {
		return fmt.Errorf("%w: default_algorithm must be 1, 2 or 3, got %d", internalerr.ErrInvalidConfig, s.DefaultAlgorithm)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", internalerr.ErrInvalidConfig, s.LogLevel)
	}
	return nil
}
