package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
	"github.com/cognicore/bayesnet/pkg/bayesnet/xmlbif"
)

// Loader loads the network and settings files of a run
type Loader struct {
	NetworkPath  string
	SettingsPath string
}

// Components holds everything a run needs
type Components struct {
	Network  *network.Network
	Settings Settings
}

// Load reads the configured files. The network decoder is chosen by file
// extension: .xml and .xmlbif are XMLBIF, .yaml and .yml the YAML format.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Settings: DefaultSettings()}

	if l.SettingsPath != "" {
		s, err := LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		comp.Settings = s
	}

	if l.NetworkPath == "" {
		return nil, fmt.Errorf("%w: no network file", internalerr.ErrInvalidConfig)
	}
	n, err := LoadNetworkFile(l.NetworkPath)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	comp.Network = n

	return comp, nil
}

// LoadNetworkFile picks a decoder from the extension of path
func LoadNetworkFile(path string) (*network.Network, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".xmlbif":
		return xmlbif.Load(path)
	case ".yaml", ".yml":
		return LoadNetwork(path)
	}
	return nil, fmt.Errorf("%w: unsupported network file %q", internalerr.ErrInvalidConfig, path)
}
