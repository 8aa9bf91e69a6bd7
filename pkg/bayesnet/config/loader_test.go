package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
)

func TestLoaderPicksDecoderByExtension(t *testing.T) {
	for _, path := range []string{
		filepath.Join("..", "..", "..", "testdata", "alarm", "alarm_net.xml"),
		filepath.Join("..", "..", "..", "testdata", "chain", "chain.yaml"),
	} {
		loader := Loader{NetworkPath: path}
		comp, err := loader.Load()
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if comp.Network == nil || comp.Network.Len() == 0 {
			t.Errorf("%s: empty network", path)
		}
		if comp.Settings != DefaultSettings() {
			t.Errorf("%s: expected default settings, got %+v", path, comp.Settings)
		}
	}
}

func TestLoaderWithSettings(t *testing.T) {
	loader := Loader{
		NetworkPath:  filepath.Join("..", "..", "..", "testdata", "chain", "chain.yaml"),
		SettingsPath: writeFile(t, "settings.yaml", "workers: 2\noutput: answers.txt\n"),
	}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Settings.Workers != 2 || comp.Settings.Output != "answers.txt" {
		t.Errorf("settings not applied: %+v", comp.Settings)
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		loader Loader
	}{
		{"no network", Loader{}},
		{"unknown extension", Loader{NetworkPath: "network.json"}},
		{"missing settings", Loader{NetworkPath: "x.yaml", SettingsPath: "/nonexistent/settings.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.loader.Load(); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := (&Loader{NetworkPath: "network.json"}).Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
