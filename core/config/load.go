package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration from the given directory, applying defaults
// for unset fields. A missing config file yields the default configuration.
func Load(aferoFs afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	out := Default()
	out.fs = aferoFs

	contents, err := afero.ReadFile(aferoFs, filepath.Join(path, ConfigurationName))
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Write serializes the configuration to config.yaml under the directory.
func Write(aferoFs afero.Fs, path string, c *Configuration) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := aferoFs.MkdirAll(path, 0755); err != nil {
		return err
	}
	return afero.WriteFile(aferoFs, filepath.Join(path, ConfigurationName), data, 0644)
}
