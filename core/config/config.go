// Package config holds the shell's on-disk configuration.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

const (
	// ConfigurationName is the file name looked up in the config directory.
	ConfigurationName = "config.yaml"
	// AppLogName is the JSON-lines event log inside the data directory.
	AppLogName = "app.log"
)

// Configuration is the user-editable shell configuration. Flag values
// override fields after loading.
type Configuration struct {
	fs afero.Fs

	// ScriptsPath is the directory scanned for user scripts.
	ScriptsPath string `json:"scripts_path" validate:"required"`
	// DataDir holds the history database and the event log.
	DataDir string `json:"data_dir" validate:"required"`
	// Prompt is printed before each interactive read.
	Prompt string `json:"prompt" validate:"required"`
	// Interpreter is the argv prefix used to run scripts, e.g. ["python3"].
	Interpreter []string `json:"interpreter" validate:"min=1,dive,required"`
	// HistoryFile is the history database name inside DataDir; empty keeps
	// history in memory only.
	HistoryFile string `json:"history_file"`
	// Debug prints the parsed functor tree before evaluating it.
	Debug bool `json:"debug"`
}

// Default returns the configuration used when no config file exists.
func Default() *Configuration {
	return &Configuration{
		fs:          afero.NewOsFs(),
		ScriptsPath: "./scripts",
		DataDir:     ".astro",
		Prompt:      "astro> ",
		Interpreter: []string{"python3"},
		HistoryFile: "history.db",
	}
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// SetFs overrides the filesystem the configuration operates on, mainly for
// tests.
func (c *Configuration) SetFs(fs afero.Fs) {
	c.fs = fs
}

// Fs returns the filesystem the configuration operates on.
func (c *Configuration) Fs() afero.Fs {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	return c.fs
}

// HistoryPath returns the history database path, or "" for in-memory history.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return filepath.Join(c.DataDir, c.HistoryFile)
}

// EnsureDataDir creates the data directory if needed.
func (c *Configuration) EnsureDataDir() error {
	return c.Fs().MkdirAll(c.DataDir, 0700)
}

// OpenAppLog opens the application event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if err := c.EnsureDataDir(); err != nil {
		return nil, err
	}
	return c.Fs().OpenFile(filepath.Join(c.DataDir, AppLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}
