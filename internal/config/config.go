// Package config loads and saves user preferences for the countdown app.
// Only preferences live here; timer state is never persisted.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/picker"
	"github.com/ensigniasec/countdown/internal/validate"
)

// DefaultPath is where preferences live unless --config overrides it.
const DefaultPath = "~/.config/countdown/config.yaml"

// Data represents the structure of the config file.
type Data struct {
	DefaultMinutes int    `yaml:"default_minutes" validate:"min=0,max=60"`
	DefaultSeconds int    `yaml:"default_seconds" validate:"min=0,max=59"`
	LogLevel       string `yaml:"log_level,omitempty" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`
}

// Selection returns the configured initial picker selection.
func (d Data) Selection() picker.Selection {
	return picker.Selection{Minutes: d.DefaultMinutes, Seconds: d.DefaultSeconds}
}

// Config handles the loading and saving of the config file.
type Config struct {
	Path string
	Data Data
}

func defaultData() Data {
	def := picker.Default()
	return Data{DefaultMinutes: def.Minutes, DefaultSeconds: def.Seconds}
}

// New creates a Config backed by path, loading it if the file exists.
func New(path string) (*Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	if err := validate.Var(expandedPath, "required"); err != nil {
		return nil, fmt.Errorf("config path: %s", validate.Describe(err))
	}
	c := &Config{Path: expandedPath, Data: defaultData()}

	if err := c.Load(); err != nil {
		// A missing file just means defaults.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return c, nil
}

// NewDefault returns a Config backed by path holding default preferences,
// without reading the file. Saving it overwrites whatever the file contains.
func NewDefault(path string) (*Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	if err := validate.Var(expandedPath, "required"); err != nil {
		return nil, fmt.Errorf("config path: %s", validate.Describe(err))
	}
	return &Config{Path: expandedPath, Data: defaultData()}, nil
}

// NewOrExisting returns the existing config if the file exists, or creates it with defaults.
func NewOrExisting(path string) (*Config, error) {
	c, err := New(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(c.Path); os.IsNotExist(err) {
		if err := c.Save(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config file, healing invalid values back to defaults.
func (c *Config) Load() error {
	logrus.Debug("Loading config file from: ", c.Path)
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	data := defaultData()
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse %s: %w", c.Path, err)
	}
	c.Data = data

	if err := validate.Struct(c.Data); err != nil {
		logrus.Warnf("Invalid config values (%s); restoring defaults.", validate.Describe(err))
		def := defaultData()
		if validate.Var(c.Data.DefaultMinutes, "min=0,max=60") != nil {
			c.Data.DefaultMinutes = def.DefaultMinutes
		}
		if validate.Var(c.Data.DefaultSeconds, "min=0,max=59") != nil {
			c.Data.DefaultSeconds = def.DefaultSeconds
		}
		if validate.Var(c.Data.LogLevel, "omitempty,oneof=panic fatal error warn warning info debug trace") != nil {
			c.Data.LogLevel = ""
		}
		return c.Save()
	}
	return nil
}

// Save writes the config data to the file.
func (c *Config) Save() error {
	logrus.Debug("Saving config file to: ", c.Path)
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c.Data)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, data, 0o600)
}

// SetDefault stores sel as the initial picker selection and saves.
func (c *Config) SetDefault(sel picker.Selection) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	c.Data.DefaultMinutes = sel.Minutes
	c.Data.DefaultSeconds = sel.Seconds
	return c.Save()
}

// Reset restores every preference to its default and saves.
func (c *Config) Reset() error {
	c.Data = defaultData()
	return c.Save()
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
