// Package config loads the optional defaults file. A missing file is
// normal; a malformed one is reported as a warning and ignored so a bad
// rc file can never brick the tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mqtools/mqctl/internal/mqueue"
	"github.com/mqtools/mqctl/internal/opts"
)

// DefaultMqueuePath is where the kernel's mqueue filesystem is
// conventionally mounted.
const DefaultMqueuePath = "/dev/mqueue"

type Config struct {
	Defaults Defaults `yaml:"defaults"`
}

type Defaults struct {
	Mode       string `yaml:"mode"` // octal string, e.g. "0644"
	Priority   *int   `yaml:"priority"`
	Block      *bool  `yaml:"block"`
	MqueuePath string `yaml:"mqueue_path"`
}

// Path resolves the defaults file location: $MQCTL_CONFIG wins, then
// ~/.mqctlrc. Empty means no file to read.
func Path() string {
	if p := os.Getenv("MQCTL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mqctlrc")
}

// Load reads and parses the defaults file at path. A missing file
// yields a zero Config and no error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Apply seeds a Request with the file's defaults. Explicit command-line
// options parse afterwards and override anything set here; the mode
// default deliberately does not mark SetMode, so an rc-file mode never
// triggers a chmod on an existing queue by itself.
func (c Config) Apply(r *opts.Request) error {
	d := c.Defaults
	if d.Mode != "" {
		value, err := strconv.ParseUint(d.Mode, 8, 32)
		if err != nil || value == 0 || value >= 0o10000 {
			return fmt.Errorf("defaults.mode [%s] is not a sane octal mode", d.Mode)
		}
		r.Mode = uint32(value)
	}
	if d.Priority != nil {
		if *d.Priority < 0 || *d.Priority >= mqueue.PrioMax {
			return fmt.Errorf("defaults.priority [%d] outside [0, %d)", *d.Priority, mqueue.PrioMax)
		}
		r.Priority = uint(*d.Priority)
	}
	if d.Block != nil {
		r.Block = *d.Block
	}
	return nil
}

// MqueuePath returns the configured mqueue mount, or the conventional
// default.
func (c Config) MqueuePath() string {
	if c.Defaults.MqueuePath != "" {
		return c.Defaults.MqueuePath
	}
	return DefaultMqueuePath
}
