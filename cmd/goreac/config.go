package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config mirrors the command-line flags, so runs can be kept in files and
// repeated. Flags given explicitly in the command line win over the file.
type Config struct {
	Format   string   `yaml:"format,omitempty"`
	Names    []string `yaml:"names,omitempty"`
	Interval int      `yaml:"interval,omitempty"`
	Cpus     int      `yaml:"cpus,omitempty"`
	PBC      bool     `yaml:"pbc,omitempty"`
	Oracle   string   `yaml:"oracle,omitempty"`
	Out      string   `yaml:"out,omitempty"`
	Badger   string   `yaml:"badger,omitempty"`
	Plot     string   `yaml:"plot,omitempty"`
	Top      int      `yaml:"top,omitempty"`
}

func loadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", name, err)
	}
	return c, nil
}

//apply copies the file values into the options, except where the
//corresponding flag was set in the command line.
func (c *Config) apply(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	if c.Format != "" && !f.Changed("format") {
		opts.format = c.Format
	}
	if len(c.Names) > 0 && !f.Changed("names") {
		opts.names = c.Names
	}
	if c.Interval > 0 && !f.Changed("interval") {
		opts.interval = c.Interval
	}
	if c.Cpus > 0 && !f.Changed("cpus") {
		opts.cpus = c.Cpus
	}
	if c.PBC && !f.Changed("pbc") {
		opts.pbc = true
	}
	if c.Oracle != "" && !f.Changed("oracle") {
		opts.oracle = c.Oracle
	}
	if c.Out != "" && !f.Changed("out") {
		opts.out = c.Out
	}
	if c.Badger != "" && !f.Changed("badger") {
		opts.badger = c.Badger
	}
	if c.Plot != "" && !f.Changed("plot") {
		opts.plot = c.Plot
	}
	if c.Top > 0 && !f.Changed("top") {
		opts.top = c.Top
	}
}
