package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	reac "github.com/rmera/goreac"
	"github.com/rmera/goreac/bonder"
	"github.com/rmera/goreac/report"
	"github.com/rmera/goreac/sink"
	"github.com/rmera/goreac/traj/lammpsdump"
	"github.com/rmera/goreac/traj/reaxbond"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.Red("goreac: %s", err)
		os.Exit(1)
	}
}

type options struct {
	format   string
	names    []string
	interval int
	cpus     int
	pbc      bool
	oracle   string
	out      string
	badger   string
	plot     string
	top      int
	config   string
	verbose  bool
}

func newRootCommand() *cobra.Command {
	opts := new(options)
	cmd := &cobra.Command{
		Use:   "goreac <trajectory>",
		Short: "goreac detects the molecular species along reactive MD trajectories",
		Long: `goreac reads a reactive molecular-dynamics trajectory, splits each
timestep into its molecules, and writes a catalog with every distinct
species found: its canonical key, the bonds of its first occurrence and
the compressed list of the steps where it shows up.

Bond-order files ("bond") carry their own connectivity. Position-only
dump files ("dump") get their bonds from a bonding oracle, either the
built-in covalent-radii one or OpenBabel.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "bond", `trajectory format, "bond" or "dump"`)
	f.StringSliceVarP(&opts.names, "names", "n", nil, "element symbol for each atom type, in order (needed for dump files)")
	f.IntVarP(&opts.interval, "interval", "i", 1, "process one timestep every this many")
	f.IntVarP(&opts.cpus, "cpus", "c", 0, "goroutines for parsing, 0 means one per CPU")
	f.BoolVar(&opts.pbc, "pbc", false, "look for bonds across the periodic boundaries (dump only)")
	f.StringVar(&opts.oracle, "oracle", "covalent", `bonding oracle for dump files, "covalent" or "babel"`)
	f.StringVarP(&opts.out, "out", "o", "", "catalog file to write, empty for a temporary one")
	f.StringVar(&opts.badger, "badger", "", "write the catalog to a Badger database in this directory instead of a file")
	f.StringVar(&opts.plot, "plot", "", "write a population plot to this file")
	f.IntVar(&opts.top, "top", 10, "species to show in the summary")
	f.StringVar(&opts.config, "config", "", "YAML file with the run parameters")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func run(cmd *cobra.Command, opts *options, file string) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if opts.config != "" {
		conf, err := loadConfig(opts.config)
		if err != nil {
			return err
		}
		conf.apply(cmd, opts)
	}
	traj, err := openTraj(opts, file)
	if err != nil {
		return err
	}
	defer traj.Close()
	o := reac.DefaultOptions()
	if opts.cpus > 0 {
		o.Cpus(opts.cpus)
	}
	if opts.interval > 0 {
		o.Interval(opts.interval)
	}
	slog.Info("reading trajectory", "file", file, "format", opts.format, "cpus", o.Cpus(), "interval", o.Interval())
	t, err := reac.Detect(traj, o)
	if err != nil {
		return err
	}
	slog.Info("detection done", "steps", t.Steps(), "species", t.Molecules())
	var s reac.Sink
	loc := ""
	if opts.badger != "" {
		b, err := sink.NewBadger(opts.badger)
		if err != nil {
			return err
		}
		s = b
		loc = opts.badger
	} else {
		f, err := sink.NewFile(opts.out)
		if err != nil {
			return err
		}
		s = f
		loc = f.Name()
	}
	if err := t.Save(s, o.Cpus()); err != nil {
		s.Close()
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	if opts.plot != "" {
		if err := report.Series(t).Plot(opts.plot); err != nil {
			return err
		}
		slog.Info("population plot written", "file", opts.plot)
	}
	summary(t, opts, loc)
	return nil
}

func openTraj(opts *options, file string) (reac.Traj, error) {
	switch opts.format {
	case "bond":
		return reaxbond.New(file)
	case "dump":
		if len(opts.names) == 0 {
			return nil, fmt.Errorf("dump trajectories need --names with one element symbol per atom type")
		}
		b, err := oracle(opts.oracle)
		if err != nil {
			return nil, err
		}
		return lammpsdump.New(file, opts.names, b, opts.pbc)
	}
	return nil, fmt.Errorf("unknown trajectory format %q", opts.format)
}

func oracle(name string) (reac.Bonder, error) {
	switch name {
	case "covalent":
		return bonder.NewCovalent(), nil
	case "babel":
		return bonder.NewBabel()
	}
	return nil, fmt.Errorf("unknown bonding oracle %q", name)
}

func summary(t *reac.Timeline, opts *options, loc string) {
	color.Green("✓ %d species in %d processed steps", t.Molecules(), t.Steps())
	color.Green("✓ Catalog written to %s", loc)
	top := report.Top(t, opts.top)
	if len(top) == 0 {
		return
	}
	fmt.Println("Most frequent species:")
	for _, c := range top {
		name := reac.KeyFormula(c.Key, opts.names)
		if name == "" {
			name = fmt.Sprintf("%x", string(c.Key))
		}
		fmt.Printf("  %-20s %6d occurrences in %5d steps\n", name, c.Total, c.Steps)
	}
}
