// Command eqcorr2d is the batch-runner driver for the corr package: the
// role spec.md §1 calls "a small debugging driver that simply invokes the
// public entry point with test inputs", scaled up into a real CLI built on
// the same stack go-musicfox wires for its own settings+flags: koanf for
// config, gookit/gcli for subcommands, golang/glog for logging.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/gookit/gcli/v2"

	"github.com/hash-cad/eqcorr2d/config"
	"github.com/hash-cad/eqcorr2d/corr"
	"github.com/hash-cad/eqcorr2d/corr/matrixio"
	"github.com/hash-cad/eqcorr2d/eqviz"
	"github.com/hash-cad/eqcorr2d/sonify"
)

func main() {
	defer glog.Flush()

	app := gcli.NewApp()
	app.Name = "eqcorr2d"
	app.Version = "0.1.0"
	app.Description = "two-dimensional equality correlation over small byte matrices"

	app.Add(computeCmd())
	app.Add(visualizeCmd())
	app.Add(sonifyCmd())

	app.Run()
}

// runOptions is shared by every subcommand: a config file plus flag
// overrides, config-file-then-flags layering matching go-musicfox's own
// koanf-then-flags precedence.
type runOptions struct {
	configPath          string
	aDir, bDir          string
	r0, r90, r180, r270 bool
	histogram, fullMaps, worst, smart bool
}

func bindRunFlags(c *gcli.Command, o *runOptions) {
	c.StrOpt(&o.configPath, "config", "c", "", "TOML config file describing the run")
	c.StrOpt(&o.aDir, "a-dir", "a", "", "directory of A_list matrices (*.json, *.png)")
	c.StrOpt(&o.bDir, "b-dir", "b", "", "directory of B_list matrices (*.json, *.png)")
	c.BoolOpt(&o.r0, "r0", "", false, "compute the 0 degree rotation")
	c.BoolOpt(&o.r90, "r90", "", false, "compute the 90 degree rotation")
	c.BoolOpt(&o.r180, "r180", "", false, "compute the 180 degree rotation")
	c.BoolOpt(&o.r270, "r270", "", false, "compute the 270 degree rotation")
	c.BoolOpt(&o.histogram, "histogram", "", false, "compute the match-count histogram")
	c.BoolOpt(&o.fullMaps, "full", "", false, "compute the per-pair full result maps")
	c.BoolOpt(&o.worst, "worst", "", false, "track the global worst (maximum) pairs")
	c.BoolOpt(&o.smart, "smart", "", false, "skip quarter rotations for 1-D operands")
}

// resolve merges an optional config file with explicit flags: --a-dir and
// --b-dir replace the configured directories when given, and each boolean
// flag is OR-ed with the config value, so a flag can switch a rotation or
// aggregator on but never off. This matches SPEC_FULL.md's stated
// config/flags layering.
func resolve(o *runOptions) (aList, bList []corr.Matrix, opts corr.Options, err error) {
	run := config.Run{R0: true, Worst: true}
	if o.configPath != "" {
		run, err = config.Load(o.configPath)
		if err != nil {
			return nil, nil, corr.Options{}, err
		}
	}
	if o.aDir != "" {
		run.ADir = o.aDir
	}
	if o.bDir != "" {
		run.BDir = o.bDir
	}
	run.R0 = run.R0 || o.r0
	run.R90 = run.R90 || o.r90
	run.R180 = run.R180 || o.r180
	run.R270 = run.R270 || o.r270
	run.Histogram = run.Histogram || o.histogram
	run.FullMaps = run.FullMaps || o.fullMaps
	run.Worst = run.Worst || o.worst
	run.Smart = run.Smart || o.smart

	if run.ADir == "" || run.BDir == "" {
		return nil, nil, corr.Options{}, fmt.Errorf("eqcorr2d: both --a-dir and --b-dir (or a config file) are required")
	}
	aList, err = matrixio.LoadDir(run.ADir)
	if err != nil {
		return nil, nil, corr.Options{}, err
	}
	bList, err = matrixio.LoadDir(run.BDir)
	if err != nil {
		return nil, nil, corr.Options{}, err
	}
	opts = corr.Options{
		Rotations:   corr.RotationFlags{R0: run.R0, R90: run.R90, R180: run.R180, R270: run.R270},
		Aggregators: corr.AggregatorFlags{Hist: run.Histogram, Full: run.FullMaps, Worst: run.Worst},
		SmartMode:   run.Smart,
	}
	return aList, bList, opts, nil
}

func computeCmd() *gcli.Command {
	o := &runOptions{}
	cmd := &gcli.Command{
		Name:   "compute",
		UseFor: "run a correlation batch and print a summary",
	}
	bindRunFlags(cmd, o)
	cmd.Func = func(c *gcli.Command, args []string) error {
		aList, bList, opts, err := resolve(o)
		if err != nil {
			return err
		}
		result, err := corr.Compute(aList, bList, opts)
		if err != nil {
			return err
		}
		return printSummary(result)
	}
	return cmd
}

func printSummary(result corr.Result) error {
	if result.Histogram != nil {
		fmt.Printf("histogram (%d bins, total %d): %v\n",
			len(result.Histogram.Bins()), result.Histogram.Total(), result.Histogram.Bins())
	}
	if result.Worst != nil {
		fmt.Printf("worst: max=%d pairs=%v\n", result.Worst.MaxVal, result.Worst.Pairs)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, rr := range result.Rotations {
		if !rr.Requested || rr.Cells == nil {
			continue
		}
		for i, row := range rr.Cells {
			for j, m := range row {
				if m == nil {
					continue
				}
				fmt.Printf("full map A[%d] x B[%d]: shape (%d,%d)\n", i, j, m.H, m.W)
			}
		}
	}
	return nil
}

func visualizeCmd() *gcli.Command {
	o := &runOptions{}
	var width, height int
	cmd := &gcli.Command{
		Name:   "visualize",
		UseFor: "run compute and display the resulting full maps as heat maps",
	}
	bindRunFlags(cmd, o)
	cmd.IntOpt(&width, "width", "", 512, "viewer window width")
	cmd.IntOpt(&height, "height", "", 512, "viewer window height")
	cmd.Func = func(c *gcli.Command, args []string) error {
		o.fullMaps = true
		aList, bList, opts, err := resolve(o)
		if err != nil {
			return err
		}
		result, err := corr.Compute(aList, bList, opts)
		if err != nil {
			return err
		}
		var frames []eqviz.Frame
		for _, rr := range result.Rotations {
			if !rr.Requested {
				continue
			}
			for i, row := range rr.Cells {
				for j, m := range row {
					if m == nil {
						continue
					}
					frames = append(frames, eqviz.Frame{
						Title: fmt.Sprintf("A[%d] x B[%d]", i, j),
						Map:   m,
					})
				}
			}
		}
		return eqviz.Show(frames, width, height)
	}
	return cmd
}

func sonifyCmd() *gcli.Command {
	o := &runOptions{}
	cmd := &gcli.Command{
		Name:   "sonify",
		UseFor: "run compute with an audible cue each time the global maximum improves",
	}
	bindRunFlags(cmd, o)
	cmd.Func = func(c *gcli.Command, args []string) error {
		o.worst = true
		aList, bList, opts, err := resolve(o)
		if err != nil {
			return err
		}
		maxPossible := 0
		for _, b := range bList {
			if n := b.H * b.W; n > maxPossible {
				maxPossible = n
			}
		}
		son := sonify.New()
		if err := son.Start(); err != nil {
			return err
		}
		defer son.Stop()
		opts.OnNewMax = son.OnNewMax(maxPossible)

		result, err := corr.Compute(aList, bList, opts)
		if err != nil {
			return err
		}
		return printSummary(result)
	}
	return cmd
}
