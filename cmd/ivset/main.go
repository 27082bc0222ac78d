// Command ivset evaluates interval set expressions and reports on the pools
// defined in a config file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/attic-labs/kingpin"
	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/henderiw/intervalset/pkg/config"
	"github.com/henderiw/intervalset/pkg/intervalset"
	"github.com/pterm/pterm"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/klog/v2"
)

func main() {
	app := kingpin.New("ivset", "Interval sets of 32-bit identifiers.")
	app.HelpFlag.Short('h')
	configPath := app.Flag("config", "YAML file with named sets and pools").String()
	verbosity := app.Flag("verbosity", "log verbosity").Short('v').Default("0").Int()

	evalCmd := app.Command("eval", "combine two sets, operands are notation strings or @name")
	evalOp := evalCmd.Arg("op", "operator").Required().Enum(operatorNames()...)
	evalLeft := evalCmd.Arg("left", "left operand").Required().String()
	evalRight := evalCmd.Arg("right", "right operand").Required().String()

	statsCmd := app.Command("stats", "show the intervals, bounds and size of a set")
	statsSet := statsCmd.Arg("set", "notation string or @name").Required().String()

	poolsCmd := app.Command("pools", "claim the configured ids and show what is free in every pool")
	poolsSelector := poolsCmd.Flag("selector", "list the claims matching a label selector, e.g. tenant=red").String()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	log := newLogger(*verbosity)
	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fail(err)
		}
		log.V(1).Info("config loaded", "path", *configPath, "sets", len(cfg.Sets), "pools", len(cfg.Pools))
	}

	switch cmd {
	case evalCmd.FullCommand():
		s, err := evaluate(*evalOp, *evalLeft, *evalRight, cfg)
		if err != nil {
			fail(err)
		}
		log.V(1).Info("eval", "op", *evalOp, "intervals", s.Len())
		pterm.Println(s.String())
	case statsCmd.FullCommand():
		s, err := operand(*statsSet, cfg)
		if err != nil {
			fail(err)
		}
		printStats(s)
	case poolsCmd.FullCommand():
		if cfg == nil {
			fail(fmt.Errorf("pools needs --config"))
		}
		var selector labels.Selector
		if *poolsSelector != "" {
			var err error
			selector, err = labels.Parse(*poolsSelector)
			if err != nil {
				fail(err)
			}
		}
		pools, err := buildPools(cfg, selector, log)
		for _, p := range pools {
			printPool(p)
		}
		if err != nil {
			fail(err)
		}
	}
}

func newLogger(verbosity int) logr.Logger {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("v", strconv.Itoa(verbosity))
	return klog.NewKlogr()
}

func fail(err error) {
	pterm.Error.Println(err.Error())
	os.Exit(1)
}

func printStats(s *intervalset.IntervalSet) {
	if s.IsEmpty() {
		pterm.Info.Println("empty set")
		return
	}
	bounds, _ := s.Bounds()
	largest, _ := s.Max()
	pterm.Info.Println(fmt.Sprintf("%d intervals, %s ids, bounds %s, largest %s",
		s.Len(), humanize.Comma(int64(s.Size())), bounds, largest))

	ll := pterm.LeveledList{}
	for i := range s.All() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: i.String()})
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: humanize.Comma(int64(i.RangeSize()))})
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func printPool(p poolStatus) {
	pterm.Success.Println(fmt.Sprintf("%s (%s): %s claimed", p.name, p.kind, humanize.Comma(int64(p.claimed))))
	ll := pterm.LeveledList{}
	for _, f := range p.free {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: f})
	}
	if len(ll) == 0 {
		pterm.Println("  no free ids")
	} else {
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	}
	for _, m := range p.matched {
		pterm.Info.Println(m)
	}
}
