// cfrtrain trains a CFR strategy for Kuhn poker and reports
// exploitability as it converges.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	cfr "github.com/equilibre-games/go-cfr"
	"github.com/equilibre-games/go-cfr/kuhn"
	"github.com/equilibre-games/go-cfr/tree"
)

type config struct {
	Iterations         int   `yaml:"iterations"`
	AlternatingUpdates bool  `yaml:"alternating_updates"`
	RegretMatchingPlus bool  `yaml:"regret_matching_plus"`
	LinearAveraging    bool  `yaml:"linear_averaging"`
	AveragingDelay     int   `yaml:"averaging_delay"`
	Seed               int64 `yaml:"seed"`
}

func main() {
	configFile := flag.String("config", "", "Optional YAML config file; explicit flags override it")
	iterations := flag.Int("iter", 10000, "Number of CFR iterations to run")
	alternating := flag.Bool("alternating", true, "Alternate single-player updates instead of simultaneous passes")
	plus := flag.Bool("plus", true, "Use regret matching+ (CFR+)")
	linear := flag.Bool("linear", true, "Use linear averaging of the strategy sum")
	delay := flag.Int("delay", 0, "Iterations to exclude from the average under linear averaging")
	seed := flag.Int64("seed", 123, "Random seed for action sampling")
	out := flag.String("out", "", "Optional path to save the trained solver")
	flag.Parse()

	cfg := config{
		Iterations:         *iterations,
		AlternatingUpdates: *alternating,
		RegretMatchingPlus: *plus,
		LinearAveraging:    *linear,
		AveragingDelay:     *delay,
		Seed:               *seed,
	}

	if *configFile != "" {
		buf, err := os.ReadFile(*configFile)
		if err != nil {
			glog.Exitf("Failed to read config %v: %v", *configFile, err)
		}

		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			glog.Exitf("Failed to parse config %v: %v", *configFile, err)
		}

		// Flags given explicitly on the command line win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "iter":
				cfg.Iterations = *iterations
			case "alternating":
				cfg.AlternatingUpdates = *alternating
			case "plus":
				cfg.RegretMatchingPlus = *plus
			case "linear":
				cfg.LinearAveraging = *linear
			case "delay":
				cfg.AveragingDelay = *delay
			case "seed":
				cfg.Seed = *seed
			}
		})
	}

	game := kuhn.NewGame()
	solver := cfr.New(game, cfr.Params{
		AlternatingUpdates: cfg.AlternatingUpdates,
		RegretMatchingPlus: cfg.RegretMatchingPlus,
		LinearAveraging:    cfg.LinearAveraging,
		AveragingDelay:     cfg.AveragingDelay,
		Seed:               cfg.Seed,
	})

	glog.Infof("Game tree has %d nodes (%d terminal)",
		tree.CountNodes(game.RootNode()), tree.CountTerminalNodes(game.RootNode()))
	glog.Infof("Training for %d iterations over %d information states",
		cfg.Iterations, solver.NumInfoStates())

	logEvery := cfg.Iterations / 10
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 1; i <= cfg.Iterations; i++ {
		solver.RunIteration()
		if i%logEvery == 0 {
			avg := solver.Finalize()
			glog.Infof("[iter=%d] exploitability=%.5f game value=%.5f",
				i, cfr.Exploitability(game, avg), cfr.ExpectedValue(game, avg, 0))
		}
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			glog.Exitf("Failed to create %v: %v", *out, err)
		}

		if err := solver.MarshalTo(f); err != nil {
			glog.Exitf("Failed to save solver: %v", err)
		}

		if err := f.Close(); err != nil {
			glog.Exitf("Failed to close %v: %v", *out, err)
		}

		glog.Infof("Saved solver to %v", *out)
	}
}
