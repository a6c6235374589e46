// Command gizmoreplay replays a recorded pointer script against a gizmo
// without opening a window and prints every transform change.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/gizmo"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (required)")
	configPath := flag.String("config", "", "Gizmo config YAML file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: gizmoreplay -scenario <file.yaml> [-config <gizmo.yaml>] [-debug]\n")
		os.Exit(2)
	}

	logger := gizmo.NewDefaultLogger("gizmoreplay", *debug)

	cfg := gizmo.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = gizmo.LoadConfig(*configPath); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}

	s, err := LoadScenario(*scenarioPath)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	final, err := Replay(s, cfg, logger, os.Stdout)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	logger.Infof("final %s", formatTransform(final))
}
