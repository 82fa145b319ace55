package main

import (
	"flag"
	"fmt"
	"os"

	"giftdrip/internal/di"
	"giftdrip/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the yaml configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "giftdrip: %s\n", err)
		os.Exit(1)
	}
}
