package main

import (
	"context"
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"octsim/app"
	"octsim/entity/format"
	"octsim/entity/mode"
	"octsim/entity/parameters"
)

func main() {
	modeFlag := flag.String("mode", "wavelength",
		"demonstration to run: wavelength, amplitude, phase, propagation, spectrum, coherence, ascan, bscan, visibility, record")
	formatFlag := flag.String("format", "html", "output format: html or csv")
	configFlag := flag.String("config", "", "optional yaml parameters file")
	sourceFlag := flag.String("source", ".", "recording file or directory for visibility mode")
	outputFlag := flag.String("output", "", "output file (default <mode>.<format>)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	m, err := mode.UnmarshalText(*modeFlag)
	if err != nil {
		log.Fatal(err)
	}
	f, err := format.UnmarshalText(*formatFlag)
	if err != nil {
		log.Fatal(err)
	}
	params, err := parameters.Load(*configFlag)
	if err != nil {
		log.Fatal(err)
	}

	output := *outputFlag
	if output == "" {
		if m == mode.Record {
			output = "scan.bin"
		} else {
			output = fmt.Sprintf("%s.%s", m, f)
		}
	}

	if err := app.New(m, *sourceFlag, output, f, params).Run(context.Background()); err != nil {
		log.WithError(err).Fatal("demonstration failed")
	}
}
