package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/c8vm/devices/fffe/clock"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program image to load.
	Snapshot    string // Path to write a PNG of the final display to.
	LogFile     string // Path to write log output to.
	Frequency   int    // Instructions per second.
	Steps       int    // Run this many steps without a terminal, then exit.
	ScaleFactor int    // Pixel scale factor for snapshots.
	Seed        int64  // Random seed; 0 selects a time based seed.
	PrintTrace  bool   // Print instruction trace data?
	NoHalt      bool   // Keep running on jumps to self?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Frequency = clock.DefaultFrequency
	c.ScaleFactor = 10

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Frequency, "frequency", c.Frequency, "Number of instructions executed per second.")
	flag.IntVar(&c.Steps, "steps", c.Steps, "Run headless for the given number of steps, print the display and exit.")
	flag.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "Write the final display contents to this PNG file.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for snapshots.")
	flag.StringVar(&c.LogFile, "log", c.LogFile, "Write log output to this file. Interactive sessions discard it otherwise.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 picks a time based seed.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Log instruction trace data.")
	flag.BoolVar(&c.NoHalt, "no-halt", c.NoHalt, "Do not halt when the program jumps to its own address.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
