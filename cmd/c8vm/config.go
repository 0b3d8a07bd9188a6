package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hexaflex/c8vm/devices/fffe/clock"
	"github.com/hexaflex/c8vm/devices/fffe/display"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program image to load.
	ScaleFactor int    // Amount by which each pixel is scaled.
	Frequency   int    // Instructions per second.
	Seed        int64  // Random seed; 0 selects a time based seed.
	Foreground  int    // Colour of lit pixels, as 24-bit RGB.
	Background  int    // Colour of unlit pixels, as 24-bit RGB.
	StepMode    bool   // Start with execution paused?
	PrintTrace  bool   // Print instruction trace data?
	NoHalt      bool   // Keep running on jumps to self?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Frequency = clock.DefaultFrequency

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.Frequency, "frequency", c.Frequency, "Number of instructions executed per second.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 picks a time based seed.")
	flag.BoolVar(&c.StepMode, "step", c.StepMode, "Start in step mode: execution is paused until resumed or stepped.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.BoolVar(&c.NoHalt, "no-halt", c.NoHalt, "Do not halt when the program jumps to its own address.")
	fg := flag.String("fg", fmt.Sprintf("%06x", display.DefaultForeground), "Colour of lit pixels as hex RGB.")
	bg := flag.String("bg", fmt.Sprintf("%06x", display.DefaultBackground), "Colour of unlit pixels as hex RGB.")
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

	var err error
	if c.Foreground, err = parseColor(*fg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c.Background, err = parseColor(*bg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	return &c
}

// parseColor parses a hex RGB colour, with an optional leading '#'.
func parseColor(v string) (int, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	n, err := strconv.ParseUint(v, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q", v)
	}
	return int(n), nil
}
