package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// banner is the ASCII art logo printed on startup unless --no-banner was
// given.
const banner = `
   _____      _   _
  |  ___|__ _| |_| |__   ___  _ __ ___
  | |_ / _' | __| '_ \ / _ \| '_ ' _ \
  |  _| (_| | |_| | | | (_) | | | | | |
  |_|  \__,_|\__|_| |_|\___/|_| |_| |_|
`

const (
	version     = "v0.1.0"
	description = "Concurrent directory, DNS, vhost, and fuzz enumeration"
)

func printBanner() {
	fprintBanner(color.Output)
}

func fprintBanner(out io.Writer) {
	g := color.New(color.FgHiGreen)
	b := color.New(color.FgHiBlue)

	g.Fprintln(out, banner)
	fmt.Fprintln(out, description)
	b.Fprintf(out, "%s\n\n", version)
}
