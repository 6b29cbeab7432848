package main

import (
	"fmt"
	"os"

	"github.com/spiffcs/faceless/cmd"
)

// Set via -ldflags at release time.
var (
	version string
	commit  string
	date    string
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
