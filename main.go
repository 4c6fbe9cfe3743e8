package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/lehigh-university-libraries/tropy-archive/cmd"
	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
)

func main() {
	root := cmd.NewRootCmd()

	// Use fang for completions, manpages, --version and signal handling
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(archive.Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
