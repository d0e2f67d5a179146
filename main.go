// Package main is the entry point for the datagrid terminal application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/zjrosen/datagrid/cmd"
)

// Set via -ldflags at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cmd.SetVersion(versionString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// versionString prefers ldflags and falls back to the module build info
// that `go install` records.
func versionString() string {
	if version != "" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "dev"
	}
	v := info.Main.Version
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			v += " (commit: " + s.Value[:7] + ")"
		}
	}
	return v
}
