// Package main provides the jieba CLI entrypoint.
//
// Usage:
//
//	jieba <command> [options]
//
// Exit codes: 0 success, 1 generic failure, then one code per install
// failure kind (2 unsupported platform, 3 registry, 4 download,
// 5 extraction, 6 load).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kokoro-js/jieba/cli/cmd"
	"github.com/kokoro-js/jieba/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "jieba",
		Usage:          "Chinese text segmentation backed by a prebuilt native module",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.InstallCommand(),
			cmd.SegmentCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled cli.ExitCoder errors; this
		// branch covers unexpected errors that were not wrapped.
		os.Exit(1)
	}
}

// exitErrHandler preserves the per-kind exit codes carried by cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
