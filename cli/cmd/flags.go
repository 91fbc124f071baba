// Package cmd provides CLI commands for the jieba binary.
package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/kokoro-js/jieba/types"
)

// Shared flags for commands that run the install pipeline.
var (
	// ConfigFlag names the optional YAML config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to jieba.yaml config file",
	}

	// DirFlag overrides the artifact install directory.
	DirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Artifact install directory",
	}

	// RegistryFlag overrides the package registry base URL.
	RegistryFlag = &cli.StringFlag{
		Name:  "registry",
		Usage: "Package registry base URL",
	}

	// QuietFlag suppresses the interactive progress display.
	QuietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Suppress the download progress display",
	}
)

// PipelineFlags returns the shared flags for commands that may install
// the artifact.
func PipelineFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		DirFlag,
		RegistryFlag,
		QuietFlag,
	}
}

// Exit codes: one per install-error kind, so hosts scripting the CLI can
// branch without parsing messages.
const (
	exitSuccess             = 0
	exitFailure             = 1
	exitUnsupportedPlatform = 2
	exitRegistry            = 3
	exitDownload            = 4
	exitExtraction          = 5
	exitLoad                = 6
)

// exitCode maps a classified install error to its exit code. Unknown
// errors map to the generic failure code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, types.ErrUnsupportedPlatform):
		return exitUnsupportedPlatform
	case errors.Is(err, types.ErrRegistry):
		return exitRegistry
	case errors.Is(err, types.ErrDownload):
		return exitDownload
	case errors.Is(err, types.ErrExtraction):
		return exitExtraction
	case errors.Is(err, types.ErrLoad):
		return exitLoad
	default:
		return exitFailure
	}
}

// exit wraps err into a cli.Exit carrying the kind's exit code.
func exit(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(err.Error(), exitCode(err))
}
