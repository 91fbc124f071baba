package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kokoro-js/jieba/cli/config"
	"github.com/kokoro-js/jieba/cli/tui"
	"github.com/kokoro-js/jieba/fetch"
	"github.com/kokoro-js/jieba/service"
)

// InstallCommand returns the install command.
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:   "install",
		Usage:  "Resolve, download, and load the native segmentation module",
		Flags:  PipelineFlags(),
		Action: installAction,
	}
}

func installAction(c *cli.Context) error {
	svc, ui, _, err := buildService(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	run := func() error { return svc.Start(c.Context) }
	if ui != nil {
		err = ui.Run(run)
	} else {
		err = run()
	}
	if err != nil {
		return exit(err)
	}

	fmt.Fprintf(c.App.Writer, "installed %s at %s\n", svc.ArtifactID(), svc.ModulePath())
	return nil
}

// buildService merges the config file and flags into a service. The
// returned UI is non-nil when a progress display should wrap Start.
func buildService(c *cli.Context) (*service.Service, *tui.DownloadUI, *config.Config, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, nil, err
		}
		cfg = loaded
	}

	installDir := cfg.InstallDir
	if c.String("dir") != "" {
		installDir = c.String("dir")
	}
	if installDir == "" {
		installDir = config.DefaultInstallDir
	}

	registryURL := cfg.Registry
	if c.String("registry") != "" {
		registryURL = c.String("registry")
	}

	var ui *tui.DownloadUI
	var progress fetch.Progress
	if !c.Bool("quiet") {
		ui = tui.NewDownloadUI("downloading segmentation module")
		progress = ui
	}

	svc := service.New(service.Config{
		InstallDir:     installDir,
		RegistryURL:    registryURL,
		ExtractTimeout: cfg.ExtractTimeout.Duration,
		Progress:       progress,
	}, nil)

	return svc, ui, cfg, nil
}

// loadDictionaries applies the optional dictionaries named in the config
// file to a ready service.
func loadDictionaries(cfg *config.Config, svc *service.Service) error {
	if cfg.Dict != "" {
		data, err := os.ReadFile(cfg.Dict)
		if err != nil {
			return fmt.Errorf("read dict: %w", err)
		}
		if err := svc.LoadDictionary(data); err != nil {
			return err
		}
	}
	if cfg.IDFDict != "" {
		data, err := os.ReadFile(cfg.IDFDict)
		if err != nil {
			return fmt.Errorf("read idf dict: %w", err)
		}
		if err := svc.LoadTFIDFDictionary(data); err != nil {
			return err
		}
	}
	return nil
}
