// Package service owns the startup pipeline for the native segmentation
// module and forwards segmentation calls to it once loaded.
//
// One service instance owns one install directory. The local-presence
// check that skips the download is not atomic with the write that
// follows it, so two instances must never share a directory.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/kokoro-js/jieba/archive"
	"github.com/kokoro-js/jieba/fetch"
	"github.com/kokoro-js/jieba/log"
	"github.com/kokoro-js/jieba/nativemod"
	"github.com/kokoro-js/jieba/platform"
	"github.com/kokoro-js/jieba/registry"
	"github.com/kokoro-js/jieba/types"
)

// State is the startup pipeline state. One pass per process start; a
// terminal failure lands in StateFailed with no automatic retry.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateResolving     State = "resolving"
	StateDownloading   State = "downloading"
	StateExtracting    State = "extracting"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// Locator resolves an artifact to its download location.
type Locator interface {
	Locate(ctx context.Context, id types.ArtifactID) (registry.Location, error)
}

// Downloader streams a remote archive into a directory.
type Downloader interface {
	Fetch(ctx context.Context, url, destDir string) (types.DownloadReport, error)
}

// Extractor unpacks a fetched archive in place.
type Extractor func(ctx context.Context, archivePath string) error

// Config configures one service instance.
type Config struct {
	// InstallDir is where the artifact tree lives. Created, including
	// parents, before the first download. Required.
	InstallDir string
	// RegistryURL overrides the package registry base URL.
	RegistryURL string
	// ExtractTimeout bounds the unpack stage. Zero means
	// archive.DefaultTimeout.
	ExtractTimeout time.Duration
	// Progress receives download progress. Optional.
	Progress fetch.Progress
}

// Service is the long-lived facade the host manages. Construct with New,
// run Start once, then call the segmentation API.
type Service struct {
	cfg    Config
	logger *log.Logger

	// Ports, replaceable in tests.
	prober    platform.LibcProber
	locator   Locator
	fetcher   Downloader
	extractor Extractor
	loader    nativemod.Loader
	osName    string
	archName  string

	state  State
	key    types.PlatformKey
	id     types.ArtifactID
	module *nativemod.Module
}

// New creates a service with production ports. A nil logger logs to
// stderr with the install directory as context.
func New(cfg Config, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(cfg.InstallDir)
	}
	return &Service{
		cfg:       cfg,
		logger:    logger,
		prober:    &platform.HostProber{},
		locator:   registry.New(cfg.RegistryURL),
		fetcher:   fetch.New(cfg.Progress),
		extractor: archive.Extract,
		loader:    &nativemod.PluginLoader{},
		osName:    runtime.GOOS,
		archName:  runtime.GOARCH,
		state:     StateUninitialized,
	}
}

// State returns the current pipeline state.
func (s *Service) State() State { return s.state }

// ArtifactID returns the resolved artifact, empty before resolution.
func (s *Service) ArtifactID() types.ArtifactID { return s.id }

// PlatformKey returns the host identity computed at resolution.
func (s *Service) PlatformKey() types.PlatformKey { return s.key }

// ModulePath returns where the native module lives (or will live) on
// disk: <InstallDir>/package/<ArtifactID>.node.
func (s *Service) ModulePath() string {
	return filepath.Join(s.cfg.InstallDir, "package", s.id.BinaryName())
}

// Start runs the pipeline: resolve → (skip if present) locate → fetch →
// extract → load. Errors carry their taxonomy kind unchanged from the
// component that produced them; Start logs the operator message for the
// kind and returns the error for the host to act on.
func (s *Service) Start(ctx context.Context) error {
	s.state = StateResolving
	id, err := platform.Resolve(s.osName, s.archName, s.prober)
	if err != nil {
		return s.fail(err)
	}
	s.id = id
	s.key = platform.Key(s.osName, s.archName, s.prober)
	s.logger.Info("resolved artifact",
		zap.String("artifact", string(id)),
		zap.String("platform", s.key.String()))

	if _, err := os.Stat(s.ModulePath()); err == nil {
		s.logReuse()
	} else {
		if err := s.install(ctx); err != nil {
			return s.fail(err)
		}
	}

	s.state = StateLoading
	module, err := s.loader.Load(s.ModulePath())
	if err != nil {
		return s.fail(err)
	}
	if err := module.API.Activate(); err != nil {
		return s.fail(types.NewInstallError(types.ErrLoad, "activate", err))
	}
	s.module = module

	s.state = StateReady
	s.logger.Info("native module ready", zap.String("path", module.Path))
	return nil
}

// install runs the network half of the pipeline: locate, fetch, extract,
// and record the manifest.
func (s *Service) install(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.InstallDir, 0o755); err != nil {
		return types.NewInstallError(types.ErrDownload, "prepare", err)
	}

	s.state = StateDownloading
	loc, err := s.locator.Locate(ctx, s.id)
	if err != nil {
		return err
	}
	s.logger.Info("located artifact",
		zap.String("version", loc.Version),
		zap.String("tarball", loc.TarballURL))

	report, err := s.fetcher.Fetch(ctx, loc.TarballURL, s.cfg.InstallDir)
	if err != nil {
		return err
	}
	if report.Status != types.DownloadComplete {
		return types.NewInstallError(types.ErrDownload, "fetch",
			fmt.Errorf("download ended %s", report.Status))
	}

	s.state = StateExtracting
	extractCtx := ctx
	if s.cfg.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, s.cfg.ExtractTimeout)
		defer cancel()
	}
	if err := s.extractor(extractCtx, report.Path); err != nil {
		return err
	}

	s.recordManifest(loc, report)
	return nil
}

// fail marks the terminal failure state and logs the operator message
// for the error's kind. The classified error passes through unchanged.
func (s *Service) fail(err error) error {
	s.state = StateFailed
	s.logger.Error(operatorMessage(err), zap.Error(err))
	return err
}

// operatorMessage maps each taxonomy kind to the human-readable line an
// operator sees. The switch is exhaustive over the closed kind set.
func operatorMessage(err error) string {
	switch types.Kind(err) {
	case types.ErrUnsupportedPlatform:
		return "no prebuilt segmentation module is published for this platform"
	case types.ErrRegistry:
		return "could not resolve the segmentation module in the package registry"
	case types.ErrDownload:
		return "downloading the segmentation module failed; it will be retried on next start"
	case types.ErrExtraction:
		return "the downloaded segmentation module archive could not be unpacked"
	case types.ErrLoad:
		return "the segmentation module failed to initialize"
	default:
		return "segmentation module startup failed"
	}
}

// logReuse logs the skip-download path, with manifest details when the
// receipt from the original install is still readable.
func (s *Service) logReuse() {
	fields := []zap.Field{zap.String("path", s.ModulePath())}
	if m, err := readManifest(s.cfg.InstallDir); err == nil {
		fields = append(fields,
			zap.String("version", m.Version),
			zap.Time("installed_at", m.InstalledAt))
	}
	s.logger.Info("artifact already present, skipping download", fields...)
}

// recordManifest writes the install receipt. Best effort: a manifest
// that cannot be written only costs detail on the next reuse log line.
func (s *Service) recordManifest(loc registry.Location, report types.DownloadReport) {
	m := &Manifest{
		ArtifactID:  string(s.id),
		Version:     loc.Version,
		Source:      loc.TarballURL,
		Bytes:       report.Bytes,
		InstalledAt: time.Now().UTC(),
	}
	if err := writeManifest(s.cfg.InstallDir, m); err != nil {
		s.logger.Warn("could not write install manifest", zap.Error(err))
	}
}

// errNotReady guards the segmentation API before a successful Start.
var errNotReady = errors.New("service is not ready")

func (s *Service) api() (*nativemod.API, error) {
	if s.state != StateReady || s.module == nil {
		return nil, types.NewInstallError(types.ErrLoad, "api", errNotReady)
	}
	return &s.module.API, nil
}
