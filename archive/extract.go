// Package archive unpacks a fetched artifact archive (gzip-compressed
// tarball) into its install directory.
package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/kokoro-js/jieba/iox"
	"github.com/kokoro-js/jieba/types"
)

// DefaultTimeout bounds one extraction. A stalled decompress or unpack
// stream surfaces as a classified error instead of hanging the startup
// pipeline.
const DefaultTimeout = 5 * time.Minute

// Extract unpacks archivePath into the directory containing it, so an
// npm-style tarball lands at <dir>/package/... . Failures of either
// stage — gzip, tar, or entry writes — classify as ErrExtraction; a
// deadline on ctx bounds the whole operation and a timeout classifies as
// ErrExtraction wrapping context.DeadlineExceeded.
func Extract(ctx context.Context, archivePath string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- unpack(ctx, archivePath) }()

	select {
	case err := <-done:
		if err != nil {
			return types.NewInstallError(types.ErrExtraction, "extract", err)
		}
		return nil
	case <-ctx.Done():
		return types.NewInstallError(types.ErrExtraction, "extract", ctx.Err())
	}
}

// unpack runs the two chained streaming transforms.
func unpack(ctx context.Context, archivePath string) error {
	destDir := filepath.Dir(archivePath)

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(f)

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer iox.DiscardClose(gz)

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
		if err := writeEntry(destDir, hdr, tr); err != nil {
			return err
		}
	}
}

func writeEntry(destDir string, hdr *tar.Header, r io.Reader) error {
	target, err := secureJoin(destDir, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, 0o755)
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, r); err != nil {
			_ = out.Close()
			return fmt.Errorf("write %s: %w", hdr.Name, err)
		}
		return out.Close()
	default:
		// Symlinks, devices and the rest have no business in a prebuilt
		// package tarball; skip rather than fail on registry quirks.
		return nil
	}
}

// secureJoin rejects entries that would escape the destination directory.
func secureJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}
