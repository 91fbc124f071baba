package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/kokoro-js/jieba/types"
)

// writeTarball builds a gzip-compressed tarball at path from name→content
// pairs, using "/"-separated names as tar demands.
func writeTarball(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write tarball: %v", err)
	}
}

func TestExtract_PackageLayout(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jieba.tgz")
	writeTarball(t, archive, map[string]string{
		"package/jieba.linux-x64-gnu.node": "\x7fELF fake native module",
		"package/package.json":             `{"name":"@node-rs/jieba-linux-x64-gnu"}`,
	})

	if err := Extract(context.Background(), archive); err != nil {
		t.Fatalf("extract: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "package", "jieba.linux-x64-gnu.node"))
	if err != nil {
		t.Fatalf("unpacked module missing: %v", err)
	}
	if string(data) != "\x7fELF fake native module" {
		t.Error("unpacked module content mismatch")
	}
}

func TestExtract_NotGzip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jieba.tgz")
	if err := os.WriteFile(archive, []byte("plain text, not gzip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := Extract(context.Background(), archive)
	if !errors.Is(err, types.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_CorruptTar(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jieba.tgz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("valid gzip stream, garbage tar payload"))
	_ = gz.Close()
	if err := os.WriteFile(archive, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := Extract(context.Background(), archive)
	if !errors.Is(err, types.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_MissingArchive(t *testing.T) {
	err := Extract(context.Background(), filepath.Join(t.TempDir(), "nope.tgz"))
	if !errors.Is(err, types.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtract_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jieba.tgz")
	writeTarball(t, archive, map[string]string{
		"../outside.txt": "escape attempt",
	})

	err := Extract(context.Background(), archive)
	if !errors.Is(err, types.ErrExtraction) {
		t.Fatalf("expected ErrExtraction for traversal entry, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.txt")); statErr == nil {
		t.Error("traversal entry escaped the destination directory")
	}
}

func TestExtract_DeadlineExceeded(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "jieba.tgz")
	writeTarball(t, archive, map[string]string{
		"package/a.node": "x",
	})

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := Extract(ctx, archive)
	if !errors.Is(err, types.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("timeout should stay visible through the chain, got %v", err)
	}
}
