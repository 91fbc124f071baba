// Package types defines the shared data model for the jieba installer:
// platform identity, artifact naming, download reports, and the closed
// install-error taxonomy.
package types

import "fmt"

// LibcFlavor identifies which C library a Linux artifact is linked against.
type LibcFlavor string

const (
	// LibcNone applies to non-Linux platforms and single-variant Linux
	// architectures.
	LibcNone LibcFlavor = ""
	LibcGNU  LibcFlavor = "gnu"
	LibcMusl LibcFlavor = "musl"
)

// PlatformKey identifies the host a native artifact must match.
// Computed once per startup from runtime.GOOS/GOARCH plus the libc probe;
// never mutated afterwards.
type PlatformKey struct {
	OS   string
	Arch string
	Libc LibcFlavor
}

func (k PlatformKey) String() string {
	if k.Libc != LibcNone {
		return fmt.Sprintf("%s/%s (%s)", k.OS, k.Arch, k.Libc)
	}
	return fmt.Sprintf("%s/%s", k.OS, k.Arch)
}

// ArtifactID is the canonical name of one downloadable prebuilt module,
// e.g. "jieba.linux-x64-gnu". Each supported PlatformKey maps to exactly
// one ArtifactID; the mapping is total only over the supported set.
type ArtifactID string

// BinaryName returns the filename of the native module inside the
// unpacked archive, e.g. "jieba.linux-x64-gnu.node".
func (id ArtifactID) BinaryName() string {
	return string(id) + ".node"
}

// DownloadStatus is the terminal state of one fetch attempt.
type DownloadStatus string

const (
	DownloadComplete DownloadStatus = "complete"
	DownloadAborted  DownloadStatus = "aborted"
)

// DownloadReport describes the outcome of a single fetch. It is consumed
// immediately by the extractor and never persisted.
type DownloadReport struct {
	Status DownloadStatus
	// Path is the local archive file, valid only when Status is complete.
	Path string
	// Bytes is the number of bytes written to Path.
	Bytes int64
}
