// Error taxonomy for the install pipeline.
//
// Every component classifies its failures into exactly one kind at the
// point of origin; layers above pass the classified error upward
// unchanged. Callers use errors.Is(err, ErrXxx) for typed assertions.
package types

import (
	"errors"
	"fmt"
)

// Sentinel kinds, one per pipeline stage that can fail.
var (
	// ErrUnsupportedPlatform indicates no artifact is published for this
	// OS/architecture pair. Fatal and non-retryable.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrRegistry indicates the metadata lookup failed: network failure,
	// non-success status, undecodable body, or missing tarball URL.
	ErrRegistry = errors.New("registry lookup failed")

	// ErrDownload indicates a transport or filesystem failure while
	// streaming the artifact, including an incomplete transfer.
	ErrDownload = errors.New("download failed")

	// ErrExtraction indicates the archive could not be decompressed or
	// unpacked, including a stalled stream hitting its deadline.
	ErrExtraction = errors.New("extraction failed")

	// ErrLoad indicates the native module failed to initialize, excluding
	// the tolerated duplicate-load condition.
	ErrLoad = errors.New("native module load failed")
)

// InstallError wraps an underlying failure with its taxonomy kind and the
// stage that produced it. The original error stays reachable through
// errors.As/Unwrap.
type InstallError struct {
	// Kind is the sentinel the error classifies as.
	Kind error
	// Stage is the pipeline stage that failed (e.g. "resolve", "fetch").
	Stage string
	// Err is the underlying cause. May be nil when the kind itself is the
	// whole story (an unsupported platform has no deeper cause).
	Err error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
}

// Unwrap returns the underlying cause for chain traversal.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is reports whether the error classifies as the target sentinel.
func (e *InstallError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewInstallError creates a classified install error.
func NewInstallError(kind error, stage string, err error) *InstallError {
	return &InstallError{Kind: kind, Stage: stage, Err: err}
}

// Unsupported creates the resolution failure for an (os, arch) pair with
// no published artifact. The detail distinguishes an unknown OS from a
// known OS with an unknown architecture.
func Unsupported(osName, archName, detail string) *InstallError {
	return &InstallError{
		Kind:  ErrUnsupportedPlatform,
		Stage: "resolve",
		Err:   fmt.Errorf("%s: %s/%s", detail, osName, archName),
	}
}

// Kind returns the taxonomy sentinel err classifies as, or nil when err
// carries no classification. The set of kinds is closed; the service
// facade switches over it exhaustively.
func Kind(err error) error {
	for _, kind := range []error{
		ErrUnsupportedPlatform,
		ErrRegistry,
		ErrDownload,
		ErrExtraction,
		ErrLoad,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
