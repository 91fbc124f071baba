package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestInstallError_Is(t *testing.T) {
	err := NewInstallError(ErrDownload, "fetch", errors.New("connection reset"))

	if !errors.Is(err, ErrDownload) {
		t.Error("expected error to classify as ErrDownload")
	}
	if errors.Is(err, ErrRegistry) {
		t.Error("download error must not classify as ErrRegistry")
	}
}

func TestInstallError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInstallError(ErrExtraction, "extract", fmt.Errorf("write entry: %w", cause))

	if !errors.Is(err, cause) {
		t.Error("underlying cause should remain reachable through the chain")
	}
}

func TestInstallError_MessageIncludesStage(t *testing.T) {
	err := NewInstallError(ErrRegistry, "locate", errors.New("status 500"))
	msg := err.Error()
	if msg != "locate: registry lookup failed: status 500" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestUnsupported_Detail(t *testing.T) {
	err := Unsupported("plan9", "amd64", "unsupported OS")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatal("expected ErrUnsupportedPlatform classification")
	}
	want := "resolve: unsupported platform: unsupported OS: plan9/amd64"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestKind_ClosedSet(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{NewInstallError(ErrUnsupportedPlatform, "resolve", nil), ErrUnsupportedPlatform},
		{NewInstallError(ErrRegistry, "locate", errors.New("x")), ErrRegistry},
		{NewInstallError(ErrDownload, "fetch", errors.New("x")), ErrDownload},
		{NewInstallError(ErrExtraction, "extract", errors.New("x")), ErrExtraction},
		{NewInstallError(ErrLoad, "load", errors.New("x")), ErrLoad},
		{errors.New("plain"), nil},
		{nil, nil},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); !errors.Is(got, tc.want) || (tc.want == nil && got != nil) {
			t.Errorf("Kind(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
