package platform

import (
	"bytes"
	"os"
	"os/exec"
)

// LibcProber reports whether the running Linux system links against musl.
// The probe is advisory only: a wrong guess means the wrong artifact
// variant gets downloaded, never a crash, so implementations must not
// fail — when neither strategy can decide they return true (assume musl).
type LibcProber interface {
	Musl() bool
}

// HostProber is the production prober. Two independent strategies:
//
//  1. Scan the process's own memory map report (/proc/self/maps) for the
//     loaded C library. A glibc marker means GNU; no glibc marker means
//     musl — static binaries map no libc at all and land on the musl
//     side, which is the conservative default.
//  2. When the map report is unreadable, locate the ldd helper on $PATH
//     and scan its bytes for a musl marker. On musl systems ldd is a
//     symlink to the musl loader itself.
//
// Both strategies failing yields true.
type HostProber struct {
	// MapsPath overrides /proc/self/maps, for tests.
	MapsPath string
	// LddName overrides the helper binary name looked up on $PATH.
	LddName string
}

var glibcMarkers = [][]byte{
	[]byte("libc.so.6"),
	[]byte("ld-linux"),
}

// Musl implements LibcProber.
func (p *HostProber) Musl() bool {
	maps := p.MapsPath
	if maps == "" {
		maps = "/proc/self/maps"
	}
	if data, err := os.ReadFile(maps); err == nil {
		return muslFromMaps(data)
	}

	ldd := p.LddName
	if ldd == "" {
		ldd = "ldd"
	}
	path, err := exec.LookPath(ldd)
	if err != nil {
		return true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return bytes.Contains(data, []byte("musl"))
}

// muslFromMaps decides from a memory map report. An explicit musl loader
// wins; otherwise absence of every glibc marker is read as musl.
func muslFromMaps(data []byte) bool {
	if bytes.Contains(data, []byte("musl")) {
		return true
	}
	for _, marker := range glibcMarkers {
		if bytes.Contains(data, marker) {
			return false
		}
	}
	return true
}
