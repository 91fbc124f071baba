// Package platform maps the running host to the canonical prebuilt
// artifact it needs, including the musl/glibc split on Linux.
package platform

import (
	"github.com/kokoro-js/jieba/types"
)

// artifactTable is the closed support matrix: OS → architecture →
// ArtifactID. It enumerates exactly the artifacts the registry scope
// publishes; there is no fallback entry. The two dual-libc Linux
// architectures are absent here and handled by resolveLinux.
var artifactTable = map[string]map[string]types.ArtifactID{
	"android": {
		"arm64": "jieba.android-arm64",
		"arm":   "jieba.android-arm-eabi",
	},
	"windows": {
		"amd64": "jieba.win32-x64-msvc",
		"386":   "jieba.win32-ia32-msvc",
		"arm64": "jieba.win32-arm64-msvc",
	},
	"darwin": {
		"amd64": "jieba.darwin-x64",
		"arm64": "jieba.darwin-arm64",
	},
	"freebsd": {
		"amd64": "jieba.freebsd-x64",
	},
	"linux": {
		"arm": "jieba.linux-arm-gnueabihf",
	},
}

// dualLibcLinux maps the Linux architectures published in both musl and
// GNU variants to their ArtifactID stem; the libc suffix comes from the
// prober.
var dualLibcLinux = map[string]string{
	"amd64": "jieba.linux-x64",
	"arm64": "jieba.linux-arm64",
}

// Resolve maps (osName, archName) — runtime.GOOS/GOARCH vocabulary,
// matched exactly — to the unique ArtifactID for that host. On the
// dual-libc Linux architectures the prober decides between the musl and
// GNU variants. Unsupported pairs fail with a classified
// ErrUnsupportedPlatform; resolution never touches the network or the
// filesystem.
func Resolve(osName, archName string, prober LibcProber) (types.ArtifactID, error) {
	if osName == "linux" {
		if stem, ok := dualLibcLinux[archName]; ok {
			if prober.Musl() {
				return types.ArtifactID(stem + "-musl"), nil
			}
			return types.ArtifactID(stem + "-gnu"), nil
		}
	}

	archs, ok := artifactTable[osName]
	if !ok {
		return "", types.Unsupported(osName, archName, "unsupported OS")
	}
	id, ok := archs[archName]
	if !ok {
		return "", types.Unsupported(osName, archName, "unsupported architecture")
	}
	return id, nil
}

// Key builds the immutable PlatformKey for a resolved host. Libc is only
// meaningful on the dual-libc Linux architectures.
func Key(osName, archName string, prober LibcProber) types.PlatformKey {
	k := types.PlatformKey{OS: osName, Arch: archName}
	if osName == "linux" {
		if _, dual := dualLibcLinux[archName]; dual {
			if prober.Musl() {
				k.Libc = types.LibcMusl
			} else {
				k.Libc = types.LibcGNU
			}
		}
	}
	return k
}
