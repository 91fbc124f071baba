package service

import (
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ManifestName is the install receipt written beside the artifact tree.
const ManifestName = "manifest.bin"

// Manifest records where one installed artifact came from. Purely
// informational: its absence or corruption never affects startup.
type Manifest struct {
	ArtifactID  string    `msgpack:"artifact_id"`
	Version     string    `msgpack:"version"`
	Source      string    `msgpack:"source"`
	Bytes       int64     `msgpack:"bytes"`
	InstalledAt time.Time `msgpack:"installed_at"`
}

func writeManifest(dir string, m *Manifest) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644)
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
