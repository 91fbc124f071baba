package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jieba.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
install_dir: /var/lib/jieba
registry: https://registry.npmmirror.com
extract_timeout: 90s
dict: dicts/user.txt
idf_dict: dicts/idf.txt
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InstallDir != "/var/lib/jieba" {
		t.Errorf("install_dir = %s", cfg.InstallDir)
	}
	if cfg.Registry != "https://registry.npmmirror.com" {
		t.Errorf("registry = %s", cfg.Registry)
	}
	if cfg.ExtractTimeout.Duration != 90*time.Second {
		t.Errorf("extract_timeout = %v", cfg.ExtractTimeout.Duration)
	}
	if cfg.Dict != "dicts/user.txt" || cfg.IDFDict != "dicts/idf.txt" {
		t.Errorf("dict paths = %s, %s", cfg.Dict, cfg.IDFDict)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("JIEBA_HOME", "/opt/jieba")
	path := writeConfig(t, `
install_dir: ${JIEBA_HOME}/artifacts
registry: ${JIEBA_REGISTRY:-https://registry.npmjs.org}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.InstallDir != "/opt/jieba/artifacts" {
		t.Errorf("install_dir = %s", cfg.InstallDir)
	}
	if cfg.Registry != "https://registry.npmjs.org" {
		t.Errorf("registry default not applied: %s", cfg.Registry)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "install_dir: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "extract_timeout: not-a-duration")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}
