package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDefault_CreatesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := WriteDefault("/home/user/wachat-data")
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	want := filepath.Join(dir, "wachat", "config.toml")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "data_dir") {
		t.Error("config missing data_dir")
	}
	if !strings.Contains(content, "[parser]") {
		t.Error("config missing [parser] section")
	}
	if !strings.Contains(content, "[archive]") {
		t.Error("config missing [archive] section")
	}
	if !strings.Contains(content, "[watch]") {
		t.Error("config missing [watch] section")
	}
}

func TestWriteDefault_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "wachat")
	os.MkdirAll(configDir, 0o755)
	existing := filepath.Join(configDir, "config.toml")
	os.WriteFile(existing, []byte(`data_dir = "/keep/me"`), 0o644)

	path, err := WriteDefault("/other/data")
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if path != existing {
		t.Errorf("path = %q, want %q", path, existing)
	}

	data, _ := os.ReadFile(existing)
	if !strings.Contains(string(data), "/keep/me") {
		t.Error("existing config was overwritten")
	}
}

func TestWriteDefault_PortableHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := WriteDefault(filepath.Join(home, "wachat-data"))
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `data_dir = "~/wachat-data"`) {
		t.Errorf("config should use portable home path, got:\n%s", data)
	}
}

func TestCompressHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cases := []struct {
		in, want string
	}{
		{filepath.Join(home, "data"), "~/data"},
		{home, "~"},
		{"/absolute/elsewhere", "/absolute/elsewhere"},
	}
	for _, c := range cases {
		if got := CompressHome(c.in); got != c.want {
			t.Errorf("CompressHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
