package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }, "dir is required"},
		{"missing usage file", func(c *Config) { c.Data.UsageFile = "" }, "usage_file is required"},
		{"nested creature file", func(c *Config) { c.Data.CreatureFile = "sub/monster_data.txt" }, "creature_file must be a file name"},
		{"bad color scheme", func(c *Config) { c.Display.ColorScheme = "neon" }, "invalid color_scheme"},
		{"zero farm limit", func(c *Config) { c.Farm.Limit = 0 }, "limit must be positive"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, "path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsSections(t *testing.T) {
	cfg := Default()
	cfg.Farm.Limit = -1
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "farm:") || !strings.Contains(msg, "logging:") {
		t.Errorf("expected both sections in %q", msg)
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := map[LogLevel]slog.Level{
		LogLevelDebug: slog.LevelDebug,
		LogLevelInfo:  slog.LevelInfo,
		LogLevelWarn:  slog.LevelWarn,
		LogLevelError: slog.LevelError,
		"":            slog.LevelInfo,
	}
	for level, want := range tests {
		if got := level.SlogLevel(); got != want {
			t.Errorf("%q.SlogLevel() = %v, want %v", level, got, want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "monsterdex.toml")

	cfg := Default()
	cfg.Data.Dir = "/srv/monsters"
	cfg.Farm.Limit = 12
	cfg.Display.ColorScheme = ColorSchemeAmber

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# monsterdex configuration file") {
		t.Error("saved file is missing header")
	}

	loaded, from, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if from != path {
		t.Errorf("loaded from %q, want %q", from, path)
	}
	if loaded.Data.Dir != "/srv/monsters" || loaded.Farm.Limit != 12 || loaded.Display.ColorScheme != ColorSchemeAmber {
		t.Errorf("unexpected config: %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monsterdex.toml")
	content := "[farm]\nlimit = 5\n"
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Farm.Limit != 5 {
		t.Errorf("limit = %d, want 5", cfg.Farm.Limit)
	}
	if cfg.Data.CreatureFile != "monster_data.txt" {
		t.Errorf("creature_file = %q, want default", cfg.Data.CreatureFile)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	badTOML := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badTOML, []byte("[farm\nlimit ="), 0640); err != nil {
		t.Fatal(err)
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("[farm]\nlimit = 0\n"), 0640); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{badTOML, invalid, filepath.Join(dir, "missing.toml")} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, _, err := Load(path, false)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if loadErr.Path != path {
				t.Errorf("LoadError.Path = %q, want %q", loadErr.Path, path)
			}
		})
	}
}

func TestLoad_XDGAndDefault(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	if _, _, err := Load("", false); err == nil {
		t.Fatal("expected error when no config exists and createDefault is false")
	}

	cfg, path, err := Load("", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(xdg, XDGConfigSubdir, DefaultConfigFileName)
	if path != want {
		t.Errorf("default written to %q, want %q", path, want)
	}
	if cfg.Farm.Limit != Default().Farm.Limit {
		t.Errorf("unexpected limit %d", cfg.Farm.Limit)
	}

	// second load finds the written file
	_, path, err = Load("", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != want {
		t.Errorf("loaded from %q, want %q", path, want)
	}
	if ConfigPath("") != want {
		t.Errorf("ConfigPath() = %q, want %q", ConfigPath(""), want)
	}
}

func TestDatabasePath(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := Default()
	got, err := DatabasePath(cfg)
	if err != nil {
		t.Fatalf("DatabasePath: %v", err)
	}
	want := filepath.Join(data, XDGConfigSubdir, "monsterdex.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "sub", "export.db")
	cfg.Database.Path = abs
	got, err = DatabasePath(cfg)
	if err != nil {
		t.Fatalf("DatabasePath: %v", err)
	}
	if got != abs {
		t.Errorf("got %q, want %q", got, abs)
	}
	if _, err := os.Stat(filepath.Dir(abs)); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestEnsureLogDir(t *testing.T) {
	cfg := Default()
	got, err := EnsureLogDir(cfg)
	if err != nil || got != "" {
		t.Fatalf("expected file logging disabled, got %q, %v", got, err)
	}

	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "monsterdex.log")
	got, err = EnsureLogDir(cfg)
	if err != nil {
		t.Fatalf("EnsureLogDir: %v", err)
	}
	if got != cfg.Logging.File {
		t.Errorf("got %q", got)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}
