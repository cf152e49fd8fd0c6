package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/platform"
)

// isolate points every implicit config source at empty temp locations.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("BOARDCI_CONFIG_DIR", t.TempDir())
	t.Setenv("GITHUB_WORKSPACE", "")
	t.Setenv("BOARDCI_WORKSPACE", "")
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boardci.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("cli"); got != arduino.DefaultBinary {
		t.Errorf("cli default = %q, want %q", got, arduino.DefaultBinary)
	}
	if got := viper.GetStringSlice("additional_urls"); len(got) != len(arduino.DefaultAdditionalURLs) {
		t.Errorf("expected %d default URLs, got %d", len(arduino.DefaultAdditionalURLs), len(got))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.SketchExtension != ".ino" {
		t.Errorf("SketchExtension = %q, want .ino", cfg.SketchExtension)
	}
	if len(cfg.Platforms) != 0 {
		t.Errorf("expected no default platforms, got %v", cfg.Platforms)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `version: 1
platforms: [rak4631, esp32]
boards:
  - alias: Feather-52840
    fqbn: adafruit:nrf52:feather52840
groups:
  - alias: nightly
    members: [Feather-52840, rak4631]
`)
	Init()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Platforms) != 2 {
		t.Errorf("expected 2 platforms, got %d", len(cfg.Platforms))
	}
	if len(cfg.Boards) != 1 || cfg.Boards[0].Alias != "Feather-52840" {
		t.Errorf("boards = %+v, want case-preserved Feather-52840", cfg.Boards)
	}
	if len(cfg.Groups) != 1 || len(cfg.Groups[0].Members) != 2 {
		t.Errorf("groups = %+v", cfg.Groups)
	}
}

func TestLoad_SearchesConfigDir(t *testing.T) {
	isolate(t)
	dir := os.Getenv("BOARDCI_CONFIG_DIR")
	if err := os.WriteFile(filepath.Join(dir, "boardci.yaml"), []byte("cli: /opt/arduino-cli\n"), 0600); err != nil {
		t.Fatal(err)
	}
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CLI != "/opt/arduino-cli" {
		t.Errorf("CLI = %q, want /opt/arduino-cli", cfg.CLI)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	if _, err := Load("/non/existent/path/boardci.yaml"); err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	ws := t.TempDir()
	t.Setenv("GITHUB_WORKSPACE", ws)
	t.Setenv("BOARDCI_CLI", "my-cli")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workspace != ws {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, ws)
	}
	if cfg.CLI != "my-cli" {
		t.Errorf("CLI = %q, want my-cli", cfg.CLI)
	}
}

func TestLoad_PrefixedWorkspaceWins(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_WORKSPACE", "/from/github")
	t.Setenv("BOARDCI_WORKSPACE", "/from/boardci")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workspace != "/from/boardci" {
		t.Errorf("Workspace = %q, want /from/boardci", cfg.Workspace)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid version",
			content: "version: 0\n",
			wantErr: "version must be >= 1",
		},
		{
			name:    "invalid report format",
			content: "report_format: xml\n",
			wantErr: "report_format",
		},
		{
			name:    "invalid board fqbn",
			content: "boards:\n  - alias: broken\n    fqbn: not-a-fqbn\n",
			wantErr: "broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeConfig(t, tt.content)
			Init()

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "cli: first-cli\n")
	Init()
	if _, err := Load(path); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.CLI != arduino.DefaultBinary {
		t.Errorf("CLI = %q, want default after Init, explicit file leaked", cfg.CLI)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("Default() config invalid: %v", errs)
	}
}

func TestConfig_Registry(t *testing.T) {
	cfg := Default()
	cfg.Boards = []BoardEntry{
		{Alias: "feather", FQBN: "adafruit:nrf52:feather52840"},
		{Alias: "rak4631", FQBN: "rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6"},
	}
	cfg.Groups = []GroupEntry{{Alias: "mine", Members: []string{"feather", "rak4631"}}}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error: %v", err)
	}

	got, err := reg.Resolve("mine")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := []platform.FQBN{"adafruit:nrf52:feather52840", "rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Resolve(mine) = %v, want %v", got, want)
	}

	if _, ok := reg.Lookup("rak4631-rui"); !ok {
		t.Error("expected built-in aliases to survive Extend")
	}
}

func TestConfig_Registry_UnknownMember(t *testing.T) {
	cfg := Default()
	cfg.Groups = []GroupEntry{{Alias: "mine", Members: []string{"nope"}}}

	_, err := cfg.Registry()
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Registry() error = %v, want ErrInvalidConfig", err)
	}
}
