package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/examples"
	"github.com/thoreinstein/boardci/internal/paths"
	"github.com/thoreinstein/boardci/internal/platform"
)

// AppName is the application name used for config file naming.
const AppName = "boardci"

// Config represents the top-level configuration structure.
type Config struct {
	Version         int          `mapstructure:"version" yaml:"version"`
	Workspace       string       `mapstructure:"workspace" yaml:"workspace,omitempty"`
	CLI             string       `mapstructure:"cli" yaml:"cli"`
	AdditionalURLs  []string     `mapstructure:"additional_urls" yaml:"additional_urls"`
	SketchExtension string       `mapstructure:"sketch_extension" yaml:"sketch_extension"`
	LibrariesDir    string       `mapstructure:"libraries_dir" yaml:"libraries_dir,omitempty"`
	Platforms       []string     `mapstructure:"platforms" yaml:"platforms,omitempty"`
	Boards          []BoardEntry `mapstructure:"boards" yaml:"boards,omitempty"`
	Groups          []GroupEntry `mapstructure:"groups" yaml:"groups,omitempty"`
	Report          string       `mapstructure:"report" yaml:"report,omitempty"`
	ReportFormat    string       `mapstructure:"report_format" yaml:"report_format,omitempty"`
	Filter          []string     `mapstructure:"filter" yaml:"filter,omitempty"`
}

// BoardEntry declares an extra board alias.
type BoardEntry struct {
	Alias string `mapstructure:"alias" yaml:"alias"`
	FQBN  string `mapstructure:"fqbn" yaml:"fqbn"`
}

// GroupEntry declares an extra group alias.
type GroupEntry struct {
	Alias   string   `mapstructure:"alias" yaml:"alias"`
	Members []string `mapstructure:"members" yaml:"members"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("BOARDCI")
	viper.AutomaticEnv()
	// The CI-provided checkout path is honoured without the prefix.
	_ = viper.BindEnv("workspace", "BOARDCI_WORKSPACE", paths.WorkspaceEnv)

	viper.SetDefault("version", 1)
	viper.SetDefault("cli", arduino.DefaultBinary)
	viper.SetDefault("additional_urls", arduino.DefaultAdditionalURLs)
	viper.SetDefault("sketch_extension", examples.DefaultExtension)

	// Registered so BOARDCI_* variables reach Unmarshal.
	viper.SetDefault("libraries_dir", "")
	viper.SetDefault("platforms", []string{})
	viper.SetDefault("filter", []string{})
	viper.SetDefault("report", "")
	viper.SetDefault("report_format", "")
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file uses defaults.
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:         1,
		CLI:             arduino.DefaultBinary,
		AdditionalURLs:  append([]string(nil), arduino.DefaultAdditionalURLs...),
		SketchExtension: examples.DefaultExtension,
	}
}

// Registry returns the built-in platform table extended with the boards and
// groups declared in cfg.
func (c *Config) Registry() (*platform.Registry, error) {
	base := platform.DefaultRegistry()
	if len(c.Boards) == 0 && len(c.Groups) == 0 {
		return base, nil
	}

	extra := make([]platform.Entry, 0, len(c.Boards)+len(c.Groups))
	for _, b := range c.Boards {
		extra = append(extra, platform.Board(b.Alias, platform.FQBN(b.FQBN)))
	}
	for _, g := range c.Groups {
		extra = append(extra, platform.Group(g.Alias, g.Members...))
	}

	reg, err := base.Extend(extra...)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "extending platform table"), errors.ErrInvalidConfig)
	}
	return reg, nil
}
