// Package config loads swatch settings from defaults, a YAML file,
// SWATCH_ environment variables and command-line flags, in rising order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// DefaultConfigFileName is searched for without extension.
	DefaultConfigFileName = "swatch"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SWATCH"
)

// Config is the full swatch configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Themes  ThemesConfig  `mapstructure:"themes"`
	Plugins PluginsConfig `mapstructure:"plugins"`
	Log     LogConfig     `mapstructure:"log"`
	GenAI   GenAIConfig   `mapstructure:"genai"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// EngineConfig holds the palette pipeline constants.
type EngineConfig struct {
	MinContrast float64 `mapstructure:"min_contrast"`
	Reference   string  `mapstructure:"reference"`
	Offsets     [][]int `mapstructure:"offsets"`
	Saturations []int   `mapstructure:"saturations"`
	Lightnesses []int   `mapstructure:"lightnesses"`
	HueShifts   []int   `mapstructure:"hue_shifts"`
}

// ThemesConfig points at user theme files.
type ThemesConfig struct {
	File    string `mapstructure:"file"`
	Default string `mapstructure:"default"`
}

// PluginsConfig configures exporter plugins.
type PluginsConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig configures the hclog root logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GenAIConfig configures seed suggestions. The API key is only read
// from GOOGLE_API_KEY.
type GenAIConfig struct {
	Model   string `mapstructure:"model"`
	Backend string `mapstructure:"backend"`
}

// flagBindings maps config keys to the flags that override them.
var flagBindings = map[string]string{
	"engine.min_contrast": "min-contrast",
	"themes.file":         "themes-file",
	"plugins.dir":         "plugin-dir",
	"log.level":           "log-level",
	"log.format":          "log-format",
	"genai.model":         "model",
	"genai.backend":       "backend",
}

// Load reads configuration. cfgFile, when set, must exist; otherwise
// swatch.yaml is searched for in the user config directory and the
// working directory. Flags present in flags override everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "swatch"))
		}
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := colour.DefaultConfig()

	offsets := make([][]int, len(d.Offsets))
	for i, o := range d.Offsets {
		offsets[i] = []int{o[0], o[1], o[2]}
	}

	v.SetDefault("engine.min_contrast", d.MinContrast)
	v.SetDefault("engine.reference", d.Reference)
	v.SetDefault("engine.offsets", offsets)
	v.SetDefault("engine.saturations", d.Saturations)
	v.SetDefault("engine.lightnesses", d.Lightnesses)
	v.SetDefault("engine.hue_shifts", d.HueShifts)

	v.SetDefault("themes.file", "")
	v.SetDefault("themes.default", "sky")
	v.SetDefault("plugins.dir", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("genai.model", "gemini-2.5-flash")
	v.SetDefault("genai.backend", "gemini-api")
}

// ColourConfig converts the engine section into a validated colour.Config.
func (c EngineConfig) ColourConfig() (colour.Config, error) {
	out := colour.Config{
		MinContrast: c.MinContrast,
		Reference:   c.Reference,
		Offsets:     make([][3]int, len(c.Offsets)),
		Saturations: c.Saturations,
		Lightnesses: c.Lightnesses,
		HueShifts:   c.HueShifts,
	}
	for i, o := range c.Offsets {
		if len(o) != 3 {
			return colour.Config{}, fmt.Errorf("engine.offsets[%d] has %d channels, want 3", i, len(o))
		}
		out.Offsets[i] = [3]int{o[0], o[1], o[2]}
	}

	if err := out.Validate(); err != nil {
		return colour.Config{}, fmt.Errorf("invalid engine config: %w", err)
	}
	return out, nil
}
