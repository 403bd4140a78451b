// Package config loads the YAML settings shared by the fap commands.
package config

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"fap/internal/logging"
	"fap/internal/regex"
)

const ErrCodeInvalid = "CONFIG_INVALID"

var ErrInvalid = errors.New("invalid configuration", errors.CategoryValidation).
	WithTextCode(ErrCodeInvalid)

type Glyphs struct {
	Epsilon string `yaml:"epsilon"`
	Empty   string `yaml:"empty"`
}

type Simplifier struct {
	MaxPasses int `yaml:"max_passes"`
}

type Simulator struct {
	Delay time.Duration `yaml:"delay"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Glyphs          Glyphs     `yaml:"glyphs"`
	DefaultAlphabet []string   `yaml:"default_alphabet"`
	Simplifier      Simplifier `yaml:"simplifier"`
	Simulator       Simulator  `yaml:"simulator"`
	Log             Log        `yaml:"log"`
}

func Default() Config {
	return Config{
		Glyphs:          Glyphs{Epsilon: regex.DefaultGlyphs.Epsilon, Empty: regex.DefaultGlyphs.Empty},
		DefaultAlphabet: []string{"a", "b"},
		Simplifier:      Simplifier{MaxPasses: regex.DefaultMaxPasses},
		Simulator:       Simulator{Delay: time.Second},
		Log:             Log{Level: "info", Format: "text"},
	}
}

// Parse reads YAML (or JSON) over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, errors.CategoryValidation, "cannot parse configuration").
			WithTextCode(ErrCodeInvalid)
	}
	return cfg, cfg.Validate()
}

// Load parses the file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), errors.Wrap(err, errors.CategoryExternal, "cannot read configuration").
			WithMetadata(map[string]any{"path": path})
	}
	return Parse(data)
}

func (c Config) Validate() error {
	var problems []string
	if c.Glyphs.Epsilon == "" || c.Glyphs.Empty == "" {
		problems = append(problems, "glyphs must not be empty")
	}
	if c.Glyphs.Epsilon == c.Glyphs.Empty {
		problems = append(problems, "epsilon and empty glyphs must differ")
	}
	for _, sym := range c.DefaultAlphabet {
		if len([]rune(sym)) != 1 {
			problems = append(problems, "default alphabet symbols must be single characters")
			break
		}
	}
	if c.Simplifier.MaxPasses <= 0 {
		problems = append(problems, "simplifier.max_passes must be positive")
	}
	if c.Simulator.Delay < 0 {
		problems = append(problems, "simulator.delay must not be negative")
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		problems = append(problems, "unknown log level "+c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, "log.format must be text or json")
	}
	if len(problems) == 0 {
		return nil
	}
	return ErrInvalid.Clone().WithMetadata(map[string]any{"problems": problems})
}

// IsInvalid reports whether err came from Parse, Load or Validate rejecting
// the configuration.
func IsInvalid(err error) bool {
	var ge *errors.Error
	return stderrors.As(err, &ge) && ge.TextCode == ErrCodeInvalid
}

// RegexGlyphs converts the glyph settings for the regex package.
func (c Config) RegexGlyphs() regex.Glyphs {
	return regex.Glyphs{Epsilon: c.Glyphs.Epsilon, Empty: c.Glyphs.Empty}
}

// Logger builds the logger the settings describe.
func (c Config) Logger() logging.Logger {
	return logging.New(c.Log.Level, c.Log.Format, os.Stderr)
}
