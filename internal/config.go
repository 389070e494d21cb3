package internal

import (
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Project ProjectConfig     `yaml:"project"`
	Input   InputConfig       `yaml:"input"`
	Output  OutputConfig      `yaml:"output"`
	Deck    DeckConfig        `yaml:"deck"`
	Build   BuildConfig       `yaml:"build"`
	Release ReleaseConfig     `yaml:"release"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, v := range []validation.Validatable{&c.App, &c.Project, &c.Input, &c.Output, &c.Deck, &c.Build} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// ProjectConfig locates the workspace every other path is relative to.
type ProjectConfig struct {
	Root string `yaml:"root"`
}

// Validate validates the project configuration.
func (c *ProjectConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
	)
}

// InputConfig holds the export directory.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the input configuration.
func (c *InputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// OutputConfig holds where packages are written and their base file name.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Basename string `yaml:"basename"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Basename, validation.Required),
	)
}

// DeckConfig holds the root deck every card is filed under.
type DeckConfig struct {
	RootName string `yaml:"root_name"`
}

// Validate validates the deck configuration.
func (c *DeckConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RootName, validation.Required),
	)
}

// BuildConfig holds packaging options.
type BuildConfig struct {
	VersionFile     string `yaml:"version_file"`
	EscapePlainText bool   `yaml:"escape_plain_text"`
}

// Validate validates the build configuration.
func (c *BuildConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.VersionFile, validation.Required),
	)
}

// ReleaseConfig holds git tagging options.
type ReleaseConfig struct {
	Push bool `yaml:"push"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatText,
		},
		Project: ProjectConfig{
			Root: ".",
		},
		Input: InputConfig{
			Dir: "txt_export",
		},
		Output: OutputConfig{
			Dir:      ".",
			Basename: "os_theory",
		},
		Deck: DeckConfig{
			RootName: "OS Theory (202.1)",
		},
		Build: BuildConfig{
			VersionFile: "VERSION",
		},
		Release: ReleaseConfig{
			Push: true,
		},
	}
}
