// internal/appconfig/appconfig.go
// Package appconfig holds the merged run configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mwiater/suitebench/internal/benchmark"
)

const (
	// DefaultConfigPath is read when --config is not given. A missing file at
	// this path is not an error.
	DefaultConfigPath = "suitebench.json"
	// DefaultIterations is the number of samples per operation.
	DefaultIterations = 1
	// DefaultFormat is the report format.
	DefaultFormat = "console"
	// DefaultTrace disables tracing.
	DefaultTrace = "none"
	// EnvPrefix prefixes environment overrides, e.g. SUITEBENCH_ITERATIONS.
	EnvPrefix = "SUITEBENCH"
)

// Config represents the merged configuration (flags > env > file > defaults).
type Config struct {
	Suites     []string `json:"suites" mapstructure:"suites" validate:"dive,required"`
	Iterations int      `json:"iterations" mapstructure:"iterations" validate:"gte=1"`
	Format     string   `json:"format" mapstructure:"format" validate:"oneof=console json prometheus"`
	SuiteDir   string   `json:"suiteDir,omitempty" mapstructure:"suiteDir"`
	Output     string   `json:"output,omitempty" mapstructure:"output"`
	Progress   bool     `json:"progress" mapstructure:"progress"`
	Debug      bool     `json:"debug" mapstructure:"debug"`
	LogFile    string   `json:"logFile,omitempty" mapstructure:"logFile"`
	Trace      string   `json:"trace" mapstructure:"trace" validate:"oneof=none stdout"`
	// TrackMemory is nil unless the user asked for an explicit override.
	TrackMemory *bool  `json:"trackMemory,omitempty" mapstructure:"-"`
	ConfigPath  string `json:"-" mapstructure:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Iterations: DefaultIterations,
		Format:     DefaultFormat,
		Trace:      DefaultTrace,
	}
}

var validate = validator.New()

// Validate checks field constraints. Violations wrap benchmark.ErrConfiguration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return benchmark.Configf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return benchmark.Configf("%s", strings.Join(msgs, "; "))
}

// SelectedSuites returns the requested group names with blanks removed.
func (c *Config) SelectedSuites() []string {
	out := make([]string, 0, len(c.Suites))
	for _, s := range c.Suites {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be a positive integer, got %v", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
