// Package config loads graphcheck settings from a TOML file.
//
// Every field has a default, so a missing file is not an error when the
// default location is used. Values are validated after decoding; flags
// override them in the CLI.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/document"
	"github.com/matzehuels/graphcheck/pkg/errors"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".graphcheck.toml"

// Output modes.
const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultPolicy       = check.PolicyJSON
	DefaultConcurrency  = 4
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 10 << 20
)

// Config holds all settings. Zero limits select the check package defaults
// and negative limits disable the bound.
type Config struct {
	Policy      string `toml:"policy" validate:"oneof=cycle json"`
	MaxDepth    int    `toml:"max_depth"`
	MaxNodes    int    `toml:"max_nodes"`
	Concurrency int    `toml:"concurrency" validate:"gte=1,lte=256"`
	Format      string `toml:"format" validate:"omitempty,oneof=json yaml yml toml"`
	YAMLNodes   bool   `toml:"yaml_nodes"`
	Output      string `toml:"output" validate:"oneof=auto text json"`

	// CacheDir enables the report cache when set. CacheTTL <= 0 keeps
	// entries until removed.
	CacheDir string        `toml:"cache_dir"`
	CacheTTL time.Duration `toml:"cache_ttl" validate:"gte=0"`

	Server Server `toml:"server"`
}

// Server configures `graphcheck serve`.
type Server struct {
	Addr         string `toml:"addr" validate:"required,hostname_port|startswith=:"`
	MaxBodyBytes int64  `toml:"max_body_bytes" validate:"gte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a config with every field at its default.
func Default() Config {
	return Config{
		Policy:      DefaultPolicy,
		Concurrency: DefaultConcurrency,
		Output:      OutputAuto,
		Server: Server{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Load reads the config file at path over the defaults. An empty path reads
// DefaultFile if it exists and returns the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "load config")
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config")
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all failures at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
}

// CheckPolicy builds the check policy described by c.
func (c Config) CheckPolicy() (check.Policy, error) {
	p, err := check.PolicyByName(c.Policy)
	if err != nil {
		return check.Policy{}, err
	}
	return p.WithLimits(check.Limits{MaxDepth: c.MaxDepth, MaxNodes: c.MaxNodes}), nil
}

// DocumentFormat returns the forced document format, or "" to detect it.
func (c Config) DocumentFormat() (document.Format, error) {
	if c.Format == "" {
		return "", nil
	}
	return document.ParseFormat(c.Format)
}

// DocumentOptions returns the decode options described by c.
func (c Config) DocumentOptions() document.Options {
	return document.Options{YAMLNodes: c.YAMLNodes}
}
