package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "KEYMCS"

// Sentinel errors returned (wrapped) by Load.
var (
	ErrConfigFileNotFound = errors.New(errors.ErrCodeNotFound, "config file not found")
	ErrConfigParseError   = errors.New(errors.ErrCodeSerialization, "config file cannot be parsed")
	ErrConfigValidation   = errors.New(errors.ErrCodeValidation, "config validation failed")
)

type loadOptions struct {
	path        string
	searchPaths []string
	envPrefix   string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath reads the given file.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

// WithSearchPaths looks for config.yaml in each directory in turn.  A
// missing file is not an error when only search paths are given.
func WithSearchPaths(dirs ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithEnvPrefix replaces the KEYMCS environment prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithOverrides sets keys (dotted paths) with the highest precedence.
func WithOverrides(values map[string]interface{}) LoadOption {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// newViper builds a pre-configured Viper instance: YAML file type, the env
// prefix, automatic env binding, and a key replacer that maps "." → "_" so
// that nested keys like "matching.iteration_cap" resolve to
// "KEYMCS_MATCHING_ITERATION_CAP".
func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setViperDefaults(v)
	return v
}

func prepare(opts []LoadOption) (*viper.Viper, *loadOptions) {
	o := &loadOptions{envPrefix: envPrefix}
	for _, opt := range opts {
		opt(o)
	}
	v := newViper(o.envPrefix)
	switch {
	case o.path != "":
		v.SetConfigFile(o.path)
	case len(o.searchPaths) > 0:
		v.SetConfigName("config")
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}
	return v, o
}

// Load reads the configured file (if any), merges KEYMCS_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  With no options it behaves like LoadFromEnv.
func Load(opts ...LoadOption) (*Config, error) {
	v, o := prepare(opts)
	if o.path != "" || len(o.searchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case stderrors.As(err, &notFound) && o.path == "":
				// Search paths are optional.
			case isNotExist(err):
				return nil, fmt.Errorf("config: %q: %w", o.path, ErrConfigFileNotFound)
			default:
				return nil, fmt.Errorf("config: %w: %v", ErrConfigParseError, err)
			}
		}
	}
	return unmarshalAndFinalize(v)
}

// LoadFromFile is Load(WithConfigPath(path)).
func LoadFromFile(path string) (*Config, error) {
	return Load(WithConfigPath(path))
}

// LoadFromEnv builds a Config entirely from KEYMCS_* environment variables,
// with no config file required.
//
//	KEYMCS_<SECTION>_<FIELD>   e.g.  KEYMCS_MATCHING_ITERATION_CAP, KEYMCS_SERVER_PORT
func LoadFromEnv() (*Config, error) {
	return Load()
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w: %v", ErrConfigValidation, err)
	}

	return cfg, nil
}

// Watch monitors the config file for changes and invokes onChange with the
// newly parsed Config and the triggering event whenever the file is modified.
// Only settings that are safe to swap at runtime (log level, matching
// limits) should be applied by the callback.
//
// Watch is non-blocking; viper runs the watcher goroutine.  A change that
// fails to parse or validate is reported to onError, when set, and
// onChange is not called.
func Watch(onChange func(*Config, fsnotify.Event), onError func(error), opts ...LoadOption) error {
	v, o := prepare(opts)
	if o.path == "" && len(o.searchPaths) == 0 {
		return errors.InvalidParam("config: watch needs a config file")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: %w: %v", ErrConfigParseError, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg, e)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(opts ...LoadOption) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
