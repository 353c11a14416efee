package settings

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BQUEUE_QUEUE_CAPACITY.
const EnvPrefix = "BQUEUE"

var validate = validator.New()

// Defaults mirror the classic demo: a queue of 5 between two producers of
// 10 items each and two consumers, with 100-500ms pauses.
func setDefaults(v *viper.Viper) {
	v.SetDefault("queue.capacity", 5)

	v.SetDefault("driver.producers", 2)
	v.SetDefault("driver.consumers", 2)
	v.SetDefault("driver.items_per_producer", 10)
	v.SetDefault("driver.min_delay", 100*time.Millisecond)
	v.SetDefault("driver.max_delay", 500*time.Millisecond)

	v.SetDefault("logger.log_level", "info")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)

	v.SetDefault("server.mode", "release")
	v.SetDefault("server.port", 0)
}

// New returns a viper instance with defaults and environment overrides.
// Callers may bind flags on it before passing it to Read.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path (optional) on top of defaults and env,
// then decodes and validates the result.
func Load(path string) (*Config, error) {
	return Read(New(), path)
}

// Read is Load on a caller-prepared viper instance.
func Read(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(ErrReadConfig, "%s: %v", path, err)
		}
	}
	return Decode(v)
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "decode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints declared in the validate tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}
