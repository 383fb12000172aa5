// Package config loads the CLI configuration from an optional YAML file,
// PIPETAG_ environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PIPETAG"

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// IdentityConfig holds the default routing fields used when a command does
// not receive them explicitly. Ranges are checked again by the codec.
type IdentityConfig struct {
	ClientID int64 `mapstructure:"client" validate:"gte=0,lte=65535"`
	QueryID  int64 `mapstructure:"query" validate:"gte=0,lte=255"`
	ShardID  int64 `mapstructure:"shard" validate:"gte=0,lte=255"`
	AppID    int64 `mapstructure:"app" validate:"gte=0,lte=4294967295"`
}

type VerifyConfig struct {
	Results  string `mapstructure:"results"`
	Expected string `mapstructure:"expected"`
	Workers  int    `mapstructure:"workers" validate:"gte=1,lte=64"`
}

type DrainConfig struct {
	Root     string        `mapstructure:"root"`
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Identity IdentityConfig `mapstructure:"identity"`
	Verify   VerifyConfig   `mapstructure:"verify"`
	Drain    DrainConfig    `mapstructure:"drain"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("identity.client", 0)
	v.SetDefault("identity.query", 0)
	v.SetDefault("identity.shard", 0)
	v.SetDefault("identity.app", 0)
	v.SetDefault("verify.results", "")
	v.SetDefault("verify.expected", "")
	v.SetDefault("verify.workers", 4)
	v.SetDefault("drain.root", "")
	v.SetDefault("drain.interval", time.Second)
}

// Load reads file from fs when it is not empty, overlays the environment and
// the flags bound by key (e.g. "drain.root"), and validates the result.
func Load(fs afero.Fs, file string, flags map[string]*pflag.Flag) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("cannot bind flag %q: %w", key, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("cannot read config file %q: %w", file, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cfg and joins every field error into one.
func Validate(cfg Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Use config key in error messages
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(cfg)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		errs = append(errs, fmt.Errorf("key=%q, value=\"%v\", failed %q validation", key, e.Value(), e.ActualTag()))
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

// Environ lists the PIPETAG_ variables currently set, for diagnostics.
func Environ() []string {
	var out []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix+"_") {
			out = append(out, strings.SplitN(kv, "=", 2)[0])
		}
	}
	return out
}
