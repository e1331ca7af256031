// Package config loads the service configuration from YAML files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath     = "."
	defaultEnv      = "local"
	envProfileKey   = "APP_ENV"
	productionEnv   = "production"
	defaultTokenTTL = 7 * 24 * time.Hour
)

// Config is the root configuration object threaded explicitly through every
// component; there is no ambient global lookup.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Upload UploadConfig `json:"upload" yaml:"upload"`
}

// AuthConfig defines session token and password hashing configuration.
type AuthConfig struct {
	// Secret signs session tokens. Required in the production profile;
	// there is deliberately no built-in fallback value there.
	Secret string `json:"secret" yaml:"secret"`

	// TokenTTL is the session token lifetime. Defaults to 7 days.
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`

	// BcryptCost overrides the bcrypt cost factor. Zero means the
	// library default.
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// UploadConfig defines where uploaded blobs are stored and served from.
type UploadConfig struct {
	// BucketURL is a gocloud.dev bucket URL, e.g.
	// "file://./uploads?create_dir=true".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicPrefix is the URL path prefix uploaded objects are served
	// under, e.g. "/uploads".
	PublicPrefix string `json:"publicPrefix" yaml:"publicPrefix"`

	// LocalDir is the directory echo serves statically for the local
	// file bucket.
	LocalDir string `json:"localDir" yaml:"localDir"`
}

// Log defines logger output configuration.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// New loads the configuration for the profile named by APP_ENV (default
// "local") and applies defaults and startup validation.
func New() (*Config, error) {
	profile := os.Getenv(envProfileKey)
	if profile == "" {
		profile = defaultEnv
	}

	cfg, err := LoadWithEnv[Config](profile, "config")
	if err != nil {
		return nil, err
	}

	if cfg.Env.Env == "" {
		cfg.Env.Env = profile
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Upload.PublicPrefix == "" {
		cfg.Upload.PublicPrefix = "/uploads"
	}

	// Refuse to run production on a guessable signing secret.
	if cfg.Env.Env == productionEnv && cfg.Auth.Secret == "" {
		return nil, errors.New("auth.secret must be configured in the production profile")
	}

	return cfg, nil
}

// LoadWithEnv loads <profile>.yaml through koanf and overlays environment
// variables (AUTH_SECRET -> auth.secret).
func LoadWithEnv[T any](profile string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, p := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, p))
		}
	}

	var configFile string
	for _, p := range searchPaths {
		candidate := filepath.Join(p, profile+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile != "" {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", profile)
		}
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// AUTH_SECRET -> auth.secret; matching against struct
			// fields below is case-insensitive.
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", profile)
	}

	return cfg, nil
}
