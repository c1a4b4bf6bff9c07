// Package config reads the service configuration from etc/main.toml.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON names the environment variable holding a JSON document merged over main.toml.
const EnvConfigJSON = "RBAC_ADMIN_CONFIG_JSON"

const (
	defaultShutDownTime   = 5
	defaultSessionTable   = "sessions"
	defaultSessionDriver  = SessionMemory
	invalidConfigErrorMsg = "invalid config"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		v   = viper.New()
		err error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v.SetConfigFile(filepath.Join(path, "main.toml"))

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		if err = mergeJSON(v, configAsJSON); err != nil {
			return Config{}, err
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

func mergeJSON(v *viper.Viper, configAsJSON string) error {
	v.SetConfigType("json")

	if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
		return errors.Wrap(err, "failed to merge "+EnvConfigJSON)
	}

	return nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode config as toml")
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", errors.Wrap(err, "failed to encode config as json")
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without and fills defaults.
func validate(c *Config) error {
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidConfigErrorMsg)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidConfigErrorMsg)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = EngineSQLite
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidConfigErrorMsg)
	}

	if c.Webserver.Session.Driver == "" {
		c.Webserver.Session.Driver = defaultSessionDriver
	}

	if c.Webserver.Session.Table == "" {
		c.Webserver.Session.Table = defaultSessionTable
	}

	switch c.Webserver.Session.Driver {
	case SessionMemory, SessionRedis:
	case SessionMySQL, SessionPostgres:
		if c.Webserver.Session.Driver != c.DB.GormEngine {
			return errors.Wrap(ErrSessionDriverNeedsDB, invalidConfigErrorMsg)
		}
	default:
		return errors.Wrap(ErrUnknownSessionDriver, invalidConfigErrorMsg)
	}

	return nil
}
