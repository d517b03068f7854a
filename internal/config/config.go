// Package config loads hub settings from configs/config.yml and SMARTHUB_* environment variables.
package config

import (
	"strings"
	"time"
	_ "time/tzdata" // zone database for minimal containers

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SMARTHUB_DB_PATH.
const EnvPrefix = "SMARTHUB"

type Config struct {
	Port     string         `mapstructure:"port"`
	Greeting string         `mapstructure:"greeting"`
	Timezone string         `mapstructure:"timezone"`
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Log      LogConfig      `mapstructure:"log"`
	Location LocationConfig `mapstructure:"location"`
	Geocode  UpstreamConfig `mapstructure:"geocode"`
	Sunset   UpstreamConfig `mapstructure:"sunset"`
	Graph    GraphConfig    `mapstructure:"graph"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
}

type ServerConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// LocationConfig names the place whose sunset drives "sunset" light settings.
// When both coordinates are set the place is not geocoded.
type LocationConfig struct {
	Place     string   `mapstructure:"place"`
	Latitude  *float64 `mapstructure:"latitude"`
	Longitude *float64 `mapstructure:"longitude"`
}

// HasCoordinates reports whether the location was given numerically.
func (l LocationConfig) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type GraphConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type AuthConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// MQTTConfig enables actuator publishing when Broker is non-empty.
type MQTTConfig struct {
	Broker   string        `mapstructure:"broker"`
	ClientID string        `mapstructure:"client_id"`
	Topic    string        `mapstructure:"topic"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("greeting", "This that ECSE3038 IOT Project Mayne!")
	v.SetDefault("timezone", "America/Jamaica")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "smarthub.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("location.place", "Hyderabad")

	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "smarthub/1.0")
	v.SetDefault("geocode.timeout", 10*time.Second)
	v.SetDefault("sunset.base_url", "https://api.sunrise-sunset.org")
	v.SetDefault("sunset.timeout", 10*time.Second)

	v.SetDefault("graph.max_size", 1000)
	v.SetDefault("cors.allowed_origins", []string{
		"https://simple-smart-hub-client.netlify.app",
		"http://localhost:8000",
	})

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "smarthub")
	v.SetDefault("mqtt.topic", "smarthub/actuators")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.timeout", 5*time.Second)
}

// Load reads config.yml from dir (if present) and applies environment overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if dir == "" {
		dir = "configs"
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No defaults exist for these, so Unmarshal would not see them otherwise.
	for _, key := range []string{"location.latitude", "location.longitude"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "bind env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read config file")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	return c, validate(c)
}

// Zone loads the configured IANA time zone.
func (c Config) Zone() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %q", c.Timezone)
	}
	return loc, nil
}

func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if strings.TrimSpace(c.Port) == "" {
		return errors.Wrap(ErrEmptyPort, invalidErrMessage)
	}
	if _, err := c.Zone(); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}
	for name, d := range map[string]time.Duration{
		"geocode.timeout": c.Geocode.Timeout,
		"sunset.timeout":  c.Sunset.Timeout,
		"mqtt.timeout":    c.MQTT.Timeout,
	} {
		if d <= 0 {
			return errors.Wrapf(ErrBadTimeout, "%s: %s", invalidErrMessage, name)
		}
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return errors.Wrap(ErrPartialCoordinates, invalidErrMessage)
	}
	if !c.Location.HasCoordinates() && strings.TrimSpace(c.Location.Place) == "" {
		return errors.Wrap(ErrEmptyPlace, invalidErrMessage)
	}
	if c.Auth.Enabled && c.Auth.SigningKey == "" {
		return errors.Wrap(ErrNoSigningKey, invalidErrMessage)
	}
	return nil
}
