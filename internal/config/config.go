package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-now/internal/location"
)

// APIKeyName is the entry the key file must carry.
const APIKeyName = "weatherApiKey"

// ErrAPIKeyMissing is returned when the key file or its weatherApiKey entry is absent.
var ErrAPIKeyMissing = errors.New("weather api key missing")

var validate = validator.New()

// Location modes.
const (
	LocationPush    = "push"
	LocationStatic  = "static"
	LocationGeocode = "geocode"
)

type AppConfig struct {
	App      AppSettings    `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Display  DisplayConfig  `mapstructure:"display"`
	Location LocationConfig `mapstructure:"location"`
}

type AppSettings struct {
	Env string `mapstructure:"env" validate:"oneof=dev prod"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
}

// WeatherConfig configures the outbound weather API.
type WeatherConfig struct {
	BaseURL string `mapstructure:"baseurl" validate:"required,url"`
	KeyFile string `mapstructure:"keyfile" validate:"required"`

	// Timeout bounds a single fetch. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

type DisplayConfig struct {
	Locale string `mapstructure:"locale"`
}

// LocationConfig selects and configures the location source.
type LocationConfig struct {
	Mode       string  `mapstructure:"mode" validate:"oneof=push static geocode"`
	Authorized bool    `mapstructure:"authorized"`
	Latitude   float64 `mapstructure:"latitude"`
	Longitude  float64 `mapstructure:"longitude"`

	// Geocode mode.
	GeocoderKey string `mapstructure:"geocoderkey"`
	Street      string `mapstructure:"street"`
	City        string `mapstructure:"city"`
	State       string `mapstructure:"state"`
	Country     string `mapstructure:"country"`
}

// Coordinate returns the configured static coordinate.
func (l LocationConfig) Coordinate() location.Coordinate {
	return location.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Load reads configuration from an optional .env, an optional config.yaml
// and WEATHER_NOW_* environment variables, in increasing precedence.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvPrefix("WEATHER_NOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("weather.baseurl", "http://api.weatherstack.com")
	v.SetDefault("weather.keyfile", "weather.env")
	v.SetDefault("weather.timeout", "0s")
	v.SetDefault("display.locale", "en")
	v.SetDefault("location.mode", LocationPush)
	v.SetDefault("location.authorized", false)
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("location.geocoderkey", "")
	v.SetDefault("location.street", "")
	v.SetDefault("location.city", "")
	v.SetDefault("location.state", "")
	v.SetDefault("location.country", "")
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.App.Env = strings.TrimSpace(cfg.App.Env)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Location.Mode = strings.ToLower(strings.TrimSpace(cfg.Location.Mode))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch cfg.Location.Mode {
	case LocationGeocode:
		if cfg.Location.GeocoderKey == "" {
			return nil, fmt.Errorf("invalid config: location.geocoderkey is required in geocode mode")
		}
		if cfg.Location.City == "" && cfg.Location.Street == "" {
			return nil, fmt.Errorf("invalid config: location.city or location.street is required in geocode mode")
		}
	case LocationStatic:
		if err := cfg.Location.Coordinate().Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: static location: %w", err)
		}
	}

	return &cfg, nil
}

// ServerAddr returns the listen address in the format ":port".
func (c *AppConfig) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// LoadAPIKey reads the weatherApiKey entry from a KEY=value file. A missing
// file or entry is reported as ErrAPIKeyMissing.
func LoadAPIKey(path string) (string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrAPIKeyMissing, path, err)
	}

	key := strings.TrimSpace(values[APIKeyName])
	if key == "" {
		return "", fmt.Errorf("%w: %s has no %s entry", ErrAPIKeyMissing, path, APIKeyName)
	}
	return key, nil
}
