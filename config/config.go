package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/elexon-forecast/logging"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16 `default:"8080" validate:"gt=0"`
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Key used to sign the dashboard session cookie
	SessionKey string `mapstructure:"session_key" default:"elexon-forecast-session-key" validate:"min=16"`
}

type AppConfigElexon struct {
	BaseURL string        `mapstructure:"base_url" default:"https://data.elexon.co.uk/bmrs/api/v1" validate:"url"`
	ApiKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" default:"10s" validate:"gt=0"` // Per remote call
	Workers int           `mapstructure:"workers" default:"3" validate:"min=1,max=6"`
}

type AppConfigDatabase struct {
	// SQLite file holding the application log
	Path string `default:"forecast.db" validate:"required"`
}

type AppConfigGui struct {
	// Timezone of the date inputs, the half hour grid and chart labels
	Timezone string `mapstructure:"timezone" default:"Europe/London" validate:"required"`
	// "immediate" fetches as soon as both dates are valid, "button" waits for the fetch button
	TriggerMode      string `mapstructure:"trigger_mode" default:"button" validate:"oneof=immediate button"`
	DefaultDaysBack  int    `mapstructure:"default_days_back" default:"3" validate:"min=0"`
	DefaultDaysAhead int    `mapstructure:"default_days_ahead" default:"3" validate:"min=1"`
	// Line color per process type, e.g. "intraday_total: green"
	Colors map[string]string `mapstructure:"colors"`
}

type AppConfigRefresh struct {
	Enabled bool   `mapstructure:"enabled" default:"true"`
	RunAt   string `mapstructure:"run_at" default:"*/30 * * * *" validate:"required"`
}

type AppConfigMqtt struct {
	Host     string // Publishing is disabled when empty
	Port     int16  `default:"1883" validate:"gt=0"`
	Username string
	Password string
	Topic    string `default:"elexon/forecast" validate:"required"`
}

func (m AppConfigMqtt) Enabled() bool {
	return m.Host != ""
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for database console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Elexon   AppConfigElexon   `mapstructure:"elexon"`
	Database AppConfigDatabase `mapstructure:"database"`
	Gui      AppConfigGui      `mapstructure:"gui"`
	Refresh  AppConfigRefresh  `mapstructure:"refresh"`
	Mqtt     AppConfigMqtt     `mapstructure:"mqtt"`
	Logging  AppConfigLogging  `mapstructure:"logging"`
}

func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Gui.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", c.Gui.Timezone, err)
	}
	return loc, nil
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("unable to apply config defaults: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Default returns the configuration made of default values only.
func Default() (*AppConfig, error) {
	var c AppConfig
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("unable to apply config defaults: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Validate(c *AppConfig) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
