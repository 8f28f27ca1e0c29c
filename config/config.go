package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/odonslab/dengueview-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

func (a AppConfigApi) GetPort() int16 {
	if a.Port == 0 {
		return 8087
	}
	return a.Port
}

type AppConfigDatabase struct {
	// Defaults to the in-memory store; the report promises no
	// persisted state. A file path is handy when debugging.
	Path *string
	// Days to keep nightly backups of a file-backed store
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == nil {
		return ":memory:"
	}
	return *d.Path
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 14
	}
	return *d.BackupRetentionDays
}

// AppConfigClimate pins the NASA POWER query. The defaults reproduce
// the published study: Rawalpindi, 2013 through 2023, mean temperature
// and corrected precipitation.
type AppConfigClimate struct {
	Latitude   *float64 // Point latitude (WGS84)
	Longitude  *float64 // Point longitude (WGS84)
	Start      *string  // YYYYMMDD, inclusive
	End        *string  // YYYYMMDD, inclusive
	Parameters []string // POWER variable codes
	BaseURL    *string  `mapstructure:"base_url"`
	TimeoutSec *int     `mapstructure:"timeout_sec"`
}

func (c AppConfigClimate) GetLatitude() float64 {
	if c.Latitude == nil {
		return 33.6
	}
	return *c.Latitude
}

func (c AppConfigClimate) GetLongitude() float64 {
	if c.Longitude == nil {
		return 73.0
	}
	return *c.Longitude
}

func (c AppConfigClimate) GetStart() string {
	if c.Start == nil {
		return "20130101"
	}
	return *c.Start
}

func (c AppConfigClimate) GetEnd() string {
	if c.End == nil {
		return "20231201"
	}
	return *c.End
}

func (c AppConfigClimate) GetParameters() []string {
	if len(c.Parameters) == 0 {
		return []string{"T2M", "PRECTOTCORR"}
	}
	return c.Parameters
}

func (c AppConfigClimate) GetBaseURL() string {
	if c.BaseURL == nil {
		return ""
	}
	return *c.BaseURL
}

func (c AppConfigClimate) GetTimeout() time.Duration {
	if c.TimeoutSec == nil {
		return 30 * time.Second
	}
	return time.Duration(*c.TimeoutSec) * time.Second
}

// AppConfigReport governs the pipeline itself: the plausibility floors
// applied before the join, and an optional cron refresh.
type AppConfigReport struct {
	// Lowest plausible monthly mean temperature in the source unit
	MinTemperature *float64 `mapstructure:"min_temperature"`
	// Lowest plausible monthly mean precipitation
	MinPrecipitation *float64 `mapstructure:"min_precipitation"`
	// Cron spec for re-running the pipeline; empty disables refresh
	RunAt *string `mapstructure:"run_at"`
}

func (r AppConfigReport) GetMinTemperature() float64 {
	if r.MinTemperature == nil {
		return -5.0
	}
	return *r.MinTemperature
}

func (r AppConfigReport) GetMinPrecipitation() float64 {
	if r.MinPrecipitation == nil {
		return 0.0
	}
	return *r.MinPrecipitation
}

func (r AppConfigReport) GetRunAt() string {
	if r.RunAt == nil {
		return ""
	}
	return *r.RunAt
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
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
	Database AppConfigDatabase
	Climate  AppConfigClimate
	Report   AppConfigReport
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		// Running without any config file means running on defaults,
		// but an explicitly named file must exist.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
