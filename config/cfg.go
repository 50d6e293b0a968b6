package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	httpapi "github.com/silentpro/dashboard/internal/api/http"
	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/report"
	"github.com/silentpro/dashboard/internal/spapi"
	"github.com/silentpro/dashboard/log"
)

// Config represents the global configuration for the service.
type Config struct {
	Logger   log.Config      `mapstructure:"logger"`
	HTTP     httpapi.Config  `mapstructure:"http"`
	Upstream spapi.Config    `mapstructure:"upstream"`
	Calendar calendar.Config `mapstructure:"calendar"`
	Report   report.Config   `mapstructure:"report"`
	Catalog  catalog.Config  `mapstructure:"catalog"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g. UPSTREAM__BASE_URL for
// upstream.base_url.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/silentpro-dashboard")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys, so flat env names
// work next to nested config file keys.
func bindEnvVars() {
	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.static_dir", "HTTP_STATIC_DIR")
	viper.BindEnv("http.report_rate_max", "HTTP_REPORT_RATE_MAX")
	viper.BindEnv("http.report_rate_window", "HTTP_REPORT_RATE_WINDOW")

	// Upstream marketplace API
	viper.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	viper.BindEnv("upstream.access_token", "UPSTREAM_ACCESS_TOKEN")
	viper.BindEnv("upstream.marketplace_id", "UPSTREAM_MARKETPLACE_ID")
	viper.BindEnv("upstream.http_timeout", "UPSTREAM_HTTP_TIMEOUT")

	// Business calendar
	viper.BindEnv("calendar.day_start_hour_utc", "CALENDAR_DAY_START_HOUR_UTC")
	viper.BindEnv("calendar.local_offset_hours", "CALENDAR_LOCAL_OFFSET_HOURS")

	// Report pipeline pacing
	viper.BindEnv("report.max_orders", "REPORT_MAX_ORDERS")
	viper.BindEnv("report.page_size", "REPORT_PAGE_SIZE")
	viper.BindEnv("report.page_delay", "REPORT_PAGE_DELAY")
	viper.BindEnv("report.item_delay", "REPORT_ITEM_DELAY")
	viper.BindEnv("report.item_attempts", "REPORT_ITEM_ATTEMPTS")
	viper.BindEnv("report.item_backoff_base", "REPORT_ITEM_BACKOFF_BASE")
}
