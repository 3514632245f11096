package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig     *AppConfig
	BrowserConfig *BrowserConfig
	FinderConfig  *FinderConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type BrowserConfig struct {
	Headless   bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	SlowMo     int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	NavTimeout int    `envconfig:"BROWSER_NAV_TIMEOUT" default:"60000"`
	CacheDir   string `envconfig:"BROWSER_CACHE_DIR" default:".dom_cache"`
	CacheTTL   int    `envconfig:"BROWSER_CACHE_TTL" default:"3600"`
}

type FinderConfig struct {
	DefaultResultCount int `envconfig:"FINDER_RESULT_COUNT" default:"5"`
	BatchResultCount   int `envconfig:"FINDER_BATCH_RESULT_COUNT" default:"3"`
	MaxTextElements    int `envconfig:"FINDER_MAX_TEXT_ELEMENTS" default:"100"`
	MaxAttrElements    int `envconfig:"FINDER_MAX_ATTR_ELEMENTS" default:"50"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	return &conf, nil
}
