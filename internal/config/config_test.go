package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	conf, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", conf.AppConfig.LogLevel)
	assert.True(t, conf.BrowserConfig.Headless)
	assert.Equal(t, 60000, conf.BrowserConfig.NavTimeout)
	assert.Equal(t, ".dom_cache", conf.BrowserConfig.CacheDir)
	assert.Equal(t, 3600, conf.BrowserConfig.CacheTTL)
	assert.Equal(t, 5, conf.FinderConfig.DefaultResultCount)
	assert.Equal(t, 3, conf.FinderConfig.BatchResultCount)
	assert.Equal(t, 100, conf.FinderConfig.MaxTextElements)
	assert.Equal(t, 50, conf.FinderConfig.MaxAttrElements)
}
