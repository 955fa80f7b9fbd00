package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXCELTOOLS_LOG_LEVEL", "")
	t.Setenv("EXCELTOOLS_PAGE_SIZE", "")

	cfg := Load()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5000, cfg.PageSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EXCELTOOLS_LOG_LEVEL", "debug")
	t.Setenv("EXCELTOOLS_PAGE_SIZE", "250")

	cfg := Load()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250, cfg.PageSize)
}

func TestLoadInvalidPageSize(t *testing.T) {
	t.Setenv("EXCELTOOLS_PAGE_SIZE", "not-a-number")
	assert.Equal(t, 5000, Load().PageSize)

	t.Setenv("EXCELTOOLS_PAGE_SIZE", "-1")
	assert.Equal(t, 5000, Load().PageSize)
}
