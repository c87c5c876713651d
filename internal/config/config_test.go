package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInputPath = "/data/usaaf_raids.csv"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testInputPath, cfg.InputPath)
	assert.Empty(t, cfg.ChartsDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 256, cfg.FilterCacheSize)
	assert.Equal(t, 0.5, cfg.Score.TargetWeight)
	assert.Equal(t, 0.3, cfg.Score.IncendiaryWeight)
	assert.Equal(t, 0.2, cfg.Score.TonnageWeight)
	assert.Equal(t, 500.0, cfg.Score.TonnageCeiling)
	assert.Equal(t, []string{"CITYAREA", "CITY AREA", "TOWN", "TOWNAREA"}, cfg.Score.AreaCategories)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("CHARTS_DIR", "/var/charts")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FILTER_CACHE_SIZE", "64")
	t.Setenv("SCORE_TARGET_WEIGHT", "0.6")
	t.Setenv("SCORE_INCENDIARY_WEIGHT", "0.25")
	t.Setenv("SCORE_TONNAGE_WEIGHT", "0.15")
	t.Setenv("SCORE_TONNAGE_CEILING", "750")
	t.Setenv("AREA_CATEGORIES", "CITYAREA,URBAN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/charts", cfg.ChartsDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 64, cfg.FilterCacheSize)
	assert.Equal(t, 0.6, cfg.Score.TargetWeight)
	assert.Equal(t, 0.25, cfg.Score.IncendiaryWeight)
	assert.Equal(t, 0.15, cfg.Score.TonnageWeight)
	assert.Equal(t, 750.0, cfg.Score.TonnageCeiling)
	assert.Equal(t, []string{"CITYAREA", "URBAN"}, cfg.Score.AreaCategories)
}

func TestLoad_MissingInputPath(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUT_PATH")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFilterCacheSize(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("FILTER_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILTER_CACHE_SIZE")
}

func TestLoad_NegativeTargetWeight(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("SCORE_TARGET_WEIGHT", "-0.5")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORE_TARGET_WEIGHT")
}

func TestLoad_ZeroIncendiaryWeight(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("SCORE_INCENDIARY_WEIGHT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORE_INCENDIARY_WEIGHT")
}

func TestLoad_InvalidTonnageCeiling(t *testing.T) {
	t.Setenv("INPUT_PATH", testInputPath)
	t.Setenv("SCORE_TONNAGE_CEILING", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORE_TONNAGE_CEILING")
}
