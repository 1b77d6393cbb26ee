package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/common"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadCostConfig_MissingIndexIsFatal(t *testing.T) {
	resetViper(t)

	_, err := LoadCostConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoadCostConfig_Defaults(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index_year", 2021)

	cfg, err := LoadCostConfig()
	require.NoError(t, err)

	assert.Equal(t, "CS", cfg.DefaultMaterial)
	assert.InDelta(t, 0.9, cfg.FoulingFactor, 1e-9)
}

func TestLoadCostConfig_ExplicitIndexWinsOverYear(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index", 650.0)
	viper.Set("cost.index_year", 2021)

	cfg, err := LoadCostConfig()
	require.NoError(t, err)
	assert.InDelta(t, 650.0, cfg.TargetIndex, 1e-9)
}

func TestLoadCostConfig_IndexYear(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index_year", 2021)

	cfg, err := LoadCostConfig()
	require.NoError(t, err)
	assert.InDelta(t, 708.0, cfg.TargetIndex, 1e-9)
}

func TestLoadCostConfig_UnknownYear(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index_year", 1999)

	_, err := LoadCostConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadCostConfig_NegativeIndex(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index", -1.0)

	_, err := LoadCostConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadCostConfig_PressureOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("cost.index_year", 2021)
	viper.Set("cost.pressure_overrides", map[string]string{"P-101": "1.5"})

	cfg, err := LoadCostConfig()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, cfg.PressureOverrides["P-101"], 1e-9)
}

func TestLoadCostConfig_BadPressureOverride(t *testing.T) {
	resetViper(t)
	viper.Set("cost.pressure_overrides", map[string]string{"P-101": "high"})

	_, err := LoadCostConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("CAPEX_TEST_DIR", "/data")

	assert.Equal(t, "/data/capex.db", ExpandPath("$CAPEX_TEST_DIR/capex.db"))
	assert.Empty(t, ExpandPath(""))
}
