package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/config"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	assert.NoError(t, err)

	assert.Equal(t, carbonmodel.EnergyPerOpJoules, cfg.Model.EnergyPerOpJoules)
	assert.Equal(t, int64(carbonmodel.DefaultLoopIterations), cfg.Model.DefaultLoopIterations)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.False(t, cfg.Analysis.UseFallbackOnly)
}

func TestConfig_CarbonModel_UsesDefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	var cfg config.Config

	got := cfg.CarbonModel()
	want := carbonmodel.Default()

	assert.Equal(t, want, got)
}

func TestConfig_CarbonModel_OverridesOnlySetFields(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Model: config.ModelConfig{DefaultRecursionDepth: 3}}

	got := cfg.CarbonModel()

	assert.Equal(t, int64(3), got.DefaultRecursionDepth)
	assert.Equal(t, carbonmodel.EnergyPerOpJoules, got.EnergyPerOpJoules)
}

func TestConfig_Validate_RejectsNegativeEnergy(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Model: config.ModelConfig{EnergyPerOpJoules: -1}}

	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidEnergyPerOp)
}
