package config

import "errors"

// ErrInvalidEnergyPerOp is returned when the energy-per-operation
// constant is negative.
var ErrInvalidEnergyPerOp = errors.New("config: energy_per_op_joules must be positive")

// ErrInvalidLoopIterations is returned when the default loop iteration
// bound is negative.
var ErrInvalidLoopIterations = errors.New("config: default_loop_iterations must be positive")

// ErrInvalidRecursionDepth is returned when the default recursion depth
// is negative.
var ErrInvalidRecursionDepth = errors.New("config: default_recursion_depth must be positive")

// Config is the top-level configuration struct for the analyzer core.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Model    ModelConfig    `mapstructure:"model"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Report   ReportConfig   `mapstructure:"report"`
}

// ModelConfig overrides the process-wide energy/carbon constants of
// carbonmodel.Config. Zero-value fields fall back to carbonmodel.Default().
type ModelConfig struct {
	EnergyPerOpJoules        float64 `mapstructure:"energy_per_op_joules"`
	CarbonGPerKWh            float64 `mapstructure:"carbon_g_per_kwh"`
	DefaultLoopIterations    int64   `mapstructure:"default_loop_iterations"`
	DefaultRecursionDepth    int64   `mapstructure:"default_recursion_depth"`
	AssumedDailyUserExecs    int64   `mapstructure:"assumed_daily_user_execs"`
	AssumedDailyServerReqs   int64   `mapstructure:"assumed_daily_server_reqs"`
	ServerPUE                float64 `mapstructure:"server_pue"`
	NetworkEnergyPerRequestJ float64 `mapstructure:"network_energy_per_request_j"`
	DevicePowerOverhead      float64 `mapstructure:"device_power_overhead"`
	DevEnvironmentMultiplier float64 `mapstructure:"dev_environment_multiplier"`
}

// AnalysisConfig holds orchestrator-level knobs.
type AnalysisConfig struct {
	LanguageOverride string `mapstructure:"language_override"`
	UseFallbackOnly  bool   `mapstructure:"use_fallback_only"`
}

// ReportConfig holds output-rendering knobs.
type ReportConfig struct {
	Format      string `mapstructure:"format"`
	HotspotPlot string `mapstructure:"hotspot_plot"`
}

// Validate checks the configuration for internally-consistent values,
// rejecting configurations that would make the deterministic math in
// pkg/carbonmodel misbehave (§7's "no NaN/Inf" guarantee depends on a
// positive divisor set).
func (c *Config) Validate() error {
	if c.Model.EnergyPerOpJoules < 0 {
		return ErrInvalidEnergyPerOp
	}

	if c.Model.DefaultLoopIterations < 0 {
		return ErrInvalidLoopIterations
	}

	if c.Model.DefaultRecursionDepth < 0 {
		return ErrInvalidRecursionDepth
	}

	return nil
}
