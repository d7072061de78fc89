package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// configName is the config file name without extension.
const configName = ".watttrace"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for watttrace settings.
const envPrefix = "WATTTRACE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load reads configuration from file, env vars, and defaults. If
// configPath is non-empty it names an explicit config file; otherwise
// the file is searched in the working directory and $HOME. A missing
// config file is not an error — defaults apply.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	def := carbonmodel.Default()

	viperCfg.SetDefault("model.energy_per_op_joules", def.EnergyPerOpJoules)
	viperCfg.SetDefault("model.carbon_g_per_kwh", def.CarbonGPerKWh)
	viperCfg.SetDefault("model.default_loop_iterations", def.DefaultLoopIterations)
	viperCfg.SetDefault("model.default_recursion_depth", def.DefaultRecursionDepth)
	viperCfg.SetDefault("model.assumed_daily_user_execs", def.AssumedDailyUserExecs)
	viperCfg.SetDefault("model.assumed_daily_server_reqs", def.AssumedDailyServerReqs)
	viperCfg.SetDefault("model.server_pue", def.ServerPUE)
	viperCfg.SetDefault("model.network_energy_per_request_j", def.NetworkEnergyPerRequestJ)
	viperCfg.SetDefault("model.device_power_overhead", def.DevicePowerOverhead)
	viperCfg.SetDefault("model.dev_environment_multiplier", def.DevEnvironmentMultiplier)

	viperCfg.SetDefault("analysis.language_override", "")
	viperCfg.SetDefault("analysis.use_fallback_only", false)

	viperCfg.SetDefault("report.format", "table")
	viperCfg.SetDefault("report.hotspot_plot", "")
}

// CarbonModel projects the configured model knobs onto a
// carbonmodel.Config, defaulting every zero-value field to its
// carbonmodel.Default() counterpart so a partially-specified config
// file never zeroes out a constant the math depends on.
func (c *Config) CarbonModel() carbonmodel.Config {
	def := carbonmodel.Default()
	m := c.Model

	cfg := def
	if m.EnergyPerOpJoules != 0 {
		cfg.EnergyPerOpJoules = m.EnergyPerOpJoules
	}

	if m.CarbonGPerKWh != 0 {
		cfg.CarbonGPerKWh = m.CarbonGPerKWh
	}

	if m.DefaultLoopIterations != 0 {
		cfg.DefaultLoopIterations = m.DefaultLoopIterations
	}

	if m.DefaultRecursionDepth != 0 {
		cfg.DefaultRecursionDepth = m.DefaultRecursionDepth
	}

	if m.AssumedDailyUserExecs != 0 {
		cfg.AssumedDailyUserExecs = m.AssumedDailyUserExecs
	}

	if m.AssumedDailyServerReqs != 0 {
		cfg.AssumedDailyServerReqs = m.AssumedDailyServerReqs
	}

	if m.ServerPUE != 0 {
		cfg.ServerPUE = m.ServerPUE
	}

	if m.NetworkEnergyPerRequestJ != 0 {
		cfg.NetworkEnergyPerRequestJ = m.NetworkEnergyPerRequestJ
	}

	if m.DevicePowerOverhead != 0 {
		cfg.DevicePowerOverhead = m.DevicePowerOverhead
	}

	if m.DevEnvironmentMultiplier != 0 {
		cfg.DevEnvironmentMultiplier = m.DevEnvironmentMultiplier
	}

	return cfg
}
