package carbonmodel

import (
	"fmt"
	"math"
)

// CategoryFootprint is the energy/CO2 figure for one deployment tier.
type CategoryFootprint struct {
	Label       string
	Description string
	EnergyJ     float64
	CarbonG     float64
}

// CarbonBreakdown is the three-tier daily footprint plus their sum.
type CarbonBreakdown struct {
	UserEnd      CategoryFootprint
	DeveloperEnd CategoryFootprint
	ServerSide   CategoryFootprint
	Total        CategoryFootprint
}

// EnergyJoules converts a weighted operation total into joules.
func EnergyJoules(cfg Config, totalWeightedOps int64) float64 {
	return clamp(float64(totalWeightedOps) * cfg.EnergyPerOpJoules)
}

// EnergyKWh converts joules into kilowatt-hours.
func EnergyKWh(cfg Config, joules float64) float64 {
	return clamp(joules / cfg.JoulesPerKWh)
}

// CarbonGrams converts kWh into grams of CO2.
func CarbonGrams(cfg Config, kwh float64) float64 {
	return clamp(kwh * cfg.CarbonGPerKWh)
}

func gramsFromJoules(cfg Config, joules float64) float64 {
	return CarbonGrams(cfg, EnergyKWh(cfg, joules))
}

// Breakdown computes the §4.9 three-tier daily footprint from a base
// per-execution joule figure. All tiers derive from the same base B so
// that Total is always the pointwise sum of the three (testable property 8).
func Breakdown(cfg Config, baseJoules float64) CarbonBreakdown {
	userJ := clamp(baseJoules * cfg.DevicePowerOverhead * float64(cfg.AssumedDailyUserExecs))
	devJ := clamp(baseJoules * cfg.DevEnvironmentMultiplier)
	serverJ := clamp(baseJoules*cfg.ServerPUE*float64(cfg.AssumedDailyServerReqs) +
		cfg.NetworkEnergyPerRequestJ*float64(cfg.AssumedDailyServerReqs))

	userEnd := CategoryFootprint{
		Label:       "User End",
		Description: descUserEnd(cfg),
		EnergyJ:     userJ,
		CarbonG:     gramsFromJoules(cfg, userJ),
	}
	devEnd := CategoryFootprint{
		Label:       "Developer End",
		Description: descDevEnd(cfg),
		EnergyJ:     devJ,
		CarbonG:     gramsFromJoules(cfg, devJ),
	}
	serverSide := CategoryFootprint{
		Label:       "Server Side",
		Description: descServerSide(cfg),
		EnergyJ:     serverJ,
		CarbonG:     gramsFromJoules(cfg, serverJ),
	}

	total := CategoryFootprint{
		Label:       "Total",
		Description: "Sum of user end, developer end, and server side tiers",
		EnergyJ:     clamp(userEnd.EnergyJ + devEnd.EnergyJ + serverSide.EnergyJ),
		CarbonG:     clamp(userEnd.CarbonG + devEnd.CarbonG + serverSide.CarbonG),
	}

	return CarbonBreakdown{
		UserEnd:      userEnd,
		DeveloperEnd: devEnd,
		ServerSide:   serverSide,
		Total:        total,
	}
}

func descUserEnd(cfg Config) string {
	return fmt.Sprintf("%d daily executions × %gx device overhead",
		int64(cfg.AssumedDailyUserExecs), cfg.DevicePowerOverhead)
}

func descDevEnd(cfg Config) string {
	return fmt.Sprintf("%gx developer environment multiplier applied to a single execution",
		cfg.DevEnvironmentMultiplier)
}

func descServerSide(cfg Config) string {
	return fmt.Sprintf("%d daily requests × %g PUE, plus per-request network energy",
		int64(cfg.AssumedDailyServerReqs), cfg.ServerPUE)
}

// clamp replaces NaN/Inf with a representable, non-negative number (§7:
// invalid serialization input must be clamped rather than propagated).
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	if v < 0 {
		return 0
	}

	return v
}
