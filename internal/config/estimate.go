// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/phygon975/API-project/internal/common"
	"github.com/phygon975/API-project/internal/cost"
)

// DefaultDatabasePath returns the database location used when none is
// configured: ~/.local/share/capex/capex.db, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "capex.db"
	}
	return filepath.Join(home, ".local", "share", "capex", "capex.db")
}

// DatabasePath resolves the database path from Viper configuration.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return DefaultDatabasePath()
}

// LoadCostConfig builds the cost engine configuration from Viper. The
// target index follows this precedence:
// 1. cost.index (an explicit CEPCI value)
// 2. cost.index_year (resolved against the published series)
// Neither being set is a configuration error.
func LoadCostConfig() (cost.Config, error) {
	cfg := cost.Config{
		DefaultMaterial: viper.GetString("cost.default_material"),
		FoulingFactor:   viper.GetFloat64("cost.fouling_factor"),
	}
	if cfg.DefaultMaterial == "" {
		cfg.DefaultMaterial = "CS"
	}
	if cfg.FoulingFactor == 0 {
		cfg.FoulingFactor = cost.DefaultConfig().FoulingFactor
	}

	// Viper lowercases map keys read from config files; block names are
	// upper-case by simulator convention, so normalize here.
	if overrides := viper.GetStringMapString("cost.material_overrides"); len(overrides) > 0 {
		cfg.MaterialOverrides = make(map[string]string, len(overrides))
		for device, material := range overrides {
			cfg.MaterialOverrides[strings.ToUpper(device)] = material
		}
	}

	if overrides := viper.GetStringMapString("cost.pressure_overrides"); len(overrides) > 0 {
		cfg.PressureOverrides = make(map[string]float64, len(overrides))
		for device, raw := range overrides {
			var factor float64
			if _, err := fmt.Sscanf(raw, "%g", &factor); err != nil {
				return cost.Config{}, fmt.Errorf("pressure override for %s is not a number (%q): %w",
					device, raw, common.ErrInvalidConfig)
			}
			cfg.PressureOverrides[strings.ToUpper(device)] = factor
		}
	}

	index, err := resolveTargetIndex()
	if err != nil {
		return cost.Config{}, err
	}
	cfg.TargetIndex = index

	return cfg, nil
}

func resolveTargetIndex() (float64, error) {
	if viper.IsSet("cost.index") {
		index := viper.GetFloat64("cost.index")
		if index <= 0 {
			return 0, fmt.Errorf("cost.index must be positive, got %v: %w", index, common.ErrInvalidConfig)
		}
		return index, nil
	}

	if viper.IsSet("cost.index_year") {
		year := viper.GetInt("cost.index_year")
		index, ok := cost.IndexForYear(year)
		if !ok {
			years := cost.IndexYears()
			return 0, fmt.Errorf("no published index for %d (have %d-%d): %w",
				year, years[0], years[len(years)-1], common.ErrInvalidConfig)
		}
		return index, nil
	}

	// The target index decides every dollar figure in the run, so it is
	// never guessed. The run fails before classification starts.
	return 0, fmt.Errorf("cost index target is not configured: set cost.index or cost.index_year (or pass --index / --index-year): %w",
		common.ErrMissingConfig)
}
