// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/internal/mliselect"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/market"
)

// Configuration holds all configuration for deal-analyzer. A deal file
// describes one residential deal and, optionally, one multifamily deal;
// either section may be omitted.
type Configuration struct {
	Deal      *analyzer.DealInputs `yaml:"deal,omitempty"`
	MliSelect *mliselect.Inputs    `yaml:"mliSelect,omitempty"`
	Logging   LoggingConfig        `yaml:"logging,omitempty"`
	Output    OutputConfig         `yaml:"output,omitempty"`
	Server    ServerConfig         `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// ServerConfig holds the HTTP server options
type ServerConfig struct {
	Address       string `yaml:"address,omitempty"`
	MaxUploadSize int64  `yaml:"maxUploadSize,omitempty"`
	ScenarioDir   string `yaml:"scenarioDir,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Nothing here is fatal: the engines coerce bad
// numerics to defaults, so validation only flags what the user probably did
// not intend.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Deal == nil && c.MliSelect == nil {
		warnings = append(warnings, "no deal or mliSelect section found; nothing to analyze")
	}

	if c.Deal != nil {
		warnings = append(warnings, validateDeal(c.Deal)...)
	}
	if c.MliSelect != nil {
		warnings = append(warnings, validateMliSelect(c.MliSelect)...)
	}

	switch c.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown output format %q; using %s", c.Output.Format, constants.OutputFormatPretty))
	}

	return warnings
}

func validateDeal(d *analyzer.DealInputs) []string {
	var warnings []string

	if d.Market != "" {
		if _, ok := market.Profiles[d.Market]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown market %q; using %s", d.Market, market.DefaultMarket))
		}
	}
	if d.Price < 0 {
		warnings = append(warnings, "deal.price is negative; using the default")
	}
	if d.DownPaymentPct > 1 {
		warnings = append(warnings, "deal.downPaymentPct is a fraction (0.20 means 20%); values above 1 fall back to the default")
	}
	if d.InterestRate > 0 && d.InterestRate < 1 {
		warnings = append(warnings, "deal.interestRate looks fractional; rates are in percent (3.8 means 3.8%)")
	}
	if d.Price > constants.MaxInsurablePrice && d.DownPaymentPct > 0 && d.DownPaymentPct < constants.ConventionalDownPct {
		warnings = append(warnings, "price above the insurable ceiling with under 20% down; insured financing will not apply")
	}

	ownerUnits := 0
	for _, u := range d.Units {
		if u.OwnerOccupied {
			ownerUnits++
		}
	}
	if ownerUnits > 1 {
		warnings = append(warnings, "multiple units marked owner-occupied; only one household can live in the property")
	}

	return warnings
}

func validateMliSelect(m *mliselect.Inputs) []string {
	var warnings []string

	if m.Market != "" {
		if _, ok := market.MliProfiles[m.Market]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown MLI market %q; using %s", m.Market, market.DefaultMliMarket))
		}
	}

	units := 0
	for _, u := range m.Units {
		units += u.Count
	}
	if units > 0 && units < constants.MliMinUnits {
		warnings = append(warnings, fmt.Sprintf("MLI Select requires at least %d rental units; found %d", constants.MliMinUnits, units))
	}

	switch m.AffordabilityPoints {
	case 0, 50, 70, 100:
	default:
		warnings = append(warnings, fmt.Sprintf("affordabilityPoints must be one of 0/50/70/100; %d scores as 0", m.AffordabilityPoints))
	}
	switch m.EnergyPoints {
	case 0, 20, 35, 50:
	default:
		warnings = append(warnings, fmt.Sprintf("energyPoints must be one of 0/20/35/50; %d scores as 0", m.EnergyPoints))
	}
	switch m.AccessibilityPoints {
	case 0, 20, 30:
	default:
		warnings = append(warnings, fmt.Sprintf("accessibilityPoints must be one of 0/20/30; %d scores as 0", m.AccessibilityPoints))
	}
	if m.DurationBonus && m.AffordabilityPoints == 0 {
		warnings = append(warnings, "durationBonus has no effect without an affordability commitment")
	}

	return warnings
}
