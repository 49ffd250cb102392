package risk

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Default protocol parameters, matching the values enforced by the vault
// contracts. The liquidation threshold is deliberately configuration rather
// than a constant: parts of the original protocol documentation quote 70% and
// others 75%, so the figure must always come from the deployed configuration.
const (
	DefaultMaxLTVBps                 = 6000
	DefaultLiquidationThresholdBps   = 7000
	DefaultLiquidationBonusBps       = 1000
	DefaultWithdrawHealthFactorMinBp = 12000
)

// Thresholds groups the protocol-wide risk limits, all expressed in basis
// points (10000 = 100%). Immutable per evaluation; the engine never mutates
// them.
type Thresholds struct {
	// MaxLTVBps is the maximum loan-to-value ratio permitted for new debt.
	MaxLTVBps uint64 `toml:"MaxLTVBps"`
	// LiquidationThresholdBps is the collateral ratio below which a position
	// becomes eligible for liquidation.
	LiquidationThresholdBps uint64 `toml:"LiquidationThresholdBps"`
	// LiquidationBonusBps is the extra collateral awarded to a liquidator.
	LiquidationBonusBps uint64 `toml:"LiquidationBonusBps"`
	// WithdrawHealthFactorMinBps is the minimum post-withdrawal health factor,
	// strictly above 10000 (1.0) so a withdrawal can never leave a position on
	// the liquidation boundary.
	WithdrawHealthFactorMinBps uint64 `toml:"WithdrawHealthFactorMinBps"`
}

// EnsureDefaults fills zero fields with the protocol defaults.
func (t *Thresholds) EnsureDefaults() {
	if t.MaxLTVBps == 0 {
		t.MaxLTVBps = DefaultMaxLTVBps
	}
	if t.LiquidationThresholdBps == 0 {
		t.LiquidationThresholdBps = DefaultLiquidationThresholdBps
	}
	if t.LiquidationBonusBps == 0 {
		t.LiquidationBonusBps = DefaultLiquidationBonusBps
	}
	if t.WithdrawHealthFactorMinBps == 0 {
		t.WithdrawHealthFactorMinBps = DefaultWithdrawHealthFactorMinBp
	}
}

// Validate rejects configurations that would make the guard predicates
// vacuous or contradictory.
func (t Thresholds) Validate() error {
	if t.MaxLTVBps == 0 || t.MaxLTVBps >= 10_000 {
		return fmt.Errorf("risk: MaxLTVBps must be within (0, 10000), got %d", t.MaxLTVBps)
	}
	if t.LiquidationThresholdBps == 0 || t.LiquidationThresholdBps > 10_000 {
		return fmt.Errorf("risk: LiquidationThresholdBps must be within (0, 10000], got %d", t.LiquidationThresholdBps)
	}
	if t.MaxLTVBps >= t.LiquidationThresholdBps {
		return fmt.Errorf("risk: MaxLTVBps %d must be below LiquidationThresholdBps %d", t.MaxLTVBps, t.LiquidationThresholdBps)
	}
	if t.WithdrawHealthFactorMinBps <= 10_000 {
		return fmt.Errorf("risk: WithdrawHealthFactorMinBps must exceed 10000, got %d", t.WithdrawHealthFactorMinBps)
	}
	return nil
}

// LoadThresholds reads protocol risk parameters from a TOML file, applying
// defaults for omitted fields.
func LoadThresholds(path string) (Thresholds, error) {
	var t Thresholds
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Thresholds{}, fmt.Errorf("risk: decode thresholds: %w", err)
	}
	t.EnsureDefaults()
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// MarketConfig fixes the decimal scales of the three quantities a position is
// made of, plus the scale used for derived health factors. The math layer is
// decimals-parametric; these defaults match the deployed assets (sats for
// collateral, stable minor units for debt, an E8 USD price).
type MarketConfig struct {
	CollateralDecimals   uint `toml:"CollateralDecimals"`
	DebtDecimals         uint `toml:"DebtDecimals"`
	PriceDecimals        uint `toml:"PriceDecimals"`
	HealthFactorDecimals uint `toml:"HealthFactorDecimals"`
}

// DefaultMarketConfig returns the scales for the BTC/stable market.
func DefaultMarketConfig() MarketConfig {
	return MarketConfig{
		CollateralDecimals:   8,
		DebtDecimals:         6,
		PriceDecimals:        8,
		HealthFactorDecimals: 6,
	}
}
