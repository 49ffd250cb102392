package risk

import "caucion/native/fixedpoint"

// Basis points represent a fraction with four implied decimal places
// (10000 = 1.0), which is what lets a bps figure participate directly in the
// scaled multiply/divide operations.
const basisPointDecimals = 4

// healthFactorInfinite is the bounded sentinel reported for debt-free
// positions, rendered as "999" (or the infinity glyph) by the dashboard. The
// division is never attempted for zero debt.
const healthFactorInfinite = 999

// Engine derives the risk metrics for vault positions and evaluates the guard
// predicates that gate user actions. All methods are pure functions of their
// inputs plus the immutable configuration captured at construction: the
// engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	market     MarketConfig
	thresholds Thresholds
}

// NewEngine builds an engine for one market. Zero threshold fields are filled
// with the protocol defaults.
func NewEngine(market MarketConfig, thresholds Thresholds) *Engine {
	thresholds.EnsureDefaults()
	return &Engine{market: market, thresholds: thresholds}
}

// Thresholds returns the risk limits the engine evaluates against.
func (e *Engine) Thresholds() Thresholds { return e.thresholds }

// Market returns the decimal scales the engine computes with.
func (e *Engine) Market() MarketConfig { return e.market }

// LTV computes the loan-to-value ratio of a position in basis points,
// truncated toward zero. A position with zero collateral (or a zero price)
// reports zero: the protocol admits no debt without collateral, so this is a
// degenerate snapshot rather than an error path.
func (e *Engine) LTV(p Position) fixedpoint.Amount {
	collateralValue := e.collateralValueUSD(p)
	if collateralValue.IsZero() {
		return fixedpoint.Zero()
	}
	numerator := fixedpoint.Mul(e.debtValueUSD(p), fixedpoint.FromUint64(10_000), 0)
	ltv, err := fixedpoint.Div(numerator, collateralValue, 0)
	if err != nil {
		return fixedpoint.Zero()
	}
	return ltv
}

// HealthFactor computes the position's health factor at the market's
// health-factor scale. Debt-free positions report the bounded infinity
// sentinel without ever attempting the division. A health factor at or above
// 1.0 is solvent under the liquidation threshold; below 1.0 the position is
// eligible for liquidation.
func (e *Engine) HealthFactor(p Position) fixedpoint.Amount {
	if p.Debt.IsZero() {
		return e.InfiniteHealthFactor()
	}
	collateralValue := e.collateralValueUSD(p)
	if collateralValue.IsZero() {
		return fixedpoint.Zero()
	}
	liquidationValue := fixedpoint.Mul(collateralValue,
		fixedpoint.FromUint64(e.thresholds.LiquidationThresholdBps), basisPointDecimals)

	debtValue := e.debtValueUSD(p)
	if debtValue.IsZero() {
		// Debt too small to register at price precision; effectively unbounded.
		return e.InfiniteHealthFactor()
	}
	hf, err := fixedpoint.Div(liquidationValue, debtValue, e.market.HealthFactorDecimals)
	if err != nil {
		return fixedpoint.Zero()
	}
	return hf
}

// LiquidationPrice computes the collateral price at which the health factor
// equals exactly 1, truncated at the market's price scale. Zero collateral
// yields zero: no meaningful liquidation price exists without collateral.
func (e *Engine) LiquidationPrice(p Position) fixedpoint.Amount {
	if p.Collateral.IsZero() {
		return fixedpoint.Zero()
	}
	numerator := fixedpoint.Mul(e.debtValueUSD(p), fixedpoint.FromUint64(10_000), 0)
	collateral := fixedpoint.Rescale(p.Collateral, e.market.CollateralDecimals, e.market.PriceDecimals)
	denominator := fixedpoint.Mul(collateral,
		fixedpoint.FromUint64(e.thresholds.LiquidationThresholdBps), 0)
	price, err := fixedpoint.Div(numerator, denominator, e.market.PriceDecimals)
	if err != nil {
		return fixedpoint.Zero()
	}
	return price
}

// Metrics derives all three risk figures for a position in one call.
func (e *Engine) Metrics(p Position) Metrics {
	return Metrics{
		LTVBps:           e.LTV(p),
		HealthFactor:     e.HealthFactor(p),
		LiquidationPrice: e.LiquidationPrice(p),
	}
}

// Status buckets a health factor into the dashboard's display bands.
func (e *Engine) Status(healthFactor fixedpoint.Amount) Status {
	switch {
	case healthFactor.Cmp(e.healthFactorAt(15, 1)) >= 0:
		return StatusHealthy
	case healthFactor.Cmp(e.healthFactorAt(12, 1)) >= 0:
		return StatusWarning
	case healthFactor.Cmp(e.healthFactorAt(1, 0)) >= 0:
		return StatusDanger
	default:
		return StatusLiquidatable
	}
}

// closeFactorBps caps how much of a position's debt a single liquidation may
// repay: half, matching the contract's close factor.
const closeFactorBps = 5000

// MaxLiquidationAmount is the largest slice of debt a single liquidation may
// repay, in the debt asset's units, truncated toward zero.
func (e *Engine) MaxLiquidationAmount(p Position) fixedpoint.Amount {
	return fixedpoint.Mul(p.Debt, fixedpoint.FromUint64(closeFactorBps), basisPointDecimals)
}

// LiquidationReward is the bonus paid to the liquidator on top of the repaid
// debt, in the debt asset's units: the maximum repayable amount marked up by
// the configured liquidation bonus.
func (e *Engine) LiquidationReward(p Position) fixedpoint.Amount {
	return fixedpoint.Mul(e.MaxLiquidationAmount(p),
		fixedpoint.FromUint64(e.thresholds.LiquidationBonusBps), basisPointDecimals)
}

// InfiniteHealthFactor returns the sentinel reported for debt-free positions.
func (e *Engine) InfiniteHealthFactor() fixedpoint.Amount {
	return e.healthFactorAt(healthFactorInfinite, 0)
}

// collateralValueUSD is collateral * price at price precision.
func (e *Engine) collateralValueUSD(p Position) fixedpoint.Amount {
	return fixedpoint.Mul(p.Collateral, p.PriceUSD, e.market.CollateralDecimals)
}

// debtValueUSD normalises the stable-asset debt to price precision.
func (e *Engine) debtValueUSD(p Position) fixedpoint.Amount {
	return fixedpoint.Rescale(p.Debt, e.market.DebtDecimals, e.market.PriceDecimals)
}

// healthFactorAt builds the value digits*10^-digitDecimals at the market's
// health-factor scale, e.g. (15, 1) is 1.5.
func (e *Engine) healthFactorAt(digits uint64, digitDecimals uint) fixedpoint.Amount {
	return fixedpoint.Rescale(fixedpoint.FromUint64(digits), digitDecimals, e.market.HealthFactorDecimals)
}
