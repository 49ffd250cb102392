package risk

import "caucion/native/fixedpoint"

// Position is a value snapshot of one vault at a point in time. It has no
// identity or lifecycle here: the on-chain read layer (or the mock store)
// owns the canonical state and lends this copy for the duration of a
// computation. All derived metrics are recomputed fresh from a Position.
type Position struct {
	// Collateral is the pledged collateral in its minor unit (sats).
	Collateral fixedpoint.Amount
	// Debt is the outstanding debt in the stable asset's minor unit.
	Debt fixedpoint.Amount
	// PriceUSD is the price of one whole collateral unit, scaled to the
	// market's price decimals.
	PriceUSD fixedpoint.Amount
}

// Metrics carries the three derived risk figures for a position. LTVBps is an
// unscaled basis-point integer; HealthFactor and LiquidationPrice are scaled
// to the market's health-factor and price decimals respectively.
type Metrics struct {
	LTVBps           fixedpoint.Amount
	HealthFactor     fixedpoint.Amount
	LiquidationPrice fixedpoint.Amount
}

// Status buckets a health factor into the bands the dashboard colours by.
type Status string

const (
	StatusHealthy      Status = "healthy"
	StatusWarning      Status = "warning"
	StatusDanger       Status = "danger"
	StatusLiquidatable Status = "liquidatable"
)
