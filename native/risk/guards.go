package risk

import (
	"fmt"

	"caucion/native/fixedpoint"
)

// GuardResult is the verdict on a proposed user action. A rejection is a
// normal, expected outcome rather than an error, and always carries one of
// the fixed reason strings below so the UI can render it directly.
type GuardResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Rejection reasons. The formatted variants embed the configured limit so the
// message tells the user which boundary was hit.
const (
	ReasonWalletNotConnected    = "connect your wallet"
	ReasonDataLoading           = "loading on-chain data"
	ReasonPriceUnavailable      = "price unavailable"
	ReasonInvalidCollateral     = "invalid collateral"
	ReasonInvalidDebt           = "invalid debt"
	ReasonMissingBorrowAmount   = "enter an amount to borrow"
	ReasonMissingWithdrawAmount = "enter an amount to withdraw"
	ReasonInvalidPositionData   = "invalid position data"
	ReasonDebtOutstanding       = "outstanding debt must be repaid first"
	ReasonHealthFactorUnknown   = "health factor unknown"
	ReasonNotLiquidatable       = "health factor at or above 1: not liquidatable"
	ReasonBorrowUnsafe          = "health factor would drop to 1 or below: liquidatable"
	ReasonWithdrawUnsafe        = "health factor after withdrawal would drop to 1 or below: liquidatable"
)

func reasonLTVExceeded(maxLTVBps uint64) string {
	return fmt.Sprintf("LTV would exceed %d%%", maxLTVBps/100)
}

func reasonWithdrawBelowMinimum(minBps uint64) string {
	return fmt.Sprintf("health factor after withdrawal would fall below %s",
		fixedpoint.Format(fixedpoint.FromUint64(minBps), basisPointDecimals))
}

func allow() GuardResult { return GuardResult{OK: true} }

func deny(reason string) GuardResult { return GuardResult{Reason: reason} }

// valid reports whether an amount is present and non-negative. Scaled
// integers cannot be NaN or infinite, so presence and sign are the whole
// check.
func valid(a fixedpoint.Amount) bool {
	return a.Set() && a.Sign() >= 0
}

func positive(a fixedpoint.Amount) bool {
	return a.Set() && a.Sign() > 0
}

// CanBorrow decides whether the position may take on extraDebt of additional
// stable-asset debt. Checks run in a fixed order and stop at the first
// failure, so the most fundamental problem is always the one reported: wallet
// connection, data freshness, then field validity, then the LTV ceiling on
// the hypothetical position, then its health factor. The result mirrors the
// accept/reject boundary the vault contract enforces; it is advisory for the
// UI but must never green-light a transition the contract would reject.
func (e *Engine) CanBorrow(p Position, extraDebt fixedpoint.Amount, walletConnected, dataLoading bool) GuardResult {
	if !walletConnected {
		return deny(ReasonWalletNotConnected)
	}
	if dataLoading {
		return deny(ReasonDataLoading)
	}
	if !valid(p.PriceUSD) {
		return deny(ReasonPriceUnavailable)
	}
	if !valid(p.Collateral) {
		return deny(ReasonInvalidCollateral)
	}
	if !valid(p.Debt) {
		return deny(ReasonInvalidDebt)
	}
	if !positive(extraDebt) {
		return deny(ReasonMissingBorrowAmount)
	}

	hypothetical := p
	hypothetical.Debt = fixedpoint.Add(p.Debt, extraDebt)

	ltv := e.LTV(hypothetical)
	if ltv.Cmp(fixedpoint.FromUint64(e.thresholds.MaxLTVBps)) > 0 {
		return deny(reasonLTVExceeded(e.thresholds.MaxLTVBps))
	}

	// Exactly 1.0 is liquidatable, not safe.
	hf := e.HealthFactor(hypothetical)
	if hf.Cmp(e.healthFactorAt(1, 0)) <= 0 {
		return deny(ReasonBorrowUnsafe)
	}
	return allow()
}

// CanWithdraw decides whether withdrawAmount of collateral may be released.
// The hypothetical collateral is floored at zero, and the resulting health
// factor must clear the configured safety margin (strictly above 1.0) so the
// withdrawal cannot park the position on the liquidation boundary.
func (e *Engine) CanWithdraw(p Position, withdrawAmount fixedpoint.Amount, walletConnected, dataLoading bool) GuardResult {
	if !walletConnected {
		return deny(ReasonWalletNotConnected)
	}
	if dataLoading {
		return deny(ReasonDataLoading)
	}
	if !positive(withdrawAmount) {
		return deny(ReasonMissingWithdrawAmount)
	}
	if !valid(p.PriceUSD) || !valid(p.Collateral) || !valid(p.Debt) {
		return deny(ReasonInvalidPositionData)
	}

	hypothetical := p
	hypothetical.Collateral = fixedpoint.SubFloor(p.Collateral, withdrawAmount)

	hf := e.HealthFactor(hypothetical)
	minimum := e.healthFactorAt(e.thresholds.WithdrawHealthFactorMinBps, basisPointDecimals)
	if hf.Cmp(minimum) < 0 {
		return deny(reasonWithdrawBelowMinimum(e.thresholds.WithdrawHealthFactorMinBps))
	}
	if hf.Cmp(e.healthFactorAt(1, 0)) <= 0 {
		return deny(ReasonWithdrawUnsafe)
	}
	return allow()
}

// CanClose decides whether a vault may be closed. Collateral cannot leave a
// vault while any debt remains, so the only numeric requirement is that the
// outstanding debt is exactly zero.
func CanClose(currentDebt fixedpoint.Amount, walletConnected, dataLoading bool) GuardResult {
	if !walletConnected {
		return deny(ReasonWalletNotConnected)
	}
	if dataLoading {
		return deny(ReasonDataLoading)
	}
	if !valid(currentDebt) {
		return deny(ReasonInvalidDebt)
	}
	if currentDebt.Sign() > 0 {
		return deny(ReasonDebtOutstanding)
	}
	return allow()
}

// CanLiquidate decides whether a third party may liquidate a position with
// the given health factor. A nil health factor means the metric could not be
// computed. The comparison is strict: exactly 1.0 is not yet eligible.
func (e *Engine) CanLiquidate(healthFactor *fixedpoint.Amount, dataLoading bool) GuardResult {
	if dataLoading {
		return deny(ReasonDataLoading)
	}
	if healthFactor == nil || !healthFactor.Set() {
		return deny(ReasonHealthFactorUnknown)
	}
	if healthFactor.Cmp(e.healthFactorAt(1, 0)) >= 0 {
		return deny(ReasonNotLiquidatable)
	}
	return allow()
}
