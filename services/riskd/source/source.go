// Package source abstracts where vault snapshots come from. The risk engine
// never learns which variant is active: callers construct either the
// in-memory demo store or the on-chain reader and hand the interface to the
// HTTP layer.
package source

import (
	"context"
	"errors"

	"caucion/native/fixedpoint"
)

// ErrVaultNotFound reports an unknown vault identifier.
var ErrVaultNotFound = errors.New("source: vault not found")

// Vault is one position snapshot as read from the backing store or chain.
// Collateral is in sats, Debt in the stable asset's minor unit (for the
// on-chain variant, principal plus accrued interest). AprBps and LastAccrual
// are populated by the demo store only; getVaultData does not expose them.
type Vault struct {
	ID          uint64
	Owner       string
	Collateral  fixedpoint.Amount
	Debt        fixedpoint.Amount
	AprBps      uint64
	LastAccrual int64
}

// VaultSource supplies vault snapshots and the current collateral price. The
// price is quoted at the market's price decimals (E8 USD). Implementations
// must be safe for concurrent use.
type VaultSource interface {
	// Price returns the current price of one whole collateral unit.
	Price(ctx context.Context) (fixedpoint.Amount, error)
	// Vaults lists all known vault snapshots.
	Vaults(ctx context.Context) ([]Vault, error)
	// Vault fetches a single vault by identifier, returning ErrVaultNotFound
	// when the identifier is unknown.
	Vault(ctx context.Context, id uint64) (Vault, error)
}
