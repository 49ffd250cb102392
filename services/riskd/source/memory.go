package source

import (
	"context"
	"sync"

	"caucion/native/fixedpoint"
)

// MemorySource is the demo data variant: a constructor-injected, mutex-guarded
// snapshot store. It deliberately replaces the process-global mutable demo
// state of the original dashboard so evaluations stay pure and tests need no
// bootstrap.
type MemorySource struct {
	mu     sync.RWMutex
	price  fixedpoint.Amount
	vaults map[uint64]Vault
	order  []uint64
}

// NewMemorySource builds a store seeded with the given vaults and price.
func NewMemorySource(price fixedpoint.Amount, vaults []Vault) *MemorySource {
	s := &MemorySource{
		price:  price,
		vaults: make(map[uint64]Vault, len(vaults)),
		order:  make([]uint64, 0, len(vaults)),
	}
	for _, v := range vaults {
		s.vaults[v.ID] = v
		s.order = append(s.order, v.ID)
	}
	return s
}

// NewDemoSource seeds the store with the reference vaults the dashboard ships
// for demo mode: three positions around a 60000 USD price covering the
// healthy, warning and liquidatable bands.
func NewDemoSource() *MemorySource {
	price, _ := fixedpoint.ParseDecimal("60000", 8)
	vault := func(id uint64, owner, collateralBTC, debtStable string, aprBps uint64, lastAccrual int64) Vault {
		collateral, _ := fixedpoint.ParseDecimal(collateralBTC, 8)
		debt, _ := fixedpoint.ParseDecimal(debtStable, 6)
		return Vault{ID: id, Owner: owner, Collateral: collateral, Debt: debt, AprBps: aprBps, LastAccrual: lastAccrual}
	}
	return NewMemorySource(price, []Vault{
		vault(0, "0x742d35Cc6634C0532925a3b8D4C9db96590c6C87", "1.5", "45000", 800, 1700000000),
		vault(1, "0x8ba1f109551bD432803012645Aac136c22C57592", "0.8", "35000", 750, 1700004000),
		vault(2, "0x1234567890123456789012345678901234567890", "2.0", "80000", 900, 1700008000),
	})
}

// SetPrice replaces the quoted price, used by the demo oracle endpoint.
func (s *MemorySource) SetPrice(price fixedpoint.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.price = price
}

// Put inserts or replaces a vault snapshot.
func (s *MemorySource) Put(v Vault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.vaults[v.ID]; !exists {
		s.order = append(s.order, v.ID)
	}
	s.vaults[v.ID] = v
}

func (s *MemorySource) Price(ctx context.Context) (fixedpoint.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.price, nil
}

func (s *MemorySource) Vaults(ctx context.Context) ([]Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Vault, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.vaults[id])
	}
	return out, nil
}

func (s *MemorySource) Vault(ctx context.Context, id uint64) (Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vaults[id]
	if !ok {
		return Vault{}, ErrVaultNotFound
	}
	return v, nil
}
