package source

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"caucion/native/fixedpoint"
	"caucion/native/risk"
)

func mustAmount(t *testing.T, text string, decimals uint) fixedpoint.Amount {
	t.Helper()
	a, err := fixedpoint.ParseDecimal(text, decimals)
	require.NoError(t, err)
	return a
}

func testManagerSource(t *testing.T) *OnchainSource {
	t.Helper()
	managerABI, err := abi.JSON(strings.NewReader(vaultManagerABIJSON))
	require.NoError(t, err)
	return &OnchainSource{managerABI: managerABI}
}

func packVaultData(t *testing.T, s *OnchainSource, collateral, principal, interest int64, active bool) []byte {
	t.Helper()
	raw, err := s.managerABI.Methods["getVaultData"].Outputs.Pack(
		big.NewInt(collateral),
		big.NewInt(principal),
		big.NewInt(interest),
		big.NewInt(0),
		big.NewInt(0),
		big.NewInt(0),
		active,
	)
	require.NoError(t, err)
	return raw
}

func TestDecodeVaultSumsAccruedInterest(t *testing.T) {
	s := testManagerSource(t)
	owner := common.HexToAddress("0x742d35Cc6634C0532925a3b8D4C9db96590c6C87")

	// 1 BTC collateral, 40000 principal, 3000 accrued interest.
	raw := packVaultData(t, s, 100_000_000, 40_000_000_000, 3_000_000_000, true)
	v, err := s.decodeVault(7, owner, raw)
	require.NoError(t, err)
	require.Equal(t, uint64(7), v.ID)
	require.Equal(t, owner.Hex(), v.Owner)
	require.Equal(t, "100000000", v.Collateral.String())
	require.Equal(t, "43000000000", v.Debt.String())
}

func TestDecodeVaultInterestCrossesLiquidationBoundary(t *testing.T) {
	s := testManagerSource(t)
	owner := common.HexToAddress("0x742d35Cc6634C0532925a3b8D4C9db96590c6C87")
	raw := packVaultData(t, s, 100_000_000, 40_000_000_000, 3_000_000_000, true)
	v, err := s.decodeVault(0, owner, raw)
	require.NoError(t, err)

	var thresholds risk.Thresholds
	thresholds.EnsureDefaults()
	engine := risk.NewEngine(risk.DefaultMarketConfig(), thresholds)
	price := mustAmount(t, "60000", 8)

	// On principal alone HF would be 42000/40000 = 1.05; with accrued interest
	// the contract-effective debt is 43000, so HF = 42000/43000 < 1 and the
	// position is liquidatable.
	hf := engine.HealthFactor(risk.Position{Collateral: v.Collateral, Debt: v.Debt, PriceUSD: price})
	require.Equal(t, "976744", hf.String())
	require.True(t, engine.CanLiquidate(&hf, false).OK)
}

func TestDecodeVaultInactive(t *testing.T) {
	s := testManagerSource(t)
	owner := common.HexToAddress("0x742d35Cc6634C0532925a3b8D4C9db96590c6C87")
	raw := packVaultData(t, s, 100_000_000, 0, 0, false)
	_, err := s.decodeVault(0, owner, raw)
	require.ErrorIs(t, err, ErrVaultNotFound)
}
