package source

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"caucion/native/fixedpoint"
)

// Read-only slices of the deployed contract ABIs. The vault manager exposes a
// per-user view struct; the oracle quotes the collateral price at E8.
const (
	vaultManagerABIJSON = `[{"inputs":[{"name":"user","type":"address"}],"name":"getVaultData","outputs":[{"name":"collateralAmount","type":"uint256"},{"name":"debtAmount","type":"uint256"},{"name":"accruedInterest","type":"uint256"},{"name":"ltv","type":"uint256"},{"name":"healthFactor","type":"uint256"},{"name":"liquidationPrice","type":"uint256"},{"name":"isActive","type":"bool"}],"stateMutability":"view","type":"function"}]`
	oracleABIJSON       = `[{"inputs":[],"name":"getPrice","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`
)

// OnchainSource is the live variant of VaultSource: it reads vault snapshots
// straight from the deployed contracts over an Ethereum JSON-RPC endpoint.
// Vault identifiers index the configured owner list; the protocol has no
// on-chain enumeration, so the owners to watch are supplied by configuration.
type OnchainSource struct {
	client       *ethclient.Client
	vaultManager common.Address
	oracle       common.Address
	owners       []common.Address
	managerABI   abi.ABI
	oracleABI    abi.ABI
}

// DialOnchain connects to the node and prepares the contract bindings.
func DialOnchain(ctx context.Context, rpcURL, vaultManager, oracle string, owners []string) (*OnchainSource, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("source: dial node: %w", err)
	}
	managerABI, err := abi.JSON(strings.NewReader(vaultManagerABIJSON))
	if err != nil {
		return nil, fmt.Errorf("source: parse vault manager abi: %w", err)
	}
	oracleParsed, err := abi.JSON(strings.NewReader(oracleABIJSON))
	if err != nil {
		return nil, fmt.Errorf("source: parse oracle abi: %w", err)
	}
	s := &OnchainSource{
		client:       client,
		vaultManager: common.HexToAddress(vaultManager),
		oracle:       common.HexToAddress(oracle),
		managerABI:   managerABI,
		oracleABI:    oracleParsed,
	}
	for _, owner := range owners {
		trimmed := strings.TrimSpace(owner)
		if trimmed == "" {
			continue
		}
		if !common.IsHexAddress(trimmed) {
			return nil, fmt.Errorf("source: invalid owner address %q", trimmed)
		}
		s.owners = append(s.owners, common.HexToAddress(trimmed))
	}
	return s, nil
}

// Close releases the underlying RPC connection.
func (s *OnchainSource) Close() { s.client.Close() }

func (s *OnchainSource) Price(ctx context.Context) (fixedpoint.Amount, error) {
	data, err := s.oracleABI.Pack("getPrice")
	if err != nil {
		return fixedpoint.Amount{}, fmt.Errorf("source: pack getPrice: %w", err)
	}
	raw, err := s.client.CallContract(ctx, ethereum.CallMsg{To: &s.oracle, Data: data}, nil)
	if err != nil {
		return fixedpoint.Amount{}, fmt.Errorf("source: call oracle: %w", err)
	}
	out, err := s.oracleABI.Unpack("getPrice", raw)
	if err != nil {
		return fixedpoint.Amount{}, fmt.Errorf("source: unpack getPrice: %w", err)
	}
	price, ok := out[0].(*big.Int)
	if !ok {
		return fixedpoint.Amount{}, fmt.Errorf("source: unexpected oracle return type %T", out[0])
	}
	return fixedpoint.New(price), nil
}

func (s *OnchainSource) Vaults(ctx context.Context) ([]Vault, error) {
	vaults := make([]Vault, 0, len(s.owners))
	for id := range s.owners {
		vault, err := s.vaultAt(ctx, uint64(id))
		if errors.Is(err, ErrVaultNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, vault)
	}
	return vaults, nil
}

func (s *OnchainSource) Vault(ctx context.Context, id uint64) (Vault, error) {
	if id >= uint64(len(s.owners)) {
		return Vault{}, ErrVaultNotFound
	}
	return s.vaultAt(ctx, id)
}

func (s *OnchainSource) vaultAt(ctx context.Context, id uint64) (Vault, error) {
	owner := s.owners[id]
	data, err := s.managerABI.Pack("getVaultData", owner)
	if err != nil {
		return Vault{}, fmt.Errorf("source: pack getVaultData: %w", err)
	}
	raw, err := s.client.CallContract(ctx, ethereum.CallMsg{To: &s.vaultManager, Data: data}, nil)
	if err != nil {
		return Vault{}, fmt.Errorf("source: call vault manager: %w", err)
	}
	return s.decodeVault(id, owner, raw)
}

// decodeVault unpacks a getVaultData return blob into a snapshot. Debt is the
// contract's principal plus the interest accrued since the last update; the
// contract settles repayments and liquidations against that sum, so the
// engine must evaluate against the same figure.
func (s *OnchainSource) decodeVault(id uint64, owner common.Address, raw []byte) (Vault, error) {
	out, err := s.managerABI.Unpack("getVaultData", raw)
	if err != nil {
		return Vault{}, fmt.Errorf("source: unpack getVaultData: %w", err)
	}
	collateral, ok := out[0].(*big.Int)
	if !ok {
		return Vault{}, fmt.Errorf("source: unexpected collateral type %T", out[0])
	}
	principal, ok := out[1].(*big.Int)
	if !ok {
		return Vault{}, fmt.Errorf("source: unexpected debt type %T", out[1])
	}
	interest, ok := out[2].(*big.Int)
	if !ok {
		return Vault{}, fmt.Errorf("source: unexpected interest type %T", out[2])
	}
	active, ok := out[6].(bool)
	if !ok {
		return Vault{}, fmt.Errorf("source: unexpected active flag type %T", out[6])
	}
	if !active {
		return Vault{}, ErrVaultNotFound
	}
	return Vault{
		ID:         id,
		Owner:      owner.Hex(),
		Collateral: fixedpoint.New(collateral),
		Debt:       fixedpoint.Add(fixedpoint.New(principal), fixedpoint.New(interest)),
	}, nil
}
