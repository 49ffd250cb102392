package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"caucion/native/display"
	"caucion/native/fixedpoint"
	"caucion/native/risk"
	"caucion/services/riskd/source"
)

const requestBodyLimit = 1 << 20 // 1 MiB

// vaultView is the exact-precision wire shape for one vault. Scaled integers
// travel as decimal strings so no handler ever narrows a monetary value
// through a float. AprBps and LastAccrualTs come only from the demo store;
// the contract view does not expose them, so they are omitted when zero.
type vaultView struct {
	ID                  uint64 `json:"id"`
	Owner               string `json:"owner"`
	CollateralBTC       string `json:"collateralBtc"`
	DebtUSD             string `json:"debtUsd"`
	AprBps              uint64 `json:"aprBps,omitempty"`
	LastAccrualTs       int64  `json:"lastAccrualTs,omitempty"`
	PriceUSD            string `json:"priceUsd"`
	LTVBps              string `json:"ltvBps"`
	HealthFactor        string `json:"healthFactor"`
	LiquidationPriceUSD string `json:"liquidationPriceUsd"`
	Status              string `json:"status"`
	CollateralDisplay   string `json:"collateralDisplay"`
	DebtDisplay         string `json:"debtDisplay"`
}

type guardView struct {
	Result      risk.GuardResult `json:"result"`
	Metrics     *metricsView     `json:"metrics,omitempty"`
	Liquidation *liquidationView `json:"liquidation,omitempty"`
}

// liquidationView carries the incentive figures for an eligible liquidation:
// how much debt one call may repay and the bonus paid on top, both in the
// debt asset's units.
type liquidationView struct {
	MaxRepayUSD string `json:"maxRepayUsd"`
	RewardUSD   string `json:"rewardUsd"`
}

type metricsView struct {
	LTVBps              string `json:"ltvBps"`
	HealthFactor        string `json:"healthFactor"`
	LiquidationPriceUSD string `json:"liquidationPriceUsd"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) price(w http.ResponseWriter, r *http.Request) {
	price, err := s.source.Price(r.Context())
	if err != nil {
		s.log.Error("price lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "price unavailable")
		return
	}
	market := s.engine.Market()
	writeData(w, http.StatusOK, map[string]string{
		"priceUsd": fixedpoint.Format(price, market.PriceDecimals),
		"priceE8":  price.String(),
		"display":  display.Currency(price, display.AssetUSD),
	})
}

func (s *Server) listVaults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := queryInt(query.Get("limit"), 20)
	if err != nil || limit <= 0 || limit > 100 {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "limit must be within [1, 100]")
		return
	}
	offset, err := queryInt(query.Get("offset"), 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "offset must be non-negative")
		return
	}
	statusFilter := query.Get("status")
	switch risk.Status(statusFilter) {
	case "", risk.StatusHealthy, risk.StatusWarning, risk.StatusDanger, risk.StatusLiquidatable:
	default:
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "unknown status filter")
		return
	}

	market := s.engine.Market()
	var minHF fixedpoint.Amount
	if raw := query.Get("minHf"); raw != "" {
		minHF, err = fixedpoint.ParseDecimal(raw, market.HealthFactorDecimals)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidQuery, "minHf: "+err.Error())
			return
		}
	}
	var maxLTV fixedpoint.Amount
	if raw := query.Get("maxLtvBps"); raw != "" {
		bps, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidQuery, "maxLtvBps must be an integer")
			return
		}
		maxLTV = fixedpoint.FromUint64(bps)
	}

	vaults, err := s.source.Vaults(r.Context())
	if err != nil {
		s.log.Error("vault listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "vault source unavailable")
		return
	}
	price, err := s.source.Price(r.Context())
	if err != nil {
		s.log.Error("price lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "price unavailable")
		return
	}

	views := make([]vaultView, 0, len(vaults))
	for _, vault := range vaults {
		view, metrics := s.buildView(vault, price)
		if statusFilter != "" && view.Status != statusFilter {
			continue
		}
		if minHF.Set() && metrics.HealthFactor.Cmp(minHF) < 0 {
			continue
		}
		if maxLTV.Set() && metrics.LTVBps.Cmp(maxLTV) > 0 {
			continue
		}
		views = append(views, view)
	}

	total := len(views)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"vaults": views[offset:end],
		"pagination": map[string]int{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (s *Server) getVault(w http.ResponseWriter, r *http.Request) {
	vault, price, ok := s.loadVault(w, r)
	if !ok {
		return
	}
	view, _ := s.buildView(vault, price)
	writeData(w, http.StatusOK, view)
}

func (s *Server) guardBorrow(w http.ResponseWriter, r *http.Request) {
	vault, price, ok := s.loadVault(w, r)
	if !ok {
		return
	}
	market := s.engine.Market()
	amount, ok := s.decodeAmount(w, r, market.DebtDecimals)
	if !ok {
		return
	}
	position := positionOf(vault, price)
	result := s.engine.CanBorrow(position, amount, true, false)
	s.recordGuard("borrow", result)

	view := guardView{Result: result}
	if result.OK {
		projected := position
		projected.Debt = fixedpoint.Add(position.Debt, amount)
		view.Metrics = s.metricsViewOf(projected)
	}
	writeData(w, http.StatusOK, view)
}

func (s *Server) guardWithdraw(w http.ResponseWriter, r *http.Request) {
	vault, price, ok := s.loadVault(w, r)
	if !ok {
		return
	}
	market := s.engine.Market()
	amount, ok := s.decodeAmount(w, r, market.CollateralDecimals)
	if !ok {
		return
	}
	position := positionOf(vault, price)
	result := s.engine.CanWithdraw(position, amount, true, false)
	s.recordGuard("withdraw", result)

	view := guardView{Result: result}
	if result.OK {
		projected := position
		projected.Collateral = fixedpoint.SubFloor(position.Collateral, amount)
		view.Metrics = s.metricsViewOf(projected)
	}
	writeData(w, http.StatusOK, view)
}

func (s *Server) guardClose(w http.ResponseWriter, r *http.Request) {
	vault, _, ok := s.loadVault(w, r)
	if !ok {
		return
	}
	result := risk.CanClose(vault.Debt, true, false)
	s.recordGuard("close", result)
	writeData(w, http.StatusOK, guardView{Result: result})
}

func (s *Server) guardLiquidate(w http.ResponseWriter, r *http.Request) {
	vault, price, ok := s.loadVault(w, r)
	if !ok {
		return
	}
	position := positionOf(vault, price)
	hf := s.engine.HealthFactor(position)
	result := s.engine.CanLiquidate(&hf, false)
	s.recordGuard("liquidate", result)

	view := guardView{Result: result}
	if result.OK {
		market := s.engine.Market()
		view.Liquidation = &liquidationView{
			MaxRepayUSD: fixedpoint.Format(s.engine.MaxLiquidationAmount(position), market.DebtDecimals),
			RewardUSD:   fixedpoint.Format(s.engine.LiquidationReward(position), market.DebtDecimals),
		}
	}
	writeData(w, http.StatusOK, view)
}

// loadVault resolves the {id} route parameter plus the current price, writing
// the error response itself when either step fails.
func (s *Server) loadVault(w http.ResponseWriter, r *http.Request) (source.Vault, fixedpoint.Amount, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "vault id must be an unsigned integer")
		return source.Vault{}, fixedpoint.Amount{}, false
	}
	vault, err := s.source.Vault(r.Context(), id)
	if errors.Is(err, source.ErrVaultNotFound) {
		writeError(w, http.StatusNotFound, codeVaultNotFound, "vault not found")
		return source.Vault{}, fixedpoint.Amount{}, false
	}
	if err != nil {
		s.log.Error("vault lookup failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "vault source unavailable")
		return source.Vault{}, fixedpoint.Amount{}, false
	}
	price, err := s.source.Price(r.Context())
	if err != nil {
		s.log.Error("price lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "price unavailable")
		return source.Vault{}, fixedpoint.Amount{}, false
	}
	return vault, price, true
}

// decodeAmount reads the {"amount": "<decimal>"} request body and parses it
// losslessly at the given scale. Parse failures surface the fixed-point error
// code so the form can show the exact remedy.
func (s *Server) decodeAmount(w http.ResponseWriter, r *http.Request, decimals uint) (fixedpoint.Amount, bool) {
	var body struct {
		Amount string `json:"amount"`
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, requestBodyLimit))
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody, "request body must be JSON with an amount field")
		return fixedpoint.Amount{}, false
	}
	amount, err := fixedpoint.ParseDecimal(body.Amount, decimals)
	if err != nil {
		writeError(w, http.StatusBadRequest, fixedpoint.Code(err), err.Error())
		return fixedpoint.Amount{}, false
	}
	return amount, true
}

func (s *Server) buildView(vault source.Vault, price fixedpoint.Amount) (vaultView, risk.Metrics) {
	market := s.engine.Market()
	position := positionOf(vault, price)
	metrics := s.engine.Metrics(position)
	status := s.engine.Status(metrics.HealthFactor)

	return vaultView{
		ID:                  vault.ID,
		Owner:               vault.Owner,
		CollateralBTC:       fixedpoint.Format(vault.Collateral, market.CollateralDecimals),
		DebtUSD:             fixedpoint.Format(vault.Debt, market.DebtDecimals),
		AprBps:              vault.AprBps,
		LastAccrualTs:       vault.LastAccrual,
		PriceUSD:            fixedpoint.Format(price, market.PriceDecimals),
		LTVBps:              metrics.LTVBps.String(),
		HealthFactor:        fixedpoint.Format(metrics.HealthFactor, market.HealthFactorDecimals),
		LiquidationPriceUSD: fixedpoint.Format(metrics.LiquidationPrice, market.PriceDecimals),
		Status:              string(status),
		CollateralDisplay:   display.Currency(vault.Collateral, display.AssetBTC),
		DebtDisplay:         display.Currency(vault.Debt, display.AssetStable),
	}, metrics
}

func (s *Server) metricsViewOf(p risk.Position) *metricsView {
	market := s.engine.Market()
	metrics := s.engine.Metrics(p)
	return &metricsView{
		LTVBps:              metrics.LTVBps.String(),
		HealthFactor:        fixedpoint.Format(metrics.HealthFactor, market.HealthFactorDecimals),
		LiquidationPriceUSD: fixedpoint.Format(metrics.LiquidationPrice, market.PriceDecimals),
	}
}

func (s *Server) recordGuard(action string, result risk.GuardResult) {
	verdict := "allowed"
	if !result.OK {
		verdict = "rejected"
	}
	s.metrics.Guards.WithLabelValues(action, verdict).Inc()
}

func positionOf(vault source.Vault, price fixedpoint.Amount) risk.Position {
	return risk.Position{
		Collateral: vault.Collateral,
		Debt:       vault.Debt,
		PriceUSD:   price,
	}
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
