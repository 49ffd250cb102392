package risk

import (
	"os"
	"path/filepath"
	"testing"
)

func writeParams(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "risk-params.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write params: %v", err)
	}
	return path
}

func TestLoadThresholds(t *testing.T) {
	path := writeParams(t, `
MaxLTVBps = 5000
LiquidationThresholdBps = 7500
LiquidationBonusBps = 500
WithdrawHealthFactorMinBps = 13000
`)
	got, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("load thresholds: %v", err)
	}
	want := Thresholds{
		MaxLTVBps:                  5000,
		LiquidationThresholdBps:    7500,
		LiquidationBonusBps:        500,
		WithdrawHealthFactorMinBps: 13000,
	}
	if got != want {
		t.Fatalf("thresholds mismatch: got %+v want %+v", got, want)
	}
}

func TestLoadThresholdsAppliesDefaults(t *testing.T) {
	path := writeParams(t, `MaxLTVBps = 5500`)
	got, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("load thresholds: %v", err)
	}
	if got.MaxLTVBps != 5500 {
		t.Fatalf("MaxLTVBps = %d, want 5500", got.MaxLTVBps)
	}
	if got.LiquidationThresholdBps != DefaultLiquidationThresholdBps {
		t.Fatalf("LiquidationThresholdBps = %d, want default %d", got.LiquidationThresholdBps, DefaultLiquidationThresholdBps)
	}
	if got.WithdrawHealthFactorMinBps != DefaultWithdrawHealthFactorMinBp {
		t.Fatalf("WithdrawHealthFactorMinBps = %d, want default %d", got.WithdrawHealthFactorMinBps, DefaultWithdrawHealthFactorMinBp)
	}
}

func TestLoadThresholdsRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"ltv above threshold": "MaxLTVBps = 8000\nLiquidationThresholdBps = 7000",
		"ltv at 100 percent":  "MaxLTVBps = 10000",
		"withdraw min at one": "WithdrawHealthFactorMinBps = 10000",
		"malformed toml":      "MaxLTVBps = ",
	}
	for name, contents := range cases {
		path := writeParams(t, contents)
		if _, err := LoadThresholds(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
