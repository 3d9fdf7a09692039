package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ROUND_INTERVAL", "STARTING_BALANCE", "HISTORY_SIZE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.RoundInterval != 7*time.Second {
		t.Errorf("RoundInterval = %v, want 7s", cfg.RoundInterval)
	}
	if cfg.StartingBalance != 10 {
		t.Errorf("StartingBalance = %d, want 10", cfg.StartingBalance)
	}
	if cfg.HistorySize != 10 {
		t.Errorf("HistorySize = %d, want 10", cfg.HistorySize)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ROUND_INTERVAL", "500ms")
	t.Setenv("STARTING_BALANCE", "100")
	t.Setenv("HISTORY_SIZE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.RoundInterval != 500*time.Millisecond {
		t.Errorf("RoundInterval = %v, want 500ms", cfg.RoundInterval)
	}
	if cfg.StartingBalance != 100 {
		t.Errorf("StartingBalance = %d, want 100", cfg.StartingBalance)
	}
	if cfg.HistorySize != 5 {
		t.Errorf("HistorySize = %d, want 5", cfg.HistorySize)
	}
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("ROUND_INTERVAL", "abc")

	if _, err := Load(); err == nil {
		t.Error("Load should fail on an unparsable interval")
	}
}
