package main

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BotToken != "test-token" {
		t.Errorf("unexpected token %q", cfg.BotToken)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.StartingBalance != 0 {
		t.Errorf("expected default starting balance 0, got %d", cfg.StartingBalance)
	}
	if cfg.LeaderboardLimit != 10 {
		t.Errorf("expected default leaderboard limit 10, got %d", cfg.LeaderboardLimit)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("PORT", "8080")
	t.Setenv("STARTING_BALANCE", "250")
	t.Setenv("LEADERBOARD_LIMIT", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.StartingBalance != 250 || cfg.LeaderboardLimit != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}
}
