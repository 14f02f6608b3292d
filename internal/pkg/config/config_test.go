package config

import (
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DueBatchSize != 50 {
		t.Fatalf("DueBatchSize = %d, want 50", cfg.DueBatchSize)
	}
	if cfg.DueTickSpec != "@every 1m" {
		t.Fatalf("DueTickSpec = %q", cfg.DueTickSpec)
	}
	if cfg.CleanupSpec != "0 0 0 * * *" {
		t.Fatalf("CleanupSpec = %q", cfg.CleanupSpec)
	}
	if cfg.DispatchTimeout != 10*time.Second {
		t.Fatalf("DispatchTimeout = %v, want 10s", cfg.DispatchTimeout)
	}
	if cfg.MaxDispatchAttempts != 0 {
		t.Fatalf("MaxDispatchAttempts = %d, want 0", cfg.MaxDispatchAttempts)
	}
	if cfg.AlertsEnabled() {
		t.Fatal("alerts should be disabled without LINE credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		"PORT":                  "9090",
		"DUE_BATCH_SIZE":        "10",
		"DISPATCH_TIMEOUT":      "3s",
		"MAX_DISPATCH_ATTEMPTS": "5",
		"CHANNEL_SECRET":        "s",
		"CHANNEL_ACCESS_TOKEN":  "t",
		"MY_USER_ID":            "U1",
	}))
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Port != 9090 || cfg.DueBatchSize != 10 || cfg.MaxDispatchAttempts != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DispatchTimeout != 3*time.Second {
		t.Fatalf("DispatchTimeout = %v, want 3s", cfg.DispatchTimeout)
	}
	if !cfg.AlertsEnabled() {
		t.Fatal("alerts should be enabled")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port not a number", env: map[string]string{"PORT": "abc"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "zero batch", env: map[string]string{"DUE_BATCH_SIZE": "0"}},
		{name: "negative attempts", env: map[string]string{"MAX_DISPATCH_ATTEMPTS": "-1"}},
		{name: "bad timeout", env: map[string]string{"DISPATCH_TIMEOUT": "soon"}},
		{name: "zero timeout", env: map[string]string{"DISPATCH_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(envFrom(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
