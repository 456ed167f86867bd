package client

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Database != "default" {
		t.Errorf("Database = %q, want default", cfg.Database)
	}
	if cfg.User != "default" {
		t.Errorf("User = %q, want default", cfg.User)
	}
	if cfg.DialTimeout != DefaultDialTimeout {
		t.Errorf("DialTimeout = %s, want %s", cfg.DialTimeout, DefaultDialTimeout)
	}
}

func TestConfigDefaultsPreserveExplicit(t *testing.T) {
	cfg := Config{
		Host:        "ch.internal",
		Port:        9440,
		Database:    "analytics",
		User:        "loader",
		DialTimeout: time.Second,
	}.withDefaults()

	if cfg.Host != "ch.internal" || cfg.Port != 9440 || cfg.Database != "analytics" {
		t.Errorf("Explicit values overwritten: %+v", cfg)
	}
}

func TestConfigAddr(t *testing.T) {
	if got := (Config{Host: "db", Port: 9001}).Addr(); got != "db:9001" {
		t.Errorf("Addr() = %q, want db:9001", got)
	}
	if got := (Config{}).Addr(); got != "localhost:9000" {
		t.Errorf("Addr() = %q, want localhost:9000", got)
	}
	if got := (Config{Host: "::1"}).Addr(); got != "[::1]:9000" {
		t.Errorf("Addr() = %q, want [::1]:9000", got)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{
		Host:        "db",
		Database:    "analytics",
		User:        "loader",
		Password:    "secret",
		Compression: true,
		Settings:    map[string]any{"mutations_sync": 1},
	}

	opts := cfg.options()

	if len(opts.Addr) != 1 || opts.Addr[0] != "db:9000" {
		t.Errorf("Addr = %v, want [db:9000]", opts.Addr)
	}
	if opts.Auth.Database != "analytics" || opts.Auth.Username != "loader" || opts.Auth.Password != "secret" {
		t.Errorf("Auth = %+v", opts.Auth)
	}
	if opts.Compression == nil {
		t.Error("Expected compression to be configured")
	}
	if opts.TLS != nil {
		t.Error("Expected no TLS without Secure")
	}
	if opts.Settings["mutations_sync"] != 1 {
		t.Errorf("Settings = %v", opts.Settings)
	}
}

func TestConfigOptionsSecure(t *testing.T) {
	opts := Config{Secure: true}.options()
	if opts.TLS == nil {
		t.Fatal("Expected TLS config with Secure")
	}
}
