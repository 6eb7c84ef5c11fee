package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Backend: BackendConfig{
			Addresses: []string{"http://localhost:9200"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingBackendAddresses(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Addresses = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing backend addresses")
	}
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLimit = 500
	cfg.Search.MaxLimit = 100

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default_limit above max_limit")
	}

	expected := "search.default_limit 500 must not exceed search.max_limit 100"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Backend.Alias != "appindex_entities" {
		t.Errorf("expected Alias='appindex_entities', got %q", cfg.Backend.Alias)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("expected DefaultLimit=10, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 1000 {
		t.Errorf("expected MaxLimit=1000, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Search.CursorTimeoutMins != 2 {
		t.Errorf("expected CursorTimeoutMins=2, got %d", cfg.Search.CursorTimeoutMins)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Backend:  BackendConfig{Alias: "custom_entities"},
		Search:   SearchConfig{DefaultLimit: 25, MaxLimit: 500, CursorTimeoutMins: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Backend.Alias != "custom_entities" {
		t.Errorf("expected Alias='custom_entities', got %q", cfg.Backend.Alias)
	}
	if cfg.Search.CursorTimeoutMins != 5 {
		t.Errorf("expected CursorTimeoutMins=5, got %d", cfg.Search.CursorTimeoutMins)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("APPINDEX_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${APPINDEX_TEST_PASSWORD}\nalias: ${APPINDEX_TEST_ALIAS:-entities}\n")
	out := string(expandEnvVars(in))

	want := "password: s3cret\nalias: entities\n"
	if out != want {
		t.Errorf("expanded config mismatch:\ngot:  %q\nwant: %q", out, want)
	}
}
