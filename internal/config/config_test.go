package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:         HTTPConfig{Port: 8080},
		ContextStore: ContextStoreConfig{Driver: "redis"},
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}
}

func TestValidate_UnknownContextStoreDriver(t *testing.T) {
	cfg := Config{
		HTTP:         HTTPConfig{Port: 8080},
		ContextStore: ContextStoreConfig{Driver: "memcached"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.ContextStore.Driver != "memory" {
		t.Errorf("expected memory driver default, got %q", cfg.ContextStore.Driver)
	}
	if cfg.Completion.TimeoutSec != 120 {
		t.Errorf("expected 120s completion timeout default, got %d", cfg.Completion.TimeoutSec)
	}
	if cfg.Completion.Model != "gemini-2.0-flash" {
		t.Errorf("unexpected default model %q", cfg.Completion.Model)
	}
	if cfg.Uploads.MaxSizeMB != 25 {
		t.Errorf("expected 25MB upload cap default, got %d", cfg.Uploads.MaxSizeMB)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("CLARO_TEST_KEY", "secret123")
	defer os.Unsetenv("CLARO_TEST_KEY")

	in := []byte("api_key: ${CLARO_TEST_KEY}\nmodel: ${CLARO_TEST_MODEL:-gemini-2.0-flash}")
	out := string(expandEnvVars(in))

	want := "api_key: secret123\nmodel: gemini-2.0-flash"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
