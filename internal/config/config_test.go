package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_DefaultLimitAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLimit = 100
	cfg.Search.MaxLimit = 50

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default_limit > max_limit")
	}
	if !strings.Contains(err.Error(), "max_limit") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_KafkaTopicRequiredWithBrokers(t *testing.T) {
	cfg := validConfig()
	cfg.Tracking.Brokers = []string{"kafka:9092"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for brokers without topic")
	}

	cfg.Tracking.Topic = "propwijzer.clicks"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with topic set: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Database.KeyPrefix != "propwijzer:" {
		t.Errorf("key prefix = %q", cfg.Database.KeyPrefix)
	}
	if cfg.Catalog.DataDir != "configs/catalog" {
		t.Errorf("data dir = %q", cfg.Catalog.DataDir)
	}
	if cfg.Search.DefaultLimit != 8 || cfg.Search.MaxLimit != 50 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Tracking.CounterTTLDays != 90 {
		t.Errorf("counter ttl = %d", cfg.Tracking.CounterTTLDays)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Search:   SearchConfig{DefaultLimit: 5, MaxLimit: 20},
		Tracking: TrackingConfig{CounterTTLDays: 7},
	}
	cfg.ApplyDefaults()

	if cfg.Search.DefaultLimit != 5 || cfg.Search.MaxLimit != 20 {
		t.Errorf("explicit search limits overwritten: %+v", cfg.Search)
	}
	if cfg.Tracking.CounterTTLDays != 7 {
		t.Errorf("explicit ttl overwritten: %d", cfg.Tracking.CounterTTLDays)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PW_TEST_ADDR", "redis:6380")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "addr: ${PW_TEST_ADDR}", "addr: redis:6380"},
		{"unset variable", "password: ${PW_TEST_MISSING}", "password: "},
		{"unset with default", "addr: ${PW_TEST_MISSING:-localhost:6379}", "addr: localhost:6379"},
		{"set beats default", "addr: ${PW_TEST_ADDR:-localhost:6379}", "addr: redis:6380"},
		{"no variables", "port: 8080", "port: 8080"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = "supergeheim"
	cfg.Auth.AdminKeys = []string{"key-1", "key-2"}

	out := cfg.String()
	if strings.Contains(out, "supergeheim") {
		t.Error("password leaked into config string")
	}
	if strings.Contains(out, "key-1") {
		t.Error("admin key leaked into config string")
	}
	if !strings.Contains(out, "(2 keys)") {
		t.Errorf("expected masked key count, got:\n%s", out)
	}
}
