package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("default storage must be in-memory, got dsn %q", cfg.PostgresDSN)
	}
	if cfg.JWTSecret != "" {
		t.Error("jwt secret must not have a default value")
	}
}

func TestReadConfigOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_HTTP_ADDR", ":18080")
	t.Setenv("BACKOFFICE_METRICS_ADDR", ":19090")
	t.Setenv("BACKOFFICE_JWT_SECRET", "secret")
	t.Setenv("BACKOFFICE_POSTGRES_DSN", "postgres://localhost/backoffice")
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("BACKOFFICE_ADMIN_EMAIL", "root@odyo.test")
	t.Setenv("BACKOFFICE_ADMIN_PASSWORD", "root-pass")

	cfg := ReadConfig()
	if cfg.HTTPAddr != ":18080" {
		t.Errorf("http addr override failed: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":19090" {
		t.Errorf("metrics addr override failed: %s", cfg.MetricsAddr)
	}
	if cfg.JWTSecret != "secret" {
		t.Errorf("jwt secret override failed: %s", cfg.JWTSecret)
	}
	if cfg.PostgresDSN != "postgres://localhost/backoffice" {
		t.Errorf("dsn override failed: %s", cfg.PostgresDSN)
	}
	if cfg.KafkaBrokers != "localhost:9092" {
		t.Errorf("brokers override failed: %s", cfg.KafkaBrokers)
	}
	if cfg.AdminEmail != "root@odyo.test" || cfg.AdminPassword != "root-pass" {
		t.Error("admin account override failed")
	}
}
