package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT",
		"DATABASE_MAX_IDLE_CONNS",
		"DATABASE_MAX_OPEN_CONNS",
		"DATABASE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Port)
	}
	if cfg.DBMaxIdleConns != 10 {
		t.Errorf("max idle conns = %d, want 10", cfg.DBMaxIdleConns)
	}
	if cfg.DBMaxOpenConns != 100 {
		t.Errorf("max open conns = %d, want 100", cfg.DBMaxOpenConns)
	}
	if cfg.DBLogLevel != "info" {
		t.Errorf("log level = %s, want info", cfg.DBLogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "5")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "50")
	t.Setenv("DATABASE_LOG_LEVEL", "silent")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Port)
	}
	if cfg.DBMaxIdleConns != 5 {
		t.Errorf("max idle conns = %d, want 5", cfg.DBMaxIdleConns)
	}
	if cfg.DBMaxOpenConns != 50 {
		t.Errorf("max open conns = %d, want 50", cfg.DBMaxOpenConns)
	}
	if cfg.DBLogLevel != "silent" {
		t.Errorf("log level = %s, want silent", cfg.DBLogLevel)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "lots")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")

	cfg := Load()
	if cfg.DBMaxOpenConns != 100 {
		t.Errorf("max open conns = %d, 非法取值应回落到默认 100", cfg.DBMaxOpenConns)
	}
}
