package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_PASSWORD_FILE", "DB_SSLMODE", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := Default()

		if cfg.Database.Host != "db" {
			t.Errorf("expected database host db, got %s", cfg.Database.Host)
		}
		if cfg.Database.User != "root" {
			t.Errorf("expected database user root, got %s", cfg.Database.User)
		}
		if cfg.Database.Name != "example" {
			t.Errorf("expected database name example, got %s", cfg.Database.Name)
		}
		if cfg.Database.PasswordFile != "/run/secrets/db-password" {
			t.Errorf("expected password file /run/secrets/db-password, got %s", cfg.Database.PasswordFile)
		}
		if cfg.Database.Port != 5432 {
			t.Errorf("expected database port 5432, got %d", cfg.Database.Port)
		}
		if cfg.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", cfg.Server.Port)
		}
		if cfg.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("expected shutdown timeout 10s, got %s", cfg.Server.ShutdownTimeout)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 8080}
		if got := s.Addr(); got != "127.0.0.1:8080" {
			t.Errorf("expected 127.0.0.1:8080, got %s", got)
		}
		s.Host = ""
		if got := s.Addr(); got != ":8080" {
			t.Errorf("expected :8080, got %s", got)
		}
	})

	t.Run("Load", func(t *testing.T) {
		t.Run("file overrides defaults", func(t *testing.T) {
			clearEnv(t)
			path := writeConfig(t, `[server]
port = 8080

[database]
host = "postgres.internal"
name = "songs"
password_file = "/etc/topsongs/password"
max_conns = 10
`)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Server.Port != 8080 {
				t.Errorf("expected server port 8080, got %d", cfg.Server.Port)
			}
			if cfg.Database.Host != "postgres.internal" {
				t.Errorf("expected database host postgres.internal, got %s", cfg.Database.Host)
			}
			if cfg.Database.PasswordFile != "/etc/topsongs/password" {
				t.Errorf("expected password file /etc/topsongs/password, got %s", cfg.Database.PasswordFile)
			}
			if cfg.Database.MaxConns != 10 {
				t.Errorf("expected max_conns 10, got %d", cfg.Database.MaxConns)
			}
			if cfg.Database.User != "root" {
				t.Errorf("unset keys should keep defaults, got user %s", cfg.Database.User)
			}
		})

		t.Run("missing default path falls back to defaults", func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())

			cfg, err := Load(DefaultPath)
			if err != nil {
				t.Fatalf("missing %s should not fail: %v", DefaultPath, err)
			}
			if cfg.Database.Host != "db" {
				t.Errorf("expected default host db, got %s", cfg.Database.Host)
			}
		})

		t.Run("missing explicit path fails", func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing config file")
			}
		})

		t.Run("malformed file fails", func(t *testing.T) {
			clearEnv(t)
			path := writeConfig(t, "[server\nport = ")
			if _, err := Load(path); err == nil {
				t.Error("expected parse error")
			}
		})

		t.Run("environment wins over file", func(t *testing.T) {
			clearEnv(t)
			path := writeConfig(t, "[database]\nhost = \"from-file\"\n")
			t.Setenv("DB_HOST", "from-env")
			t.Setenv("DB_PORT", "6543")
			t.Setenv("DB_PASSWORD_FILE", "/tmp/pw")
			t.Setenv("PORT", "9000")
			t.Setenv("LOG_LEVEL", "debug")

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.Database.Host != "from-env" {
				t.Errorf("expected host from-env, got %s", cfg.Database.Host)
			}
			if cfg.Database.Port != 6543 {
				t.Errorf("expected database port 6543, got %d", cfg.Database.Port)
			}
			if cfg.Database.PasswordFile != "/tmp/pw" {
				t.Errorf("expected password file /tmp/pw, got %s", cfg.Database.PasswordFile)
			}
			if cfg.Server.Port != 9000 {
				t.Errorf("expected server port 9000, got %d", cfg.Server.Port)
			}
			if cfg.Log.Level != "debug" {
				t.Errorf("expected log level debug, got %s", cfg.Log.Level)
			}
		})

		t.Run("non-numeric port in environment", func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_PORT", "five")

			_, err := Load(writeConfig(t, ""))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Config)
		}{
			{"empty host", func(c *Config) { c.Database.Host = "" }},
			{"empty user", func(c *Config) { c.Database.User = "" }},
			{"empty name", func(c *Config) { c.Database.Name = "" }},
			{"empty password file", func(c *Config) { c.Database.PasswordFile = "" }},
			{"database port zero", func(c *Config) { c.Database.Port = 0 }},
			{"server port too large", func(c *Config) { c.Server.Port = 70000 }},
			{"no connections", func(c *Config) { c.Database.MaxConns = 0 }},
			{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
			{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := Default()
				tt.mutate(cfg)

				err := cfg.Validate()
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
