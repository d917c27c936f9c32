package config

/*
	go test -v ./internal/config -count=1
*/

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// setSecrets preenche as variáveis obrigatórias.
func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "segredo-de-teste")
	t.Setenv("ADMIN_PASSWORD", "senha-admin")
	t.Setenv("GUEST_PASSWORD", "senha-convidado")
}

func mustLoad(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_PORT", "STORAGE_BACKEND", "DATA_PATH", "RABBITMQ_URL", "RABBIT_URI", "SESSION_TTL", "UPLOAD_MAX_BYTES"} {
		t.Setenv(k, "")
	}
	setSecrets(t)
	cfg := mustLoad(t)

	if cfg.Port != "8080" {
		t.Fatalf("port=%q want 8080", cfg.Port)
	}
	if cfg.StorageBackend != StorageFile {
		t.Fatalf("backend=%q want %q", cfg.StorageBackend, StorageFile)
	}
	if cfg.DataPath != "data/dados.csv" {
		t.Fatalf("data path=%q", cfg.DataPath)
	}
	if cfg.RabbitURI != "" {
		t.Fatalf("rabbit deveria vir desligado, got %q", cfg.RabbitURI)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("ttl=%v", cfg.SessionTTL)
	}
	if cfg.UploadMaxBytes != 32<<20 {
		t.Fatalf("upload max=%d", cfg.UploadMaxBytes)
	}
	if cfg.SessionSecret != "segredo-de-teste" || cfg.AdminPassword != "senha-admin" || cfg.GuestPassword != "senha-convidado" {
		t.Fatalf("segredos não vieram do ambiente: %#v", cfg)
	}
}

func TestLoad_RequiresSecrets(t *testing.T) {
	for _, missing := range requiredAPIEnv {
		t.Run(missing, func(t *testing.T) {
			setSecrets(t)
			t.Setenv(missing, "")

			cfg, err := Load()
			if err == nil {
				t.Fatalf("sem %s deveria falhar, got %#v", missing, cfg)
			}
			if cfg != nil {
				t.Fatal("config deveria ser nil no erro")
			}
			if !strings.Contains(err.Error(), missing) {
				t.Fatalf("erro deveria citar %s: %v", missing, err)
			}
		})
	}
}

func TestLoad_NoHardcodedSecrets(t *testing.T) {
	for _, k := range requiredAPIEnv {
		t.Setenv(k, "")
	}
	if _, err := Load(); err == nil {
		t.Fatal("sem segredos no ambiente a API não deveria subir")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("RABBIT_URI", "amqp://u:p@rabbit:5672/")
	t.Setenv("ADMIN_USER", "chefe")
	t.Setenv("ADMIN_PASSWORD", "segredo")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("GUEST_PASSWORD", "g")

	cfg := mustLoad(t)
	if cfg.Port != "9000" {
		t.Fatalf("port=%q want 9000 (API_PORT)", cfg.Port)
	}
	if cfg.StorageBackend != StorageMongo {
		t.Fatalf("backend=%q", cfg.StorageBackend)
	}
	if cfg.RabbitURI != "amqp://u:p@rabbit:5672/" {
		t.Fatalf("rabbit=%q", cfg.RabbitURI)
	}
	if cfg.AdminUser != "chefe" || cfg.AdminPassword != "segredo" {
		t.Fatalf("credenciais: %q/%q", cfg.AdminUser, cfg.AdminPassword)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("ttl=%v", cfg.SessionTTL)
	}
	if cfg.UploadMaxBytes != 1024 {
		t.Fatalf("upload max=%d", cfg.UploadMaxBytes)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("level=%v", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "amanha")
	t.Setenv("UPLOAD_MAX_BYTES", "muito")
	t.Setenv("WS_PREFETCH", "x")
	setSecrets(t)

	cfg := mustLoad(t)
	if got := cfg.SessionTTL; got != 8*time.Hour {
		t.Fatalf("ttl=%v want default", got)
	}
	if got := cfg.UploadMaxBytes; got != 32<<20 {
		t.Fatalf("upload max=%d want default", got)
	}
	if got := LoadWSConfig().ConsumerPrefetch; got != 50 {
		t.Fatalf("prefetch=%d want 50", got)
	}
}
