package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	StorageFile   = "file"
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// Onde o dataset fica: file | mongo | memory
	StorageBackend string
	DataPath       string
	MongoURI       string
	MongoDB        string

	// vazio desliga a publicação de eventos
	RabbitURI   string
	RabbitQueue string

	// Tabela fixa de credenciais (texto puro, comparação exata); senhas vêm do ambiente
	AdminUser     string
	AdminPassword string
	GuestUser     string
	GuestPassword string

	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration
	SecureCookie  bool

	UploadMaxBytes    int64
	RequestTimeout    time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Variáveis sem default: sem elas a API não sobe.
var requiredAPIEnv = []string{"SESSION_SECRET", "ADMIN_PASSWORD", "GUEST_PASSWORD"}

// Load lê o ambiente. Falta de segredo ou senha é erro.
func Load() (*Config, error) {
	var errs []error
	for _, k := range requiredAPIEnv {
		if os.Getenv(k) == "" {
			errs = append(errs, fmt.Errorf("%s is required but not set", k))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Config{
		Port:     getenvAny("8080", "PORT", "API_PORT"),
		LogLevel: parseLevel(getenv("LOG_LEVEL", "info")),

		StorageBackend: getenv("STORAGE_BACKEND", StorageFile),
		DataPath:       getenv("DATA_PATH", "data/dados.csv"),
		MongoURI:       getenvAny("mongodb://localhost:27017", "MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "painelvagas"),

		RabbitURI:   getenvAny("", "RABBITMQ_URL", "RABBIT_URI"),
		RabbitQueue: getenvAny("vagas_dataset", "RABBITMQ_QUEUE", "RABBIT_QUEUE"),

		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		GuestUser:     getenv("GUEST_USER", "convidado"),
		GuestPassword: os.Getenv("GUEST_PASSWORD"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionCookie: getenv("SESSION_COOKIE", "painel_session"),
		SessionTTL:    parseDuration("SESSION_TTL", 8*time.Hour),
		SecureCookie:  parseBool("SESSION_SECURE_COOKIE", false),

		UploadMaxBytes:    parseInt64("UPLOAD_MAX_BYTES", 32<<20),
		RequestTimeout:    parseDuration("REQUEST_TIMEOUT", 5*time.Second),
		ReadHeaderTimeout: parseDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		ShutdownTimeout:   parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}, nil
}
