package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Werneck0live/painel-vagas/internal/admin"
	"github.com/Werneck0live/painel-vagas/internal/auth"
	"github.com/Werneck0live/painel-vagas/internal/broker"
	"github.com/Werneck0live/painel-vagas/internal/config"
	"github.com/Werneck0live/painel-vagas/internal/db"
	"github.com/Werneck0live/painel-vagas/internal/handlers"
	"github.com/Werneck0live/painel-vagas/internal/repository"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

// cmd/api/main.go
func main() {
	_ = godotenv.Load() // .env opcional
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "err", err)
		os.Exit(1)
	}

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	log := slog.Default().With("svc", "api")
	log.Info("starting", "port", cfg.Port, "storage", cfg.StorageBackend)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed | import")
	file := flag.String("file", "", "CSV path for -task=import")
	flag.Parse()

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Error("storage_open_error", "backend", cfg.StorageBackend, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	if fs, ok := store.(*repository.FileStorage); ok {
		log.Info("storage_file", "path", fs.Path())
	}
	repo := repository.NewDatasetRepository(store, log)

	if *task != "" {
		code := runTask(*task, *file, repo, log)
		closeStore()
		os.Exit(code) // encerra o processo sem subir HTTP
	}

	// memória começa vazia: sobe com o exemplo
	if cfg.StorageBackend == config.StorageMemory {
		if err := admin.SeedDataset(context.Background(), repo, log); err != nil {
			log.Error("seed_failed", "err", err)
			os.Exit(1)
		}
	}
	checkDataset(repo, log)

	h := &handlers.Handler{
		Repo:           repo,
		Auth:           auth.NewAuthenticator(auth.FixedAccounts(cfg.AdminUser, cfg.AdminPassword, cfg.GuestUser, cfg.GuestPassword)),
		Log:            log,
		Timeout:        cfg.RequestTimeout,
		UploadMaxBytes: cfg.UploadMaxBytes,
	}
	codec := auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL, cfg.SecureCookie)
	h.Sessions = codec

	// publisher (Rabbit) opcional
	if cfg.RabbitURI != "" {
		pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			log.Error("rabbitmq_connect_error", "err", err)
			os.Exit(1)
		}
		defer pub.Close()
		h.Pub = pub
		log.Info("rabbitmq_publisher_ready", "queue", cfg.RabbitQueue)
	} else {
		log.Warn("rabbitmq_disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           utils.LogRequests(log, h.Routes(codec)),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

// openStorage escolhe o backend; a função devolvida libera conexões.
func openStorage(cfg *config.Config) (repository.Storage, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageFile:
		return repository.NewFileStorage(cfg.DataPath), func() {}, nil
	case config.StorageMemory:
		return repository.NewMemoryStorage(nil), func() {}, nil
	case config.StorageMongo:
		client, err := db.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return repository.NewMongoStorage(client.Database(cfg.MongoDB)), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func runTask(task, file string, repo *repository.DatasetRepository, log *slog.Logger) int {
	ctx := context.Background()
	switch task {
	case "seed":
		if err := admin.SeedDataset(ctx, repo, log); err != nil {
			log.Error("seed_failed", "err", err)
			return 1
		}
		log.Info("seed_done")
	case "import":
		if file == "" {
			log.Error("import_missing_file", "hint", "use -file=PATH")
			return 2
		}
		if err := admin.ImportDataset(ctx, repo, file, log); err != nil {
			log.Error("import_failed", "file", file, "err", err)
			return 1
		}
	default:
		log.Error("unknown_admin_task", "task", task)
		return 2
	}
	return 0
}

// checkDataset só avisa: um arquivo ruim vira 422 nas requisições, não derruba a API.
func checkDataset(repo *repository.DatasetRepository, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t, err := repo.Load(ctx)
	if err != nil {
		log.Warn("dataset_startup_check_failed", "err", err)
		return
	}
	log.Info("dataset_ready", "rows", t.Len(), "dropped", t.Dropped)
}
