package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/painel-vagas/internal/broker"
	"github.com/Werneck0live/painel-vagas/internal/config"
	"github.com/Werneck0live/painel-vagas/internal/utils"
	"github.com/Werneck0live/painel-vagas/internal/ws"
)

func main() {
	_ = godotenv.Load()
	wscfg := config.LoadWSConfig()

	_ = config.InitLogger(wscfg.LogLevel)
	log := slog.Default().With("svc", "ws")
	hub := ws.NewHub(log)
	go hub.Run()

	// Conecta no Rabbit e começa a consumir
	conn, ch, deliveries, err := startRabbitConsumer(wscfg, log)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
		_ = conn.Close()
	}()

	// encaminha os avisos de troca de dataset para o hub
	go func() {
		for d := range deliveries {
			ev, err := broker.ParseDatasetEvent(d.Body)
			if err != nil || ev.Event != broker.EventDatasetReplaced {
				log.Warn("delivery_skipped", "err", err, "content_type", d.ContentType)
				continue
			}
			log.Info("dataset_event_received", "event_id", ev.ID, "token", ev.Token, "clients", hub.Count())
			hub.Broadcast(d.Body)
		}
		log.Warn("deliveries_channel_closed")
	}()

	// HTTP: /ws e /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.Handler(hub, ws.NewUpgrader(wscfg.AllowedOrigin), log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": hub.Count()})
	})

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           utils.LogRequests(log, mux),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	// O servidor é inicializado e começa a escutar na porta configurada
	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	hub.Stop()

	log.Info("stopped")
}

func startRabbitConsumer(c *config.WSConfig, log *slog.Logger) (*amqp.Connection, *amqp.Channel, <-chan amqp.Delivery, error) {
	conn, err := amqp.Dial(c.RabbitURI)
	if err != nil {
		return nil, nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, nil, err
	}

	if _, err = ch.QueueDeclare(
		c.RabbitQueue,
		true, false, false, false, nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, nil, err
	}

	if err := ch.Qos(c.ConsumerPrefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, nil, err
	}

	deliveries, err := ch.Consume(
		c.RabbitQueue,
		"ws-consumer",
		true, false, false, false, nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, nil, err
	}
	log.Info("rabbit_consumer_started", "queue", c.RabbitQueue, "prefetch", c.ConsumerPrefetch)
	return conn, ch, deliveries, nil
}
