package app

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"smarthub/internal/config"
	"smarthub/internal/handlers"
	"smarthub/internal/logger"
	"smarthub/internal/metrics"
	"smarthub/internal/notify"
	"smarthub/internal/repository"
	repodb "smarthub/internal/repository/db"
	"smarthub/internal/server"
	"smarthub/internal/service"
)

// hub is the assembled application: an HTTP handler plus the resources it owns.
type hub struct {
	handler http.Handler
	closers []io.Closer
}

func (h *hub) Close() error {
	var first error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newHub opens the store, resolves the sunset location, connects the
// actuator publisher and wires services into the HTTP handler.
func newHub(ctx context.Context, cfg config.Config, log *logger.Logger) (*hub, error) {
	zone, err := cfg.Zone()
	if err != nil {
		return nil, err
	}

	db, err := openDB(cfg, log)
	if err != nil {
		return nil, err
	}
	h := &hub{closers: []io.Closer{db}}

	m := metrics.New()
	publisher := newPublisher(cfg.MQTT, log)
	h.closers = append(h.closers, publisher)

	repos := repository.NewRepository(db)
	services := service.NewService(repos, service.Options{
		Sunset:       newResolver(ctx, cfg, m, log),
		Location:     zone,
		GraphMaxSize: cfg.Graph.MaxSize,
		SigningKey:   cfg.Auth.SigningKey,
		TokenTTL:     cfg.Auth.TokenTTL,
	})
	api := handlers.NewHandler(services, log, handlers.Options{
		Greeting:       cfg.Greeting,
		AuthEnabled:    cfg.Auth.Enabled,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		Publisher:      publisher,
	})
	h.handler = api.HTTPHandler()
	return h, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "smarthub.db")
		dbPath = "smarthub.db"
	}
	return repodb.InitDB(dbPath)
}

// newPublisher connects to the MQTT broker when one is configured. A broker
// that cannot be reached disables publishing rather than the hub.
func newPublisher(cfg config.MQTTConfig, log *logger.Logger) notify.Publisher {
	if cfg.Broker == "" {
		return notify.Nop{}
	}
	p, err := notify.NewMQTTPublisher(notify.MQTTConfig{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Topic:    cfg.Topic,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		log.Errorw("mqtt_connect_failed", "broker", cfg.Broker, "err", err)
		return notify.Nop{}
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "topic", cfg.Topic)
	return p
}

func runServe(ctx context.Context, configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() { _ = log.Close() }()

	h, err := newHub(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to init hub", "err", err)
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			log.Errorw("failed to release resources", "err", cerr)
		}
	}()

	srv := &server.Server{}
	errCh := runHTTPServer(srv, cfg.Port, h.handler, log)
	return waitForShutdown(ctx, errCh, srv, cfg, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "port", port)
		errCh <- srv.Run(port, handler)
	}()
	return errCh
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(ctx context.Context, errCh <-chan error, srv *server.Server, cfg config.Config, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-quit:
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
