// Package app wires the simulation engine, job service and adapters into the
// FleetCompute API service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/fleetcompute/api/middleware"
	"github.com/kilianp07/fleetcompute/auth"
	"github.com/kilianp07/fleetcompute/config"
	"github.com/kilianp07/fleetcompute/core/fleet"
	corejobs "github.com/kilianp07/fleetcompute/core/jobs"
	coremetrics "github.com/kilianp07/fleetcompute/core/metrics"
	coremon "github.com/kilianp07/fleetcompute/core/monitoring"
	coremqtt "github.com/kilianp07/fleetcompute/core/mqtt"
	"github.com/kilianp07/fleetcompute/infra/jobstore"
	"github.com/kilianp07/fleetcompute/infra/logger"
	"github.com/kilianp07/fleetcompute/infra/metrics"
	"github.com/kilianp07/fleetcompute/infra/monitoring"
	"github.com/kilianp07/fleetcompute/infra/mqtt"
	"github.com/kilianp07/fleetcompute/infra/telemetry"
	"github.com/kilianp07/fleetcompute/internal/eventbus"
)

// Service owns every long running component of the API process.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	store     corejobs.Store
	Jobs      *corejobs.Service
	bus       *eventbus.TypedBus[corejobs.Event]
	sink      coremetrics.MetricsSink
	mqtt      coremqtt.Publisher
	publisher *telemetry.Publisher
	handler   http.Handler
	logFile   io.Closer
}

// Option customises New.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	bcryptCost int
}

// WithRegisterer registers the service collectors on reg instead of the
// global Prometheus registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithBcryptCost overrides the cost used to hash configured passwords.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// New creates a Service from the configuration. It fails fast when the fleet
// topology is inconsistent.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	if err := fleet.ValidateTopology(); err != nil {
		return nil, err
	}
	logger.Configure(cfg.Logging.Level, cfg.Logging.Console)
	var logFile io.Closer
	if f := cfg.Logging.File; f.Path != "" {
		c, err := logger.RotateTo(f.Path, f.MaxSizeMB, f.MaxBackups, f.MaxAgeDays)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		logFile = c
	}
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	s := &Service{cfg: cfg, log: logg, logFile: logFile}
	ok := false
	defer func() {
		if !ok {
			_ = s.Close()
		}
	}()

	s.store, err = jobstore.New(ctx, cfg.Store.Backend, cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("job store: %w", err)
	}
	s.bus = eventbus.NewTyped[corejobs.Event](eventbus.WithBuffer(64))
	s.Jobs = corejobs.NewService(s.store, s.bus, logger.New("jobs"))
	if cfg.Store.Seed() {
		if _, err := s.Jobs.SeedDemo(ctx); err != nil {
			return nil, fmt.Errorf("seed jobs: %w", err)
		}
	}

	s.sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	if cfg.Publisher.Enabled {
		cli, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		s.mqtt = cli
	}
	rec, _ := s.sink.(telemetry.Recorder)
	if s.mqtt != nil || rec != nil {
		s.publisher, err = telemetry.NewPublisher(cfg.Publisher, s.mqtt, rec, o.registerer)
		if err != nil {
			return nil, fmt.Errorf("snapshot publisher: %w", err)
		}
	}

	accounts := make([]auth.Account, len(cfg.Auth.Users))
	for i, u := range cfg.Auth.Users {
		accounts[i] = auth.Account{
			User:         auth.User{Username: u.Username, Company: u.Company, Role: u.Role},
			Password:     u.Password,
			PasswordHash: u.PasswordHash,
		}
	}
	users, err := auth.NewDirectory(accounts, o.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("user directory: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}
	s.handler = NewRouter(RouterDeps{
		Jobs:           s.Jobs,
		Users:          users,
		Tokens:         auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL()),
		StreamInterval: cfg.Server.StreamInterval(),
		CORSOrigins:    cfg.Server.CORSOrigins,
		Metrics:        httpMetrics,
		Log:            logger.NewZerologLogger("api"),
	})
	ok = true
	return s, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler { return s.handler }

// Run starts the background workers and serves the API until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartJobCollector(ctx, s.bus, s.sink, logger.New("job-collector"))
	if s.publisher != nil {
		s.publisher.StartJobAnnouncer(ctx, s.bus)
		go s.publisher.Run(ctx)
	}
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if s.bus != nil {
		s.bus.Close()
	}
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("job store: %w", err))
		}
	}
	coremon.Flush(2 * time.Second)
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
