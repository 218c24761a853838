package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrov/askmycar/api/webhook"
	"github.com/mpetrov/askmycar/auth"
	"github.com/mpetrov/askmycar/config"
	"github.com/mpetrov/askmycar/core/intents"
	"github.com/mpetrov/askmycar/core/session"
	"github.com/mpetrov/askmycar/infra/fordconnect"
	"github.com/mpetrov/askmycar/infra/geocode"
	"github.com/mpetrov/askmycar/infra/logger"
	"github.com/mpetrov/askmycar/infra/metrics"
)

// Service wires the webhook backend: token client, telematics client,
// geocoder, vehicle resolver, intent service, metrics and HTTP listener.
type Service struct {
	cfg      *config.Config
	log      logger.Logger
	handler  *webhook.Handler
	resolver *session.Resolver
	sink     metrics.Sink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	tokens := auth.NewClient(auth.Conf{
		ClientID:     cfg.Telematics.ClientID,
		ClientSecret: cfg.Telematics.ClientSecret,
		TokenURL:     cfg.Telematics.TokenURL,
		RedirectURL:  cfg.Telematics.RedirectURL,
		Code:         cfg.Telematics.Code,
		RefreshToken: cfg.Telematics.RefreshToken,
	})
	tele := fordconnect.New(cfg.Telematics, tokens, logger.New("fordconnect"))
	geo := geocode.New(cfg.Geocode, logger.New("geocode"))

	var sinks []metrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink metrics.Sink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	resolver := session.NewResolver(tele, tokens, logger.New("session"))
	svc := intents.New(tele, geo, logger.New("intents"))
	handler := webhook.NewHandler(svc, tokens, resolver, sink, logger.New("webhook"))

	return &Service{
		cfg:      cfg,
		log:      logg,
		handler:  handler,
		resolver: resolver,
		sink:     sink,
	}, nil
}

// Run discovers the authorized vehicle and serves webhook calls until the
// context is canceled. A discovery failure is fatal: there is no per-request
// recovery without an authorized vehicle.
func (s *Service) Run(ctx context.Context) error {
	if err := s.resolver.Init(ctx); err != nil {
		return fmt.Errorf("vehicle discovery: %w", err)
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler: s.handler.Router(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("webhook server shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on port %d for webhook calls", s.cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
