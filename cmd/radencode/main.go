// radencode -- RADIUS attribute encoding daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/goradius/internal/config"
	"github.com/dantte-lp/goradius/internal/fixture"
	radmetrics "github.com/dantte-lp/goradius/internal/metrics"
	"github.com/dantte-lp/goradius/internal/radius"
	appversion "github.com/dantte-lp/goradius/internal/version"
)

// shutdownTimeout is the maximum time to wait for the metrics server to
// drain active connections during graceful shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file (YAML)")
	fixturePath := flag.String("fixture", "", "path to a YAML AVP fixture to encode at startup")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()),
		)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(config.ParseLogLevel(cfg.Log.Level))
	logger := newLoggerWithLevel(cfg.Log, logLevel)

	logger.Info("radencode starting",
		slog.String("version", appversion.Version),
		slog.String("metrics_addr", cfg.Metrics.Addr),
	)

	reg := prometheus.NewRegistry()
	collector := radmetrics.NewCollector(reg)

	if *fixturePath != "" {
		if err := encodeFixture(*fixturePath, cfg, collector, logger); err != nil {
			logger.Error("fixture encode failed", slog.String("error", err.Error()))
		}
	}

	if err := runServers(cfg, reg, logger); err != nil {
		logger.Error("radencode exited with error", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("radencode stopped")
	return 0
}

// encodeFixture loads the YAML fixture at path, encodes every job's
// attribute list, and logs the resulting byte counts and any errors
// encountered. Each job's attributes are drained completely: EncodePair
// is called repeatedly until the cursor is exhausted or returns NoRoom.
func encodeFixture(path string, cfg *config.Config, collector *radmetrics.Collector, logger *slog.Logger) error {
	jobs, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	vendors := cfg.VendorTable()

	for i, job := range jobs {
		pkt, cursor, err := job.Build()
		if err != nil {
			return fmt.Errorf("build job %d: %w", i, err)
		}
		if pkt.Secret == "" {
			pkt.Secret = cfg.RADIUS.Secret
		}
		if pkt.Code == 0 {
			pkt.Code = cfg.RADIUS.DefaultCode
		}
		pkt.Vendors = vendors
		pkt.Metrics = collector

		out := make([]byte, 4096)
		written := 0
		for cursor != nil {
			n, next, err := radius.EncodePair(out[written:], pkt, cursor)
			if err != nil {
				collector.RecordAttribute(cursor.Descriptor.Kind.String(), radmetrics.ResultError)
				return fmt.Errorf("job %d: encode %s: %w", i, cursor.Descriptor.Name, err)
			}
			if n == 0 {
				if next != cursor { // ValueIgnored: skipped, cursor advanced.
					cursor = next
					continue
				}
				collector.IncNoRoom()
				break
			}
			collector.RecordAttribute(cursor.Descriptor.Kind.String(), radmetrics.ResultOK)
			written += n
			cursor = next
		}

		logger.Info("fixture job encoded",
			slog.Int("job", i),
			slog.Int("bytes_written", written),
			slog.String("hexdump", radius.HexDump(out[:written])),
		)
	}

	return nil
}

// runServers runs the metrics HTTP server using an errgroup with a
// signal-aware context for graceful shutdown.
func runServers(cfg *config.Config, reg *prometheus.Registry, logger *slog.Logger) error {
	metricsSrv := newMetricsServer(cfg.Metrics, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	lc := net.ListenConfig{}
	g.Go(func() error {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path),
		)
		return listenAndServe(gCtx, &lc, metricsSrv, cfg.Metrics.Addr)
	})

	g.Go(func() error {
		<-gCtx.Done()
		return gracefulShutdown(gCtx, logger, metricsSrv)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run servers: %w", err)
	}
	return nil
}

// gracefulShutdown shuts down the metrics server within shutdownTimeout.
func gracefulShutdown(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	return nil
}

// listenAndServe creates a TCP listener and serves HTTP requests until the
// server is shut down.
func listenAndServe(ctx context.Context, lc *net.ListenConfig, srv *http.Server, addr string) error {
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	return nil
}

// newMetricsServer creates an HTTP server for the Prometheus metrics endpoint.
func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// loadConfig loads configuration from a file path or returns defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg := config.DefaultConfig()
	cfg.RADIUS.Secret = "dev-secret-do-not-use-in-production"
	return cfg, nil
}

// newLoggerWithLevel creates a structured logger using a shared LevelVar.
func newLoggerWithLevel(cfg config.LogConfig, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
