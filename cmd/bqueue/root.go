package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-bqueue/pkg/datastructs/queue"
	"github.com/huynhanx03/go-bqueue/pkg/driver"
	"github.com/huynhanx03/go-bqueue/pkg/logger"
	"github.com/huynhanx03/go-bqueue/pkg/settings"
	"github.com/huynhanx03/go-bqueue/pkg/status"
)

const shutdownTimeout = 5 * time.Second

// flagKeys maps command-line flags to their config keys.
var flagKeys = map[string]string{
	"capacity":  "queue.capacity",
	"producers": "driver.producers",
	"consumers": "driver.consumers",
	"items":     "driver.items_per_producer",
	"min-delay": "driver.min_delay",
	"max-delay": "driver.max_delay",
	"log-level": "logger.log_level",
	"log-file":  "logger.file_log_name",
	"port":      "server.port",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bqueue",
		Short:         "Bounded blocking queue with a producer/consumer driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	v := settings.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run producers and consumers around a bounded queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settings.Read(v, configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	f.Int("capacity", 0, "queue capacity")
	f.Int("producers", 0, "number of producers")
	f.Int("consumers", 0, "number of consumers")
	f.Int("items", 0, "items per producer")
	f.Duration("min-delay", 0, "minimum pause after each operation")
	f.Duration("max-delay", 0, "maximum pause after each operation")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-file", "", "also write logs to this rotated file")
	f.Int("port", 0, "serve /healthz and /stats on this port (0 disables)")

	mustBindFlags(v, cmd)
	return cmd
}

func mustBindFlags(v *viper.Viper, cmd *cobra.Command) {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func run(ctx context.Context, cfg *settings.Config, cmd *cobra.Command) error {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	q, err := queue.NewBounded[driver.Item](cfg.Queue.Capacity)
	if err != nil {
		return err
	}

	if cfg.Server.Port > 0 {
		srv, err := startStatusServer(cfg.Server, q, log)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				log.Warn("status server shutdown", zap.Error(err))
			}
		}()
	}

	log.Info("starting driver",
		zap.Int("capacity", cfg.Queue.Capacity),
		zap.Int("producers", cfg.Driver.Producers),
		zap.Int("consumers", cfg.Driver.Consumers),
		zap.Int("items_per_producer", cfg.Driver.ItemsPerProducer))

	rep, err := driver.Run(ctx, q, cfg.Driver, log)
	if err != nil {
		return err
	}
	if err := rep.Verify(); err != nil {
		return errors.Wrap(err, "verify run")
	}

	stats := q.Stats()
	fmt.Fprintf(cmd.OutOrStdout(),
		"All producers and consumers have finished: %d produced, %d consumed in %s (puts=%d gets=%d)\n",
		rep.Produced, rep.Consumed, rep.Duration.Round(time.Millisecond), stats.Puts, stats.Gets)
	return nil
}

func startStatusServer(cfg settings.Server, src status.StatsSource, log *zap.Logger) (*http.Server, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", addr)
	}

	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           status.NewRouter(src),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("status server", zap.Error(err))
		}
	}()

	log.Info("status server listening", zap.String("addr", srv.Addr))
	return srv, nil
}
