package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"procmond/internal/config"
	"procmond/internal/domain"
	"procmond/internal/logger"
	"procmond/internal/metrics"
	"procmond/internal/metrics/collector/gpu"
	"procmond/internal/metrics/collector/proc"
	"procmond/internal/protocol"
	"procmond/internal/store"
	"procmond/internal/transport/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	sampler := metrics.NewSampler(
		proc.NewCollector(cfg.ProcessTableSize, log),
		gpu.NewCollector(cfg.GPUToolPath, cfg.GPUToolTimeout, log),
		log,
	)
	out := protocol.NewWriter(os.Stdout)

	switch cfg.Mode {
	case config.ModeSnapshot:
		runSnapshot(ctx, cfg, log, sampler, out)
	case config.ModeServe:
		runServe(ctx, cfg, log, sampler, out)
	default:
		runStream(ctx, cfg, log, sampler, out)
	}

	log.Info("sampler stopped")
}

func runStream(ctx context.Context, cfg *config.Config, log logger.Logger, sampler *metrics.Sampler, out *protocol.Writer) {
	log.Info("sampler started", "mode", cfg.Mode, "interval", cfg.Interval)

	sched := metrics.NewScheduler(cfg.Interval, log, sampler.Collect, func(snapshot domain.Snapshot) {
		if err := out.WriteSnapshot(snapshot); err != nil {
			log.Error("emit failed", "error", err)
		}
	})
	sched.Start(ctx)
}

// runSnapshot produces a single pass and exits. The first pass only seeds
// CPU-time baselines, so one extra pass runs after a short settle interval
// to get real utilization numbers.
func runSnapshot(ctx context.Context, cfg *config.Config, log logger.Logger, sampler *metrics.Sampler, out *protocol.Writer) {
	sampler.Collect(ctx)

	select {
	case <-time.After(cfg.Interval):
	case <-ctx.Done():
		return
	}

	if err := out.WriteSnapshot(sampler.Collect(ctx)); err != nil {
		log.Error("emit failed", "error", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cfg *config.Config, log logger.Logger, sampler *metrics.Sampler, out *protocol.Writer) {
	ms := store.NewSnapshotStore()
	hub := websocket.NewHub(ms, log)

	sched := metrics.NewScheduler(cfg.Interval, log, sampler.Collect, func(snapshot domain.Snapshot) {
		raw := protocol.Marshal(snapshot)
		ms.Set(snapshot, raw)
		hub.Emit(raw)

		if err := out.WriteSnapshot(snapshot); err != nil {
			log.Error("emit failed", "error", err)
		}
	})

	mux := http.NewServeMux()
	mux.Handle("/stream", websocket.NewHandler(hub, log))
	srv := &http.Server{Addr: cfg.Address, Handler: mux}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		log.Info("sampler started", "mode", cfg.Mode, "interval", cfg.Interval, "address", cfg.Address)
		sched.Start(gCtx)
		return nil
	})

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("stream server failed", "error", err)
	}
}
