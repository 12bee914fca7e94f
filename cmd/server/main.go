// Command server runs the HTTP task submission runtime on top of
// shardqueue: a blocking-task worker pool backed by a sharded,
// condition-variable-driven queue.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/maurice2k/shardqueue"
	"github.com/maurice2k/shardqueue/internal/applog"
	"github.com/maurice2k/shardqueue/internal/config"
	"github.com/maurice2k/shardqueue/internal/httpapi"
)

func main() {
	logger := applog.Get()
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Only constructed eagerly; Start is deferred to selectBackend so an
	// unused native pool (POOL_BACKEND set to something else) never spawns
	// worker goroutines it would then have nothing to stop.
	nativePool := shardqueue.NewPool(
		shardqueue.WithWorkers(workers),
		shardqueue.WithIdleTimeout(time.Duration(cfg.PoolIdleTimeout)*time.Millisecond),
		shardqueue.WithPanicHandler(func(recovered any) {
			logger.Errorw("task panicked outside httpapi's own recovery", "recovered", recovered)
		}),
	)

	backend, backendName := selectBackend(cfg.PoolBackend, nativePool, workers)
	logger.Infof("pool backend: %s (%d workers)", backendName, workers)

	var shuttingDown atomic.Bool
	router := httpapi.NewRouter(backend, backendName, &shuttingDown, cfg.IsDevelopment())

	printStartupInfo(cfg, backendName, workers)

	server := &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("received shutdown signal")
	shuttingDown.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	if err := backend.Stop(ctx); err != nil {
		logger.Errorf("pool shutdown error: %v", err)
	}

	logger.Info("server gracefully stopped")
}

// selectBackend wires cfg.PoolBackend to one of the alternative backends
// from backends.go, defaulting to the native shardqueue.Pool. Grounded on
// tasks-service-demo's STORAGE_TYPE switch in its main, applied to pool
// backend selection instead of storage backend selection.
func selectBackend(name string, nativePool *shardqueue.Pool, workers int) (shardqueue.Backend, string) {
	switch name {
	case "ants":
		b, err := shardqueue.NewAntsBackend(workers * 256)
		if err != nil {
			applog.Get().Warnf("ants backend unavailable (%v), falling back to native", err)
			nativePool.Start()
			return &shardqueue.PoolBackend{Pool: nativePool}, "native"
		}
		return b, "ants"
	case "gammazero":
		return shardqueue.NewGammazeroBackend(workers * 256), "gammazero"
	case "tunny":
		return shardqueue.NewTunnyBackend(workers), "tunny"
	case "pond":
		return shardqueue.NewPondBackend(workers, workers*256), "pond"
	default:
		nativePool.Start()
		return &shardqueue.PoolBackend{Pool: nativePool}, "native"
	}
}

func printStartupInfo(cfg *config.Config, backendName string, workers int) {
	fmt.Println("=================================")
	fmt.Println("       shardqueue server         ")
	fmt.Println("=================================")
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Printf("Address: %s\n", cfg.ServerAddress())
	fmt.Printf("Pool backend: %s (%d workers)\n", backendName, workers)
	fmt.Printf("Health: http://%s/health\n", cfg.ServerAddress())
	fmt.Printf("Tasks: http://%s/api/v1/tasks\n", cfg.ServerAddress())
	fmt.Printf("Stats: http://%s/api/v1/stats\n", cfg.ServerAddress())
	fmt.Println("=================================")
}
