package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"car-rental/pkg/logger"
)

func main() {

	// Create centralized configuration
	cfg := createEmbeddedConfig()

	logger.InitLogger(cfg)

	logger.Info("🚗 Starting Car Rental Standalone Application...")
	logger.Info("This includes: PostgreSQL, Redis and the API service")

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	logger.Info("🔧 Starting embedded services...")

	// Start embedded PostgreSQL
	wg.Add(1)
	go func() {
		defer wg.Done()
		startEmbeddedDB(ctx)
	}()

	// Start embedded Redis
	wg.Add(1)
	go func() {
		defer wg.Done()
		startEmbeddedRedis(ctx)
	}()

	logger.Info("⏳ Waiting for all embedded services to be ready...")
	if !waitForEmbeddedServicesToBeReady() {
		cancel()
		wg.Wait()
		logger.Fatalf("embedded services did not start")
	}

	// Update config with actual embedded service addresses
	updateConfigWithEmbeddedServices(cfg)

	logger.Info("🚀 Starting API service...")
	wg.Add(1)
	go func() {
		defer wg.Done()
		startAPIService(ctx, cfg)
	}()

	// Setup graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logger.Info("Shutting down...")
	cancel()
	wg.Wait()
	logger.Info("Shutdown complete")
}

// waitForEmbeddedServicesToBeReady waits for all embedded services to be ready
func waitForEmbeddedServicesToBeReady() bool {
	if !waitFor("PostgreSQL", 90*time.Second, func() bool { return dbReady.Load() && GetDBPort() != 0 }) {
		return false
	}
	if !waitFor("Redis", 30*time.Second, func() bool { return GetRedisAddr() != "" }) {
		return false
	}
	logger.Info("✅ All embedded services are ready!")
	return true
}

func waitFor(name string, timeout time.Duration, ready func() bool) bool {
	logger.Infof("Waiting for %s to be ready...", name)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ready() {
			logger.Infof("✅ %s is ready", name)
			return true
		}
		time.Sleep(time.Second)
	}
	logger.Warnf("%s failed to become ready within %s", name, timeout)
	return false
}
