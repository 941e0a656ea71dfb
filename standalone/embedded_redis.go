package main

import (
	"context"
	"sync/atomic"

	"car-rental/pkg/logger"
	"car-rental/pkg/redis"

	"github.com/alicebob/miniredis/v2"
)

var embeddedRedis atomic.Pointer[miniredis.Miniredis]

// startEmbeddedRedis runs an in-process Redis for the rate limiter and the
// admin event feed
func startEmbeddedRedis(ctx context.Context) {
	logger.Info("Starting embedded Redis...")

	mr, err := miniredis.Run()
	if err != nil {
		logger.Fatalf("failed to start embedded Redis: %v", err)
	}

	// test connection through the same client the API uses
	client := redis.NewFromAddr(mr.Addr())
	err = client.Ping(ctx)
	client.Close()
	if err != nil {
		logger.Fatalf("failed to ping embedded Redis: %v", err)
	}

	embeddedRedis.Store(mr)
	logger.Infof("✅ Embedded Redis started successfully on %s", mr.Addr())

	<-ctx.Done()

	logger.Info("Shutting down embedded Redis...")
	mr.Close()
}

// GetRedisAddr returns the address of the embedded Redis instance
func GetRedisAddr() string {
	if mr := embeddedRedis.Load(); mr != nil {
		return mr.Addr()
	}
	return ""
}
