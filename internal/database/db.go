package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"tourbook/pkg/logger"
)

// Service exposes the shared connection pool behind a narrow interface so
// repositories do not depend on how the pool is configured.
type Service interface {
	Pool() *pgxpool.Pool
	Health() map[string]string
	Close()
}

type service struct {
	pool *pgxpool.Pool
}

func New() Service {
	url := os.Getenv("DATABASE_URL")

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		logger.Error("invalid DATABASE_URL:", err)
		os.Exit(1)
	}

	if maxConns, err := strconv.Atoi(os.Getenv("DATABASE_MAX_CONNS")); err == nil && maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to create connection pool:", err)
		os.Exit(1)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable:", err)
		os.Exit(1)
	}

	return &service{pool: pool}
}

func (s *service) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats := map[string]string{}

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = fmt.Sprintf("%d", poolStats.TotalConns())
	stats["idle_conns"] = fmt.Sprintf("%d", poolStats.IdleConns())
	stats["acquired_conns"] = fmt.Sprintf("%d", poolStats.AcquiredConns())

	return stats
}

func (s *service) Close() {
	s.pool.Close()
}
