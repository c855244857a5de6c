package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type IHealthService interface {
	// Check reports per-dependency liveness. The service itself is up as
	// long as it can answer; dependency failures are reported, not fatal.
	Check(ctx context.Context) map[string]string
}

type healthService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthService(db *gorm.DB, rdb *redis.Client) IHealthService {
	return &healthService{db: db, rdb: rdb}
}

func (s *healthService) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":   "ok",
		"database": "ok",
		"redis":    "ok",
	}

	if s.db == nil {
		status["database"] = "not configured"
	} else if sqlDB, err := s.db.DB(); err != nil {
		status["database"] = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		status["database"] = err.Error()
	}

	if s.rdb == nil {
		status["redis"] = "not configured"
	} else if err := s.rdb.Ping(ctx).Err(); err != nil {
		status["redis"] = err.Error()
	}

	return status
}
