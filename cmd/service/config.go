package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultWorkerCount = 1
	defaultRetryMax    = 2
	defaultSessionTTL  = 15 * time.Minute
)

// config 由環境變數組成
type config struct {
	DatabaseURL      string
	RedisAddr        string
	RedisDB          int
	RedisPassword    string
	WorkerCount      int
	UpstreamLoginURL string
	UpstreamRetryMax int
	SessionSecret    string
	SessionTTL       time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		WorkerCount:      defaultWorkerCount,
		UpstreamRetryMax: defaultRetryMax,
		SessionTTL:       defaultSessionTTL,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return cfg, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return cfg, fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisIndex, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return cfg, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisIndex

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisPassword == "" {
		return cfg, fmt.Errorf("環境變數 REDIS_PASSWORD 未設定")
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return cfg, fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = c
	}

	cfg.UpstreamLoginURL = os.Getenv("UPSTREAM_LOGIN_URL")
	if cfg.UpstreamLoginURL == "" {
		return cfg, fmt.Errorf("環境變數 UPSTREAM_LOGIN_URL 未設定")
	}

	if v := os.Getenv("UPSTREAM_RETRY_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("無效的 UPSTREAM_RETRY_MAX: %q", v)
		}
		cfg.UpstreamRetryMax = n
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("無效的 SESSION_TTL: %q", v)
		}
		cfg.SessionTTL = d
	}

	return cfg, nil
}
