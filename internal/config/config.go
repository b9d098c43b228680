package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadSizeMB int64
	UploadDir       string

	// Job scheduler (C10).
	MaxConcurrentJobs    int
	JobRetentionHours    int
	CleanupIntervalHours int

	// Compiler (C9).
	MaxFixIterations int

	// Job-control auth (§6): per card-key quota.
	UsageLimitPerCardKey int

	// AI collaborator round-trip timeout, read from AI_REQUEST_TIMEOUT. No
	// other component reads this value; the compiler applies no timeout of
	// its own to AI calls.
	AIRequestTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:            envInt("PORT", 8080),
		ReadTimeout:     envDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    envDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxUploadSizeMB: int64(envInt("MAX_UPLOAD_SIZE_MB", 50)),
		UploadDir:       envString("UPLOAD_DIR", "/tmp/docx-uploads"),

		MaxConcurrentJobs:    envInt("MAX_CONCURRENT_JOBS", 5),
		JobRetentionHours:    envInt("JOB_RETENTION_HOURS", 24),
		CleanupIntervalHours: envInt("CLEANUP_INTERVAL_HOURS", 1),

		MaxFixIterations: envInt("MAX_FIX_ITERATIONS", 3),

		UsageLimitPerCardKey: envInt("USAGE_LIMIT_PER_CARD_KEY", 100),

		AIRequestTimeout: envDuration("AI_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
