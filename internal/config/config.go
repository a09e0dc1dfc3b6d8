package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables the bearer check.
	APIKey string

	// Corpora
	CorpusDir       string
	CorpusManifest  string
	DefaultCorpora  []string
	CorpusCacheSize int

	// Generation
	MaxLineAttempts int
	StatsWindow     time.Duration

	// Upload pipeline
	WorkerCount    int
	MaxQueueSize   int
	MaxUploadBytes int64
	JobTTL         time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("HAIKU_API_KEY"),

		CorpusDir:       envOr("CORPUS_DIR", "corpora"),
		CorpusManifest:  os.Getenv("CORPUS_MANIFEST"),
		DefaultCorpora:  envList("DEFAULT_CORPORA"),
		CorpusCacheSize: envInt("CORPUS_CACHE_SIZE", 16),

		MaxLineAttempts: envInt("MAX_LINE_ATTEMPTS", 10000),
		StatsWindow:     envDuration("STATS_WINDOW", 1*time.Hour),

		WorkerCount:    envInt("WORKER_COUNT", 2),
		MaxQueueSize:   envInt("MAX_QUEUE_SIZE", 50),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
		JobTTL:         envDuration("JOB_TTL", 1*time.Hour),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.CorpusCacheSize <= 0 {
		cfg.CorpusCacheSize = 16
	}
	if cfg.MaxLineAttempts < 0 {
		cfg.MaxLineAttempts = 10000
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks settings Load cannot repair on its own.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.MaxLineAttempts == 0 {
		return fmt.Errorf("MAX_LINE_ATTEMPTS must be positive for the server")
	}
	if c.CorpusManifest == "" {
		info, err := os.Stat(c.CorpusDir)
		if err != nil {
			return fmt.Errorf("CORPUS_DIR %q: %w", c.CorpusDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("CORPUS_DIR %q is not a directory", c.CorpusDir)
		}
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string) []string {
	var out []string
	for part := range strings.SplitSeq(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
