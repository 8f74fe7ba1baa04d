package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedURL is the JTWC active tropical systems RSS feed.
const DefaultFeedURL = "https://metoc.ndbc.noaa.gov/RSSFeeds-portlet/img/jtwc/jtwc.rss"

const maxFetchConcurrency = 32

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURL          string
	FetchTimeout     time.Duration
	FetchConcurrency int
	PollInterval     time.Duration

	BulletinCacheSize int

	KafkaBrokers    []string
	KafkaTopic      string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	pollInterval, err := parsePositiveDuration("POLL_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}

	concurrency, err := parseFetchConcurrency()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FeedURL:           sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FetchTimeout:      fetchTimeout,
		FetchConcurrency:  concurrency,
		PollInterval:      pollInterval,
		BulletinCacheSize: parseBulletinCacheSize(),
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_TOPIC", "tropical-cyclone-tracks"),
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFetchConcurrency() (int, error) {
	s := sharedcfg.EnvOrDefault("FETCH_CONCURRENCY", "4")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxFetchConcurrency {
		return 0, fmt.Errorf("invalid FETCH_CONCURRENCY %q: must be 1-%d", s, maxFetchConcurrency)
	}
	return n, nil
}

func parseBulletinCacheSize() int {
	if s := os.Getenv("BULLETIN_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 64
}
