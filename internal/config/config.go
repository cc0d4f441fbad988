package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/kazakovdmitriy/go-eventmanager/internal/retry"
	"github.com/spf13/pflag"
)

type Flags struct {
	ServerAddr     string        `env:"ADDRESS"`
	LogLevel       string        `env:"LOGLEVEL"`
	SamplerName    string        `env:"SAMPLER_NAME"`
	PollInterval   time.Duration `env:"POLL_INTERVAL"`
	FilePath       string        `env:"FILE_STORAGE_PATH"`
	WebhookURL     string        `env:"WEBHOOK_URL"`
	SecretKey      string        `env:"KEY"`
	RateLimit      int           `env:"RATE_LIMIT"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	MigrationsPath string        `env:"MIGRATIONS_PATH"`
	MaxRetries     int           `env:"MAX_RETRIES"`
	RetryDelays    []string      `env:"RETRY_DELAYS"`
}

// Parse reads the configuration: defaults first, then command-line
// flags from args, then the environment.
func Parse(args []string) (*Flags, error) {
	var cfg Flags

	setDefaults(&cfg)

	if err := parseFlags(&cfg, args); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Flags) {
	cfg.ServerAddr = ":8080"
	cfg.LogLevel = "info"
	cfg.SamplerName = "localhost"
	cfg.PollInterval = 2 * time.Second
	cfg.RateLimit = 2
	cfg.MigrationsPath = "migrations"
	cfg.MaxRetries = 3
	cfg.RetryDelays = []string{"1s", "3s", "5s"}
}

func parseFlags(cfg *Flags, args []string) error {
	flags := pflag.NewFlagSet("eventmanager", pflag.ContinueOnError)

	flags.StringVarP(&cfg.ServerAddr, "address", "a", cfg.ServerAddr, "HTTP server address")
	flags.StringVarP(&cfg.LogLevel, "loglevel", "g", cfg.LogLevel, "Logger level")
	flags.StringVarP(&cfg.SamplerName, "name", "n", cfg.SamplerName, "Sampler name, used as event source")
	flags.DurationVarP(&cfg.PollInterval, "poll", "p", cfg.PollInterval, "Polling interval")
	flags.StringVarP(&cfg.FilePath, "filePath", "f", cfg.FilePath, "File to append events to, disabled when empty")
	flags.StringVarP(&cfg.WebhookURL, "webhook", "w", cfg.WebhookURL, "URL to post events to, disabled when empty")
	flags.StringVarP(&cfg.SecretKey, "key", "k", cfg.SecretKey, "Secret key for webhook signatures")
	flags.IntVarP(&cfg.RateLimit, "ratelimit", "l", cfg.RateLimit, "Webhook workers")
	flags.StringVarP(&cfg.DatabaseDSN, "database_dsn", "d", cfg.DatabaseDSN, "DSN string for db connection")
	flags.StringVar(&cfg.MigrationsPath, "migrations", cfg.MigrationsPath, "Path to migration files")
	flags.IntVarP(&cfg.MaxRetries, "max-retries", "m", cfg.MaxRetries, "Maximum number of retry attempts")
	flags.StringSliceVarP(&cfg.RetryDelays, "retry-delays", "s", cfg.RetryDelays, "Retry delays between attempts")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("error parsing command-line flags: %w", err)
	}

	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	return nil
}

// RetryDelaysAsDuration parses RetryDelays.
func (f *Flags) RetryDelaysAsDuration() ([]time.Duration, error) {
	delays := make([]time.Duration, 0, len(f.RetryDelays))
	for _, delayStr := range f.RetryDelays {
		delay, err := time.ParseDuration(delayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid duration format '%s': %w", delayStr, err)
		}
		delays = append(delays, delay)
	}
	return delays, nil
}

// RetryConfig returns the retry policy. With more retries than delays
// the last delay is reused.
func (f *Flags) RetryConfig() (retry.Config, error) {
	delays, err := f.RetryDelaysAsDuration()
	if err != nil {
		return retry.Config{}, err
	}
	return retry.Config{
		MaxRetries: f.MaxRetries,
		Delays:     delays,
	}, nil
}
