package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the API listens on
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Path to the sqlite database file
		DatabasePath string `env:"DATABASE_PATH" envDefault:"database/propwell.db"`
	}

	// Analysis configuration
	Analysis struct {
		// Monthly carry cost assumed while a unit sits vacant
		VacancyCarryCost float64 `env:"VACANCY_CARRY_COST" envDefault:"250"`

		// Number of saved records returned by list endpoints
		RecentLimit int `env:"RECENT_LIMIT" envDefault:"10"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Number of analysis jobs the queue buffers before rejecting
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Number of concurrent batch workers
		WorkerCount int `env:"BATCH_WORKER_COUNT" envDefault:"2"`

		// Maximum number of retries for failed jobs
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
