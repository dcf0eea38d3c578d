package configs

import "time"

// Export tunes the background audit exporter.
type Export struct {
	QueueSize     int           `env:"QUEUE_SIZE" envDefault:"1024"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"64"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"1s"`
}
