package configs

import "time"

// Watcher configures the periodic campaign state watcher.
type Watcher struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
}
