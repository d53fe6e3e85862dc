package configs

import "strings"

const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
	DriverMemory   = "memory"
)

// Storage selects the campaign repository. Driver is one of "postgres",
// "badger" or "memory". BadgerDir is only read by the badger driver; an
// empty directory keeps badger in memory.
type Storage struct {
	Driver    string `env:"DRIVER" envDefault:"badger"`
	BadgerDir string `env:"BADGER_DIR" envDefault:"./data"`
}

// NormalizedDriver lowercases Driver and falls back to badger for unknown
// values.
func (c Storage) NormalizedDriver() string {
	switch d := strings.ToLower(c.Driver); d {
	case DriverPostgres, DriverMemory:
		return d
	default:
		return DriverBadger
	}
}
