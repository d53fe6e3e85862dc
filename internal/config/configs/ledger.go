package configs

// Ledger holds settings of the ledger itself. KeySeed namespaces the
// derived campaign keys of this deployment. Balances seeds the in-process
// transfer book as address:amount pairs, for example
// "LEDGER_BALANCES=alice:5000000,bob:100000".
type Ledger struct {
	KeySeed  string            `env:"KEY_SEED" envDefault:"default"`
	Balances map[string]uint64 `env:"BALANCES"`
}
