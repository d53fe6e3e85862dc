package configs

// Trace toggles span export. When Stdout is set spans are pretty printed to
// standard output; otherwise tracing stays a no-op.
type Trace struct {
	Stdout bool `env:"STDOUT" envDefault:"false"`
}
