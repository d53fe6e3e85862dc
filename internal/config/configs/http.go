package configs

import (
	"net"
	"strconv"
	"time"
)

// HTTP defines configuration for the HTTP server. Host is empty to listen
// on all interfaces.
type HTTP struct {
	Host string `env:"HOST" envDefault:""`
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port              uint16        `env:"PORT" envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Addr returns the listen address in host:port form.
func (c HTTP) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}
