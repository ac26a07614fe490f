package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sortable/pkg/sortable"
)

// Config configures the server.
type Config struct {
	// Address is the TCP address to listen on.
	Address string

	// Items is the initial list shared by all sessions.
	Items []string

	// Options configure every session's controller. The server installs its
	// own scheduler, observer and logger after these.
	Options []sortable.Option

	// ReadTimeout is the deadline for the next client frame.
	ReadTimeout time.Duration

	// WriteTimeout is the deadline for each frame write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the WebSocket request origin.
	CheckOrigin func(r *http.Request) bool

	// Registry receives the server's Prometheus collectors and backs
	// /metrics. A private registry is created when nil.
	Registry *prometheus.Registry

	// TracerProvider creates the commit tracer. The global provider is
	// used when nil.
	TracerProvider trace.TracerProvider
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
	}
}

// withDefaults returns a copy of c with zero fields filled in.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.HeartbeatInterval == 0 {
		out.HeartbeatInterval = d.HeartbeatInterval
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	out.Items = append([]string(nil), c.Items...)
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
