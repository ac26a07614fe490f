package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/sortable"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	DefaultReadTimeout       = 60 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultHeartbeatInterval = 30 * time.Second
)

// FileNames lists the configuration file names Load looks for, in order.
var FileNames = []string{"sortable.json", "sortable.yaml", "sortable.yml"}

// Config represents the complete configuration file.
type Config struct {
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
	List   ListConfig   `json:"list,omitempty" yaml:"list,omitempty"`
	Log    LogConfig    `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains websocket server settings. Durations use Go
// duration syntax ("30s").
type ServerConfig struct {
	Host              string `json:"host,omitempty" yaml:"host,omitempty"`
	Port              int    `json:"port,omitempty" yaml:"port,omitempty"`
	ReadTimeout       string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	WriteTimeout      string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	HeartbeatInterval string `json:"heartbeatInterval,omitempty" yaml:"heartbeatInterval,omitempty"`
}

// ListConfig contains the list contents and controller options.
type ListConfig struct {
	// Items is the initial list.
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`

	// Multiple is accepted for compatibility and has no effect.
	Multiple bool `json:"multiple,omitempty" yaml:"multiple,omitempty"`

	DraggingClassNames []string `json:"draggingClassNames,omitempty" yaml:"draggingClassNames,omitempty"`
	DragoverClassNames []string `json:"dragoverClassNames,omitempty" yaml:"dragoverClassNames,omitempty"`

	// Animate enables the live reorder preview.
	Animate bool `json:"animate,omitempty" yaml:"animate,omitempty"`

	// InsertPolicy is "drop" or "over".
	InsertPolicy string `json:"insertPolicy,omitempty" yaml:"insertPolicy,omitempty"`

	// Axis is "both", "x" or "y".
	Axis string `json:"axis,omitempty" yaml:"axis,omitempty"`

	Animation AnimationConfig `json:"animation,omitempty" yaml:"animation,omitempty"`
}

// AnimationConfig configures the preview transition. Delay and Stagger
// add up: position i is delayed by Delay + i*Stagger.
type AnimationConfig struct {
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Delay    string `json:"delay,omitempty" yaml:"delay,omitempty"`
	Stagger  string `json:"stagger,omitempty" yaml:"stagger,omitempty"`
	Timing   string `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the first of FileNames found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E101").
		WithDetail("No " + strings.Join(FileNames, ", ") + " found in " + dir).
		WithSuggestion("Create sortable.json or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E102").WithDetail(path).Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E103").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout.String()
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout.String()
	}
	if c.Server.HeartbeatInterval == "" {
		c.Server.HeartbeatInterval = DefaultHeartbeatInterval.String()
	}

	defaults := sortable.DefaultOptions()
	if c.List.DraggingClassNames == nil {
		c.List.DraggingClassNames = defaults.DraggingClassNames
	}
	if c.List.DragoverClassNames == nil {
		c.List.DragoverClassNames = defaults.DragoverClassNames
	}
	if c.List.InsertPolicy == "" {
		c.List.InsertPolicy = defaults.InsertPolicy.String()
	}
	if c.List.Axis == "" {
		c.List.Axis = defaults.Axis.String()
	}
	if c.List.Animation.Duration == "" {
		c.List.Animation.Duration = sortable.DefaultAnimationDuration.String()
	}
	if c.List.Animation.Timing == "" {
		c.List.Animation.Timing = sortable.DefaultAnimationTiming
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", "must be between 0 and 65535")
	}
	durations := []struct{ field, value string }{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.heartbeatInterval", c.Server.HeartbeatInterval},
		{"list.animation.duration", c.List.Animation.Duration},
		{"list.animation.delay", c.List.Animation.Delay},
		{"list.animation.stagger", c.List.Animation.Stagger},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.value); err != nil {
			return invalid(d.field, err.Error())
		}
	}
	if _, ok := sortable.ParseInsertPolicy(c.List.InsertPolicy); !ok {
		return invalid("list.insertPolicy", "must be \"drop\" or \"over\", got "+strconv.Quote(c.List.InsertPolicy))
	}
	if _, ok := sortable.ParseAxis(c.List.Axis); !ok {
		return invalid("list.axis", "must be \"both\", \"x\" or \"y\", got "+strconv.Quote(c.List.Axis))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid("log.level", err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format", "must be \"text\" or \"json\"")
	}
	return nil
}

func invalid(field, detail string) error {
	return errors.New("E104").WithDetail(field + " " + detail)
}

// parseDuration parses a duration, treating "" as zero. Negative values
// are rejected.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Newf(errors.CategoryConfig, "negative duration %s", s)
	}
	return d, nil
}

func mustDuration(s string) time.Duration {
	d, _ := parseDuration(s)
	return d
}

// Address returns host:port for the server.
func (s ServerConfig) Address() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// ReadTimeoutDuration returns the parsed read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return mustDuration(s.ReadTimeout)
}

// WriteTimeoutDuration returns the parsed write timeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return mustDuration(s.WriteTimeout)
}

// HeartbeatDuration returns the parsed heartbeat interval.
func (s ServerConfig) HeartbeatDuration() time.Duration {
	return mustDuration(s.HeartbeatInterval)
}

// ListOptions maps the list section onto controller options. The config
// must have passed Validate.
func (c *Config) ListOptions() ([]sortable.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	l := c.List
	policy, _ := sortable.ParseInsertPolicy(l.InsertPolicy)
	axis, _ := sortable.ParseAxis(l.Axis)

	duration := mustDuration(l.Animation.Duration)
	delay := mustDuration(l.Animation.Delay)
	stagger := sortable.Stagger(mustDuration(l.Animation.Stagger))
	timing := l.Animation.Timing

	return []sortable.Option{
		sortable.WithMultiple(l.Multiple),
		sortable.WithDraggingClassNames(l.DraggingClassNames...),
		sortable.WithDragoverClassNames(l.DragoverClassNames...),
		sortable.WithAnimate(l.Animate),
		sortable.WithInsertPolicy(policy),
		sortable.WithAxis(axis),
		sortable.WithAnimationDuration(func(int) time.Duration { return duration }),
		sortable.WithAnimationDelay(func(i int) time.Duration { return delay + stagger(i) }),
		sortable.WithAnimationTiming(func(int) string { return timing }),
	}, nil
}
