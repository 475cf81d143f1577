package core

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/hw"
)

// Defaults
const (
	DefaultID             = 0x107
	DefaultTickInterval   = time.Millisecond
	DefaultHeartbeatTicks = 10000
	DefaultChannels       = 2
	DefaultSpinBudget     = 100
	DefaultFlashBase      = 0x30000
	DefaultFlashSize      = 0x10000

	// DefaultBufferSize is the stream buffer size used when a
	// requested size is zero or out of range.
	DefaultBufferSize = 1024
	// MaxBufferSize bounds the stream buffer size; the ring is
	// allocated once at this capacity and the active size caps it
	// logically.
	MaxBufferSize = 4096
)

// Config defines the configuration for the module.
type Config struct {
	ID             uint16        `yaml:"id"`
	TickInterval   time.Duration `yaml:"-"`
	TickIntervalMs int           `yaml:"tick_interval_ms"`
	HeartbeatTicks uint32        `yaml:"heartbeat_ticks"`
	Channels       int           `yaml:"channels"`
	SpinBudget     int           `yaml:"spin_budget"`
	FlashBase      uint32        `yaml:"flash_base"`
	FlashSize      uint32        `yaml:"flash_size"`
	BufferSize     uint32        `yaml:"buffer_size"`

	// RespondUnknown makes the dispatcher answer unrecognized
	// command codes with a zero result instead of staying silent.
	RespondUnknown bool `yaml:"respond_unknown"`
}

var defaultConfig = Config{
	ID:             DefaultID,
	TickInterval:   DefaultTickInterval,
	HeartbeatTicks: DefaultHeartbeatTicks,
	Channels:       DefaultChannels,
	SpinBudget:     DefaultSpinBudget,
	FlashBase:      DefaultFlashBase,
	FlashSize:      DefaultFlashSize,
	BufferSize:     DefaultBufferSize,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.TickInterval, "tick-interval", defaultConfig.TickInterval, "Sampling period.")
	flag.BoolVar(&defaultConfig.RespondUnknown, "respond-unknown", defaultConfig.RespondUnknown, "Respond to unrecognized command codes with a zero result.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LoadFile merges settings from a YAML file over the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %v", path, err)
	}
	if c.TickIntervalMs > 0 {
		c.TickInterval = time.Duration(c.TickIntervalMs) * time.Millisecond
	}
	return c.Validate()
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.Channels < 1 || c.Channels > 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", c.Channels)
	}
	if c.FlashSize == 0 {
		return fmt.Errorf("flash_size must be positive")
	}
	if c.FlashBase%hw.FlashBlockSize != 0 || c.FlashSize%hw.FlashBlockSize != 0 {
		return fmt.Errorf("flash geometry must be block-aligned")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.BufferSize == 0 || c.BufferSize > MaxBufferSize {
		return fmt.Errorf("buffer_size must be in (0, %d]", MaxBufferSize)
	}
	return nil
}

// BusID returns the module's bus identifier.
func (c *Config) BusID() bus.ID {
	return bus.ID(c.ID)
}

// NewModule creates the Module on the given hardware, transmitting
// frames through out.
func (c *Config) NewModule(adc hw.ADC, flash hw.Flash, out bus.FrameWriter) *Module {
	return newModule(*c, adc, flash, out)
}
