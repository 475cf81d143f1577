package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, uint16(0x107), cfg.ID)
	require.Equal(t, time.Millisecond, cfg.TickInterval)
	require.Equal(t, uint32(10000), cfg.HeartbeatTicks)
	require.False(t, cfg.RespondUnknown)
}

func TestConfigLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
id: 0x108
tick_interval_ms: 5
heartbeat_ticks: 2000
channels: 1
respond_unknown: true
`), 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFile(path))
	require.Equal(t, uint16(0x108), cfg.ID)
	require.Equal(t, 5*time.Millisecond, cfg.TickInterval)
	require.Equal(t, uint32(2000), cfg.HeartbeatTicks)
	require.Equal(t, 1, cfg.Channels)
	require.True(t, cfg.RespondUnknown)
	// untouched fields keep their defaults
	require.Equal(t, uint32(DefaultFlashBase), cfg.FlashBase)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name  string
		tweak func(*Config)
	}{
		{"zero channels", func(c *Config) { c.Channels = 0 }},
		{"too many channels", func(c *Config) { c.Channels = 3 }},
		{"zero flash size", func(c *Config) { c.FlashSize = 0 }},
		{"unaligned flash base", func(c *Config) { c.FlashBase = 0x30004 }},
		{"unaligned flash size", func(c *Config) { c.FlashSize = 0x1234 }},
		{"zero tick interval", func(c *Config) { c.TickInterval = 0 }},
		{"zero buffer size", func(c *Config) { c.BufferSize = 0 }},
		{"oversized buffer", func(c *Config) { c.BufferSize = MaxBufferSize + 1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.tweak(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
