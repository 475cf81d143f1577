package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/sense.go/pkg/bus"
)

func TestMailboxTakeEmpty(t *testing.T) {
	var m Mailbox
	_, ok := m.Take()
	require.False(t, ok)
	require.False(t, m.Overrun())
}

func TestMailboxSubmitTake(t *testing.T) {
	var m Mailbox
	f := bus.NewRequest(0x107, 0x200, bus.CmdReadVersion, 0)
	m.Submit(f)

	got, ok := m.Take()
	require.True(t, ok)
	require.Equal(t, f, got)
	require.False(t, m.Overrun(), "single arrival must not flag overrun")

	_, ok = m.Take()
	require.False(t, ok, "new flag must be clear after consumption")
}

func TestMailboxOverrun(t *testing.T) {
	var m Mailbox
	first := bus.NewRequest(0x107, 0x200, bus.CmdReadVersion, 0)
	second := bus.NewRequest(0x107, 0x200, bus.CmdReadData, 0)
	m.Submit(first)
	m.Submit(second)

	require.True(t, m.Overrun(), "second arrival before consume must flag overrun")

	// last writer wins, the current frame is still valid
	got, ok := m.Take()
	require.True(t, ok)
	require.Equal(t, second, got)

	// overrun is cleared independently of take
	require.True(t, m.Overrun())
	m.ClearOverrun()
	require.False(t, m.Overrun())
}

func TestMailboxConsumeBetweenArrivals(t *testing.T) {
	var m Mailbox
	for i := 0; i < 5; i++ {
		m.Submit(bus.NewRequest(0x107, 0x200, bus.CmdReadData, uint32(i)))
		got, ok := m.Take()
		require.True(t, ok)
		require.Equal(t, uint32(i), got.Arg())
	}
	require.False(t, m.Overrun(), "consuming before each next arrival never sets overrun")
}
