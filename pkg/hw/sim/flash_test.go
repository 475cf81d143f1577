package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/sense.go/pkg/hw"
)

func TestFlashProgramErase(t *testing.T) {
	f := NewFlash(0x30000, 0x1000)

	require.NoError(t, f.Program(0x30000, 0x12345678))
	require.Equal(t, uint32(0x12345678), f.ReadWord(0x30000))

	// programming over an unerased word only clears bits
	require.NoError(t, f.Program(0x30000, 0xFF00FF00))
	require.Equal(t, uint32(0x12345678&0xFF00FF00), f.ReadWord(0x30000))

	require.NoError(t, f.EraseBlock(0x30000))
	require.Equal(t, uint32(0xFFFFFFFF), f.ReadWord(0x30000))
	require.NoError(t, f.Program(0x30000, 0xFF00FF00))
	require.Equal(t, uint32(0xFF00FF00), f.ReadWord(0x30000))
}

func TestFlashEraseBlockAligned(t *testing.T) {
	f := NewFlash(0x30000, 0x1000)
	require.NoError(t, f.Program(0x30400, 0))
	require.NoError(t, f.Program(0x307FC, 0))
	require.NoError(t, f.Program(0x30800, 0))

	// erase by any address inside the block
	require.NoError(t, f.EraseBlock(0x30500))
	require.Equal(t, uint32(0xFFFFFFFF), f.ReadWord(0x30400))
	require.Equal(t, uint32(0xFFFFFFFF), f.ReadWord(0x307FC))
	require.Equal(t, uint32(0), f.ReadWord(0x30800))
	require.Equal(t, []uint32{0x30400}, f.Erases())
}

func TestFlashBounds(t *testing.T) {
	f := NewFlash(0x30000, 0x1000)
	require.Error(t, f.Program(0x2FFFC, 0))
	require.Error(t, f.Program(0x31000, 0))
	require.Error(t, f.Program(0x30001, 0))
	require.Error(t, f.EraseBlock(0x31000))
}

func TestADCConversion(t *testing.T) {
	a := NewADC(2)
	a.Source = func(ch int) uint16 { return uint16(0x1000 + ch) }
	a.Latency = 3

	a.Trigger()
	for i := 0; i < 3; i++ {
		require.False(t, a.Done())
	}
	require.True(t, a.Done())

	dst := make([]uint16, 2)
	require.Equal(t, 2, a.Read(dst))
	require.Equal(t, []uint16{0x1000, 0x1001}, dst)
	require.EqualValues(t, 0xFFF, hw.ADCMask)
}
