package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameLayout(t *testing.T) {
	testCases := []struct {
		name   string
		frame  Frame
		expect [PayloadLen]byte
	}{
		{
			"request",
			NewRequest(0x107, 0x200, CmdReadVersion, 0),
			[PayloadLen]byte{0x01, 0x02, 0x00, 0, 0, 0, 0, 0},
		},
		{
			"request with argument",
			NewRequest(0x107, 0x200, CmdSetStreamBufferSize, 0x01020304),
			[PayloadLen]byte{0x0E, 0x02, 0x00, 0x01, 0x02, 0x03, 0x04, 0},
		},
		{
			"response",
			NewResponse(0x200, 0x107, CmdReadVersion, 1002),
			[PayloadLen]byte{0x08, 0x01, 0x07, 0x01, 0x00, 0x00, 0x03, 0xEA},
		},
		{
			"heartbeat",
			NewHeartbeat(0x107, 0x12345678),
			[PayloadLen]byte{0x08, 0x01, 0x07, 0x7F, 0x12, 0x34, 0x56, 0x78},
		},
		{
			"reading",
			NewReading(0x0FFF, 0x0001),
			[PayloadLen]byte{0x7E, 0x12, 0x0F, 0xFF, 0x00, 0x01, 0, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.frame.Data)
		})
	}
}

func TestFrameAccessors(t *testing.T) {
	req := NewRequest(0x107, 0x200, CmdFlashSetSampleSize, 0x8000)
	require.Equal(t, ID(0x107), req.ID)
	require.Equal(t, CmdFlashSetSampleSize, req.Command())
	require.Equal(t, ID(0x200), req.ReplyTo())
	require.Equal(t, uint32(0x8000), req.Arg())

	resp := NewResponse(0x200, 0x107, CmdFlashStatus, 100)
	require.Equal(t, ID(0x200), resp.ID)
	require.Equal(t, ID(0x107), resp.Origin())
	require.Equal(t, CmdFlashStatus, resp.Echo())
	require.Equal(t, uint32(100), resp.Result())

	ch1, ch2 := NewReading(0xABC, 0xDEF).Reading()
	require.Equal(t, uint16(0xABC), ch1)
	require.Equal(t, uint16(0xDEF), ch2)
	require.Equal(t, ID(Broadcast), NewReading(1, 2).ID)
}

func TestRecordRoundTrip(t *testing.T) {
	f := NewRequest(0x107, 0x200, CmdReadData, 42)
	rec := f.EncodeRecord()
	require.Len(t, rec, RecordLen)

	got, err := DecodeRecord(rec)
	require.NoError(t, err)
	require.Equal(t, f, got)

	_, err = DecodeRecord(rec[:RecordLen-1])
	require.Error(t, err)
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "ReadVersion", CmdReadVersion.String())
	require.Equal(t, "SetStreamBufferSize", CmdSetStreamBufferSize.String())
	require.Equal(t, "0x9", Command(0x09).String())
}
