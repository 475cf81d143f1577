package serial

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/sense.go/pkg/bus"
)

func TestRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f1 := bus.NewRequest(0x107, 0x200, bus.CmdReadVersion, 0)
	f2 := bus.NewRequest(0x107, 0x200, bus.CmdFlashStart, 7)
	require.NoError(t, WriteRecord(&buf, f1))
	require.NoError(t, WriteRecord(&buf, f2))

	r := bufio.NewReader(&buf)
	got, err := ReadRecord(r)
	require.NoError(t, err)
	require.Equal(t, f1, got)
	got, err = ReadRecord(r)
	require.NoError(t, err)
	require.Equal(t, f2, got)

	_, err = ReadRecord(r)
	require.Equal(t, io.EOF, err)
}

func TestReadRecordSkipsGarbage(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x13, 0x37})
	f := bus.NewRequest(0x107, 0x200, bus.CmdReadData, 0)
	require.NoError(t, WriteRecord(&buf, f))

	got, err := ReadRecord(bufio.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, f, got)
}

type pipeConn struct {
	io.Reader
	io.Writer
	closed chan struct{}
}

func (c *pipeConn) Close() error {
	close(c.closed)
	return nil
}

func TestPortDeliversInbound(t *testing.T) {
	rd, wr := io.Pipe()
	conn := &pipeConn{Reader: rd, Writer: io.Discard, closed: make(chan struct{})}
	port := NewPort(conn)

	recv := make(chan bus.Frame, 1)
	port.Handler = bus.HandleFrameFunc(func(f bus.Frame) { recv <- f })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- port.Run(ctx) }()

	f := bus.NewRequest(0x107, 0x200, bus.CmdStreamRealtime, 0)
	require.NoError(t, WriteRecord(wr, f))
	require.Equal(t, f, <-recv)

	cancel()
	wr.Close()
	require.Equal(t, context.Canceled, <-done)
}
