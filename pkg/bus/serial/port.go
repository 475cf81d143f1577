// Package serial provides the secondary point-to-point transport. It
// mirrors the same command set over a serial line; from the module's
// point of view the reader is just another producer submitting into
// the mailbox.
package serial

import (
	"bufio"
	"context"
	"flag"
	"io"
	"sync"

	"github.com/golang/glog"
	gserial "github.com/jacobsa/go-serial/serial"

	"github.com/robotalks/sense.go/pkg/bus"
)

// SyncByte precedes every wire record on the line. Framing recovers
// at the next sync byte after stream corruption.
const SyncByte byte = 0xAA

// WriteRecord writes one frame to the line.
func WriteRecord(w io.Writer, f bus.Frame) error {
	_, err := w.Write(append([]byte{SyncByte}, f.EncodeRecord()...))
	return err
}

// ReadRecord scans to the next sync byte and decodes the record that
// follows. Bytes before the sync are discarded.
func ReadRecord(r *bufio.Reader) (bus.Frame, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return bus.Frame{}, err
		}
		if b != SyncByte {
			continue
		}
		rec := make([]byte, bus.RecordLen)
		if _, err = io.ReadFull(r, rec); err != nil {
			return bus.Frame{}, err
		}
		return bus.DecodeRecord(rec)
	}
}

// Config defines the configuration for the serial line.
type Config struct {
	Device string
	Baud   uint
}

var defaultConfig = Config{
	Baud: 115200,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "serial", defaultConfig.Device, "Serial device for the point-to-point transport, empty disables it.")
	flag.UintVar(&defaultConfig.Baud, "serial-baud", defaultConfig.Baud, "Serial baud rate.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// Open opens the serial line as a transport endpoint.
func (c *Config) Open() (*Port, error) {
	conn, err := gserial.Open(gserial.OpenOptions{
		PortName:        c.Device,
		BaudRate:        c.Baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, err
	}
	return NewPort(conn), nil
}

// Port is an open point-to-point endpoint. Handler receives every
// inbound frame; addressing is filtered downstream.
type Port struct {
	Handler bus.FrameHandler

	conn     io.ReadWriteCloser
	sendLock sync.Mutex
}

// NewPort creates a Port over an open connection.
func NewPort(conn io.ReadWriteCloser) *Port {
	return &Port{conn: conn}
}

// WriteFrame implements bus.FrameWriter.
func (p *Port) WriteFrame(f bus.Frame) error {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return WriteRecord(p.conn, f)
}

// Run reads inbound records until the context is canceled or the
// line fails.
func (p *Port) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- p.readLoop() }()
	select {
	case <-ctx.Done():
		p.conn.Close()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (p *Port) readLoop() error {
	r := bufio.NewReader(p.conn)
	for {
		f, err := ReadRecord(r)
		if err != nil {
			return err
		}
		if glog.V(3) {
			glog.Infof("serial frame for %03x", uint16(f.ID))
		}
		if h := p.Handler; h != nil {
			h.HandleFrame(f)
		}
	}
}
