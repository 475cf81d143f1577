// Package cli implements the requester side of the command protocol
// for interactive tooling.
package cli

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/bus/mqtt"
)

// Config defines the configuration for a Client.
type Config struct {
	BrokerURL string
	ID        uint16
	Module    uint16
	Timeout   time.Duration
}

var defaultConfig = Config{
	BrokerURL: "mqtt://localhost:1883/sense/",
	ID:        0x200,
	Module:    0x107,
	Timeout:   time.Second,
}

func init() {
	if val := os.Getenv("SENSE_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL.")
	flag.UintVar(&idFlag, "id", uint(defaultConfig.ID), "Bus identifier of this client.")
	flag.UintVar(&moduleFlag, "module", uint(defaultConfig.Module), "Bus identifier of the module to talk to.")
}

var (
	idFlag     = uint(defaultConfig.ID)
	moduleFlag = uint(defaultConfig.Module)
)

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	conf.ID, conf.Module = uint16(idFlag), uint16(moduleFlag)
	return &conf
}

// Client is one requester on the bus. It owns an identifier, sends
// requests toward the module, and collects the responses addressed
// back to it. Broadcast frames are handed to the Watch sink.
type Client struct {
	cfg  Config
	bus  *mqtt.Bus
	resp chan bus.Frame

	watchLock sync.Mutex
	watch     func(bus.Frame)
}

// NewClient connects to the broker and subscribes the client's own
// identifier plus the broadcast identifier.
func (c *Config) NewClient() (*Client, error) {
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(c.BrokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		id, err := machineid.ID()
		if err != nil {
			return nil, err
		}
		opts.SetClientID(fmt.Sprintf("sensorctl-%03x-%s", c.ID, id))
	}
	cl := &Client{
		cfg:  *c,
		bus:  &mqtt.Bus{Client: paho.NewClient(opts), TopicPrefix: topicPrefix},
		resp: make(chan bus.Frame, 1024),
	}
	if err = cl.bus.Connect(); err != nil {
		return nil, err
	}
	if err = cl.bus.Subscribe(bus.ID(c.ID), bus.HandleFrameFunc(cl.onResponse)); err != nil {
		cl.bus.Close()
		return nil, err
	}
	if err = cl.bus.Subscribe(bus.Broadcast, bus.HandleFrameFunc(cl.onBroadcast)); err != nil {
		cl.bus.Close()
		return nil, err
	}
	return cl, nil
}

// Close implements io.Closer.
func (c *Client) Close() error {
	return c.bus.Close()
}

// ModuleID returns the identifier of the module this client talks to.
func (c *Client) ModuleID() bus.ID {
	return bus.ID(c.cfg.Module)
}

func (c *Client) onResponse(f bus.Frame) {
	select {
	case c.resp <- f:
	default:
	}
}

func (c *Client) onBroadcast(f bus.Frame) {
	c.watchLock.Lock()
	fn := c.watch
	c.watchLock.Unlock()
	if fn != nil {
		fn(f)
	}
}

// Watch installs the sink receiving broadcast frames, nil uninstalls.
func (c *Client) Watch(fn func(bus.Frame)) {
	c.watchLock.Lock()
	c.watch = fn
	c.watchLock.Unlock()
}

// Do sends one command and waits for the matching response.
func (c *Client) Do(cmd bus.Command, arg uint32) (bus.Frame, error) {
	c.drain()
	req := bus.NewRequest(bus.ID(c.cfg.Module), bus.ID(c.cfg.ID), cmd, arg)
	if err := c.bus.WriteFrame(req); err != nil {
		return bus.Frame{}, err
	}
	return c.next(cmd)
}

// Dump sends FlashGetData and collects the streamed window: the first
// response carries the window size in bytes, followed by one word per
// response and a zero terminator.
func (c *Client) Dump() ([]uint32, error) {
	c.drain()
	req := bus.NewRequest(bus.ID(c.cfg.Module), bus.ID(c.cfg.ID), bus.CmdFlashGetData, 0)
	if err := c.bus.WriteFrame(req); err != nil {
		return nil, err
	}
	head, err := c.next(bus.CmdFlashGetData)
	if err != nil {
		return nil, err
	}
	count := head.Result() / 4
	words := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		f, err := c.next(bus.CmdFlashGetData)
		if err != nil {
			return words, err
		}
		words = append(words, f.Result())
	}
	// zero terminator
	if _, err = c.next(bus.CmdFlashGetData); err != nil {
		return words, err
	}
	return words, nil
}

func (c *Client) drain() {
	for {
		select {
		case <-c.resp:
		default:
			return
		}
	}
}

func (c *Client) next(cmd bus.Command) (bus.Frame, error) {
	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = time.Second
	}
	deadline := time.After(timeout)
	for {
		select {
		case f := <-c.resp:
			if f.Echo() != cmd {
				continue
			}
			return f, nil
		case <-deadline:
			return bus.Frame{}, fmt.Errorf("command timeout: %v", cmd)
		}
	}
}
