// Package mqtt connects field-bus participants over an MQTT broker.
package mqtt

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/sense.go/pkg/bus"
)

// ErrTransmitTimeout indicates a publish did not clear within the
// send timeout. The frame is abandoned; there is no retry at this
// layer.
var ErrTransmitTimeout = errors.New("transmit timed out")

// DefaultSendTimeout bounds the wait for a publish to clear.
const DefaultSendTimeout = 100 * time.Millisecond

// Topic maps a bus identifier to its topic. Every identifier has one
// topic; a frame is published on its destination's topic.
func Topic(prefix string, id bus.ID) string {
	return fmt.Sprintf("%sbus/%03x", prefix, uint16(id))
}

// Bus is a field-bus endpoint over MQTT. Frames travel as wire
// records on per-identifier topics; broadcast is just the broadcast
// identifier's topic.
type Bus struct {
	Client      paho.Client
	TopicPrefix string
	SendTimeout time.Duration
}

// ClientOptionsFromURL creates ClientOptions from URL. The URL path
// becomes the topic prefix; a client-id query parameter sets the
// client identity.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	server := u.Scheme
	if server == "" || server == "mqtt" {
		server = "tcp"
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// NewBus creates a Bus from a broker URL.
func NewBus(brokerURL string) (*Bus, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Bus{Client: paho.NewClient(opts), TopicPrefix: topicPrefix}, nil
}

// Connect connects to the broker.
func (b *Bus) Connect() error {
	token := b.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (b *Bus) Close() error {
	b.Client.Disconnect(0)
	return nil
}

// Subscribe delivers every frame published to id's topic to handler.
// Handlers run on the client's receive goroutine and must not block.
func (b *Bus) Subscribe(id bus.ID, handler bus.FrameHandler) error {
	topic := Topic(b.TopicPrefix, id)
	if glog.V(2) {
		glog.Infof("SUB %q", topic)
	}
	token := b.Client.Subscribe(topic, 0, func(_ paho.Client, msg paho.Message) {
		f, err := bus.DecodeRecord(msg.Payload())
		if err != nil {
			glog.V(1).Infof("bad record on %q: %v", msg.Topic(), err)
			return
		}
		handler.HandleFrame(f)
	})
	token.Wait()
	return token.Error()
}

// WriteFrame implements bus.FrameWriter. The wait for the publish to
// clear is bounded; on timeout the frame is abandoned.
func (b *Bus) WriteFrame(f bus.Frame) error {
	token := b.Client.Publish(Topic(b.TopicPrefix, f.ID), 0, false, f.EncodeRecord())
	timeout := b.SendTimeout
	if timeout == 0 {
		timeout = DefaultSendTimeout
	}
	if !token.WaitTimeout(timeout) {
		return ErrTransmitTimeout
	}
	return token.Error()
}
