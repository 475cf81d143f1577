package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/bus/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/sense/"
)

func init() {
	if val := os.Getenv("SENSE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	token := client.Subscribe(topicPrefix+"bus/#", 0, func(_ paho.Client, msg paho.Message) {
		f, err := bus.DecodeRecord(msg.Payload())
		if err != nil {
			log.Printf("%s: bad record: %v", msg.Topic(), err)
			return
		}
		log.Printf("%s: %s", msg.Topic(), describe(f))
	})
	if token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}

func describe(f bus.Frame) string {
	switch {
	case f.Data[0] == bus.ReadingTag:
		ch1, ch2 := f.Reading()
		return fmt.Sprintf("reading ch1=%d ch2=%d", ch1, ch2)
	case f.Data[0] == bus.LengthTag && f.Data[3] == bus.HeartbeatTag:
		return fmt.Sprintf("heartbeat from %03x ticks=%d", uint16(f.Origin()), f.Result())
	case f.Data[0] == bus.LengthTag:
		return fmt.Sprintf("response from %03x: %v result=%#x", uint16(f.Origin()), f.Echo(), f.Result())
	default:
		return fmt.Sprintf("request %v arg=%#x reply-to=%03x", f.Command(), f.Arg(), uint16(f.ReplyTo()))
	}
}
