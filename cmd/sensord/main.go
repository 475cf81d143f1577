package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/denisbrodbeck/machineid"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/bus/mqtt"
	"github.com/robotalks/sense.go/pkg/bus/serial"
	"github.com/robotalks/sense.go/pkg/bus/ws"
	"github.com/robotalks/sense.go/pkg/core"
	"github.com/robotalks/sense.go/pkg/hw/sim"
	"github.com/robotalks/sense.go/pkg/run"
)

var (
	mqttURL     = "mqtt://localhost:1883/sense/"
	configFile  string
	monitorAddr string
)

func init() {
	if val := os.Getenv("SENSE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&configFile, "config", configFile, "YAML configuration file.")
	flag.StringVar(&monitorAddr, "monitor", monitorAddr, "Websocket monitor listen address, empty disables it.")
	core.SetupFlags()
	serial.SetupFlags()
}

func machineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}

func main() {
	flag.Parse()

	conf := core.NewConfig()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			glog.Exitln(err)
		}
	} else if err := conf.Validate(); err != nil {
		glog.Exitln(err)
	}

	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(mqttURL)
	if err != nil {
		glog.Exitln(err)
	}
	if opts.ClientID == "" {
		opts.SetClientID("sensord-" + machineID())
	}
	b := &mqtt.Bus{Client: paho.NewClient(opts), TopicPrefix: topicPrefix}
	if err = b.Connect(); err != nil {
		glog.Exitln(err)
	}
	defer b.Close()

	out := bus.FrameWriter(b)
	group := run.NewGroup(context.Background()).HandleSignals()

	var port *serial.Port
	if serial.Default().Device != "" {
		if port, err = serial.Default().Open(); err != nil {
			glog.Exitln(err)
		}
		out = bus.Tee(b, port)
	}

	if monitorAddr != "" {
		mon := ws.NewMonitor()
		out = bus.Tee(out, mon)
		srv := &http.Server{Addr: monitorAddr, Handler: mon.Handler()}
		group.Go(run.NamedRun("monitor", run.RunFunc(func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				srv.Close()
			}()
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return nil
		})))
	}

	mod := conf.NewModule(sim.NewADC(conf.Channels), sim.NewFlash(conf.FlashBase, conf.FlashSize), out)
	if err = b.Subscribe(conf.BusID(), mod); err != nil {
		glog.Exitln(err)
	}
	if port != nil {
		port.Handler = mod
		group.Go(run.NamedRun("serial", port))
	}

	group.Go(run.NamedRun("module", mod))
	if err = group.Wait(); err != nil {
		glog.Exitln(err)
	}
}
