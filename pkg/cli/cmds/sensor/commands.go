// Package sensor exposes the sensor module command set in the shell.
package sensor

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/sense.go/pkg/bus"
	"github.com/robotalks/sense.go/pkg/cli/sh"
	"github.com/robotalks/sense.go/pkg/core"
)

func do(c *ishell.Context, cmd bus.Command, arg uint32, show func(c *ishell.Context, f bus.Frame)) {
	f, err := sh.ClientFrom(c).Do(cmd, arg)
	if err != nil {
		c.Err(err)
		return
	}
	show(c, f)
}

func showResult(c *ishell.Context, f bus.Frame) {
	c.Printf("%#x\n", f.Result())
}

func parseArg(c *ishell.Context) (uint32, bool) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("VALUE required"))
		return 0, false
	}
	val, err := strconv.ParseUint(c.Args[0], 0, 32)
	if err != nil {
		c.Err(fmt.Errorf("invalid VALUE: %v", err))
		return 0, false
	}
	return uint32(val), true
}

var (
	// VersionCmd reads the build version.
	VersionCmd = ishell.Cmd{
		Name:    "version",
		Aliases: []string{"v"},
		Help:    "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdReadVersion, 0, func(c *ishell.Context, f bus.Frame) {
				c.Printf("build %d\n", f.Result())
			})
		},
	}

	// ReadCmd pops one buffered reading pair.
	ReadCmd = ishell.Cmd{
		Name:    "read",
		Aliases: []string{"r"},
		Help:    "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdReadData, 0, func(c *ishell.Context, f bus.Frame) {
				v := f.Result()
				c.Printf("ch1=%d ch2=%d\n", uint16(v>>16), uint16(v))
			})
		},
	}

	// FlashStartCmd rewinds the log cursor to the region base.
	FlashStartCmd = ishell.Cmd{
		Name: "flash.start",
		Help: "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdFlashStart, 0, showResult)
		},
	}

	// FlashPosCmd reads the log cursor.
	FlashPosCmd = ishell.Cmd{
		Name: "flash.pos",
		Help: "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdFlashReadPosition, 0, showResult)
		},
	}

	// FlashEraseCmd erases the whole reserved region.
	FlashEraseCmd = ishell.Cmd{
		Name: "flash.erase",
		Help: "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdFlashEraseFull, 0, showResult)
		},
	}

	// FlashSizeCmd sets the recording window size in bytes.
	FlashSizeCmd = ishell.Cmd{
		Name: "flash.size",
		Help: "BYTES",
		Func: func(c *ishell.Context) {
			if arg, ok := parseArg(c); ok {
				do(c, bus.CmdFlashSetSampleSize, arg, showResult)
			}
		},
	}

	// FlashStatusCmd reads the fill percentage of the window.
	FlashStatusCmd = ishell.Cmd{
		Name: "flash.status",
		Help: "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdFlashStatus, 0, func(c *ishell.Context, f bus.Frame) {
				c.Printf("%d%%\n", f.Result())
			})
		},
	}

	// FlashGetCmd dumps the recorded window.
	FlashGetCmd = ishell.Cmd{
		Name: "flash.get",
		Help: "",
		Func: func(c *ishell.Context) {
			words, err := sh.ClientFrom(c).Dump()
			if err != nil {
				c.Err(err)
				return
			}
			for n, v := range words {
				c.Printf("%06x: ch1=%d ch2=%d\n", n*4, uint16(v>>16), uint16(v))
			}
		},
	}

	// StreamRealtimeCmd switches to realtime broadcasting.
	StreamRealtimeCmd = ishell.Cmd{
		Name:    "stream.rt",
		Aliases: []string{"rt"},
		Help:    "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdStreamRealtime, 0, showMode)
		},
	}

	// StreamBufferedCmd switches to flash logging.
	StreamBufferedCmd = ishell.Cmd{
		Name:    "stream.buf",
		Aliases: []string{"buf"},
		Help:    "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdStreamBuffered, 0, showMode)
		},
	}

	// StreamStopCmd stops streaming.
	StreamStopCmd = ishell.Cmd{
		Name:    "stream.stop",
		Aliases: []string{"stop"},
		Help:    "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdStopStreaming, 0, showMode)
		},
	}

	// StreamStatusCmd reads the current streaming mode.
	StreamStatusCmd = ishell.Cmd{
		Name: "stream.status",
		Help: "",
		Func: func(c *ishell.Context) {
			do(c, bus.CmdStreamingStatus, 0, showMode)
		},
	}

	// BufSizeCmd sets the active stream buffer size.
	BufSizeCmd = ishell.Cmd{
		Name: "bufsize",
		Help: "SAMPLES",
		Func: func(c *ishell.Context) {
			if arg, ok := parseArg(c); ok {
				do(c, bus.CmdSetStreamBufferSize, arg, showResult)
			}
		},
	}

	// WatchCmd prints broadcast frames for a while.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[SECONDS]",
		Func: func(c *ishell.Context) {
			secs := 5
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val <= 0 {
					c.Err(fmt.Errorf("invalid SECONDS"))
					return
				}
				secs = val
			}
			client := sh.ClientFrom(c)
			client.Watch(func(f bus.Frame) {
				c.Println(formatBroadcast(f))
			})
			defer client.Watch(nil)
			time.Sleep(time.Duration(secs) * time.Second)
		},
	}
)

func showMode(c *ishell.Context, f bus.Frame) {
	c.Printf("%v\n", core.Mode(f.Result()))
}

func formatBroadcast(f bus.Frame) string {
	switch {
	case f.Data[0] == bus.ReadingTag:
		ch1, ch2 := f.Reading()
		return fmt.Sprintf("reading ch1=%d ch2=%d", ch1, ch2)
	case f.Data[0] == bus.LengthTag && f.Data[3] == bus.HeartbeatTag:
		return fmt.Sprintf("heartbeat from %03x ticks=%d", uint16(f.Origin()), f.Result())
	default:
		return fmt.Sprintf("frame %03x % x", uint16(f.ID), f.Data)
	}
}

func init() {
	sh.AddCmds(
		&VersionCmd,
		&ReadCmd,
		&FlashStartCmd,
		&FlashPosCmd,
		&FlashEraseCmd,
		&FlashSizeCmd,
		&FlashStatusCmd,
		&FlashGetCmd,
		&StreamRealtimeCmd,
		&StreamBufferedCmd,
		&StreamStopCmd,
		&StreamStatusCmd,
		&BufSizeCmd,
		&WatchCmd,
	)
}
