package core

import (
	"github.com/golang/glog"

	"github.com/robotalks/sense.go/pkg/bus"
)

// dispatch applies one consumed command frame to the shared
// configuration and mode and emits exactly one response toward the
// requester (FlashGetData additionally streams the recorded window).
// Every handled command also pushes the heartbeat deadline out, which
// suppresses an immediate duplicate heartbeat. Main loop only.
func (m *Module) dispatch(req bus.Frame) {
	cmd, arg, replyTo := req.Command(), req.Arg(), req.ReplyTo()
	if glog.V(3) {
		glog.Infof("cmd %v arg %#x reply-to %03x", cmd, arg, uint16(replyTo))
	}

	var result uint32
	switch cmd {
	case bus.CmdReadVersion:
		result = BuildVersion
	case bus.CmdReadData:
		result, _ = m.ring.Pop() // zero when empty
	case bus.CmdFlashStart:
		result = m.log.Reset()
	case bus.CmdFlashReadPosition:
		result = m.log.Index()
	case bus.CmdFlashEraseFull:
		result = m.log.EraseAll()
	case bus.CmdFlashSetSampleSize:
		result = m.log.SetWindow(arg)
	case bus.CmdFlashStatus:
		result = m.log.Percent()
	case bus.CmdFlashGetData:
		m.dumpFlash(replyTo)
		m.resetHeartbeat()
		return
	case bus.CmdStreamRealtime:
		result = m.setMode(ModeRealtime)
	case bus.CmdStreamBuffered:
		result = m.setMode(ModeBuffered)
	case bus.CmdStopStreaming:
		result = m.setMode(ModeStopped)
	case bus.CmdStreamingStatus:
		result = uint32(m.Mode())
	case bus.CmdSetStreamBufferSize:
		if arg == 0 || arg > MaxBufferSize {
			arg = DefaultBufferSize
		}
		m.bufSize.Store(arg)
		result = arg
	default:
		// no side effect; answering at all is a policy choice
		if !m.cfg.RespondUnknown {
			return
		}
	}

	m.send(bus.NewResponse(replyTo, m.cfg.BusID(), cmd, result))
	m.resetHeartbeat()
}

// setMode switches the streaming mode. The change takes effect from
// the next tick, not retroactively.
func (m *Module) setMode(mode Mode) uint32 {
	m.mode.Store(uint32(mode))
	return uint32(mode)
}

func (m *Module) resetHeartbeat() {
	m.heartbeatAt = m.ticks.Load() + m.cfg.HeartbeatTicks
}

// dumpFlash streams the recorded window toward replyTo: the window
// size first, then one response per 4-byte word, then a zero
// terminator.
func (m *Module) dumpFlash(replyTo bus.ID) {
	self := m.cfg.BusID()
	m.send(bus.NewResponse(replyTo, self, bus.CmdFlashGetData, m.log.Window()))
	_ = m.log.Dump(func(word uint32) error {
		m.send(bus.NewResponse(replyTo, self, bus.CmdFlashGetData, word))
		return nil
	})
	m.send(bus.NewResponse(replyTo, self, bus.CmdFlashGetData, 0))
}
