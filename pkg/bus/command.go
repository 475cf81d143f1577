package bus

import "strconv"

// Command is a command code carried in byte 0 of a request frame.
// Codes are stable across builds. 0x09 is reserved (it belonged to a
// host-side export in an earlier protocol revision).
type Command byte

// Recognized commands.
const (
	CmdReadVersion         Command = 0x01
	CmdReadData            Command = 0x02
	CmdFlashStart          Command = 0x03
	CmdFlashReadPosition   Command = 0x04
	CmdFlashEraseFull      Command = 0x05
	CmdFlashSetSampleSize  Command = 0x06
	CmdFlashStatus         Command = 0x07
	CmdFlashGetData        Command = 0x08
	CmdStreamRealtime      Command = 0x0A
	CmdStreamBuffered      Command = 0x0B
	CmdStopStreaming       Command = 0x0C
	CmdStreamingStatus     Command = 0x0D
	CmdSetStreamBufferSize Command = 0x0E
)

var commandNames = map[Command]string{
	CmdReadVersion:         "ReadVersion",
	CmdReadData:            "ReadData",
	CmdFlashStart:          "FlashStart",
	CmdFlashReadPosition:   "FlashReadPosition",
	CmdFlashEraseFull:      "FlashEraseFull",
	CmdFlashSetSampleSize:  "FlashSetSampleSize",
	CmdFlashStatus:         "FlashStatus",
	CmdFlashGetData:        "FlashGetData",
	CmdStreamRealtime:      "StreamRealtime",
	CmdStreamBuffered:      "StreamBuffered",
	CmdStopStreaming:       "StopStreaming",
	CmdStreamingStatus:     "StreamingStatus",
	CmdSetStreamBufferSize: "SetStreamBufferSize",
}

// String returns the command name, or the hex code if unrecognized.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "0x" + strconv.FormatUint(uint64(c), 16)
}
