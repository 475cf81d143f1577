package bus

import (
	"encoding/binary"
	"fmt"
)

// ID is a logical bus identifier naming a sender or receiver.
type ID uint16

// Broadcast is the identifier every participant listens on.
const Broadcast ID = 0x7DF

// PayloadLen is the fixed payload size of a frame.
const PayloadLen = 8

// RecordLen is the size of a frame encoded as a wire record.
const RecordLen = 2 + PayloadLen

// Payload tag bytes.
const (
	// LengthTag fills byte 0 of responses and heartbeats.
	LengthTag byte = 0x08
	// HeartbeatTag marks a heartbeat in byte 3.
	HeartbeatTag byte = 0x7F
	// ReadingTag marks a realtime reading broadcast in byte 0.
	ReadingTag byte = 0x7E
	// PairTag identifies the channel pair (channels 1 and 2) in byte 1
	// of a reading broadcast.
	PairTag byte = 0x12
)

// Frame is a fixed 8-byte payload addressed to a bus identifier.
type Frame struct {
	ID   ID
	Data [PayloadLen]byte
}

// NewRequest builds a command request addressed to dst.
// Responses will be sent toward replyTo.
func NewRequest(dst, replyTo ID, cmd Command, arg uint32) Frame {
	f := Frame{ID: dst}
	f.Data[0] = byte(cmd)
	binary.BigEndian.PutUint16(f.Data[1:3], uint16(replyTo))
	binary.BigEndian.PutUint32(f.Data[3:7], arg)
	return f
}

// NewResponse builds the response a module sends for a handled command.
func NewResponse(dst, self ID, cmd Command, result uint32) Frame {
	f := Frame{ID: dst}
	f.Data[0] = LengthTag
	binary.BigEndian.PutUint16(f.Data[1:3], uint16(self))
	f.Data[3] = byte(cmd)
	binary.BigEndian.PutUint32(f.Data[4:8], result)
	return f
}

// NewHeartbeat builds the periodic liveness broadcast.
func NewHeartbeat(self ID, ticks uint32) Frame {
	f := Frame{ID: Broadcast}
	f.Data[0] = LengthTag
	binary.BigEndian.PutUint16(f.Data[1:3], uint16(self))
	f.Data[3] = HeartbeatTag
	binary.BigEndian.PutUint32(f.Data[4:8], ticks)
	return f
}

// NewReading builds the realtime broadcast for one channel pair.
func NewReading(ch1, ch2 uint16) Frame {
	f := Frame{ID: Broadcast}
	f.Data[0] = ReadingTag
	f.Data[1] = PairTag
	binary.BigEndian.PutUint16(f.Data[2:4], ch1)
	binary.BigEndian.PutUint16(f.Data[4:6], ch2)
	return f
}

// Command extracts the command code of a request.
func (f Frame) Command() Command {
	return Command(f.Data[0])
}

// ReplyTo extracts the identifier a response should be addressed to.
func (f Frame) ReplyTo() ID {
	return ID(binary.BigEndian.Uint16(f.Data[1:3]))
}

// Arg extracts the 32-bit argument of a request.
func (f Frame) Arg() uint32 {
	return binary.BigEndian.Uint32(f.Data[3:7])
}

// Origin extracts the sender identifier of a response or heartbeat.
func (f Frame) Origin() ID {
	return ID(binary.BigEndian.Uint16(f.Data[1:3]))
}

// Echo extracts the echoed command code of a response.
func (f Frame) Echo() Command {
	return Command(f.Data[3])
}

// Result extracts the 32-bit result value of a response.
func (f Frame) Result() uint32 {
	return binary.BigEndian.Uint32(f.Data[4:8])
}

// Reading extracts the channel pair of a realtime broadcast.
func (f Frame) Reading() (ch1, ch2 uint16) {
	return binary.BigEndian.Uint16(f.Data[2:4]), binary.BigEndian.Uint16(f.Data[4:6])
}

// EncodeRecord encodes the frame as a wire record: identifier followed
// by the payload, all big-endian.
func (f Frame) EncodeRecord() []byte {
	rec := make([]byte, RecordLen)
	binary.BigEndian.PutUint16(rec[0:2], uint16(f.ID))
	copy(rec[2:], f.Data[:])
	return rec
}

// DecodeRecord decodes a wire record produced by EncodeRecord.
func DecodeRecord(rec []byte) (Frame, error) {
	var f Frame
	if len(rec) != RecordLen {
		return f, fmt.Errorf("bad record length %d", len(rec))
	}
	f.ID = ID(binary.BigEndian.Uint16(rec[0:2]))
	copy(f.Data[:], rec[2:])
	return f, nil
}
