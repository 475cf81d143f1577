// Package bus defines the field-bus frame format and command set.
package bus

// A frame is the fixed-size message unit exchanged over the field bus.
// Every frame carries exactly 8 payload bytes plus a 16-bit identifier
// naming the logical receiver. Multi-byte payload fields are big-endian.
//
// Request:   [0]=command [1..2]=reply-to id [3..6]=argument [7]=0
// Response:  [0]=0x08 [1..2]=sender id [3]=echoed command [4..7]=result
// Reading:   [0]=0x7E [1]=channel-pair tag [2..3]=ch1 [4..5]=ch2 [6..7]=0
// Heartbeat: [0]=0x08 [1..2]=sender id [3]=0x7F [4..7]=tick counter
//
// Producer: any module or controller on the bus
// Consumer: the module addressed by the identifier
