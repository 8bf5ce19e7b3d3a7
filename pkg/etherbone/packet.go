package etherbone

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire format constants.
const (
	// Magic is the Etherbone packet signature.
	Magic = 0x4E6F

	// Version is the protocol version this package speaks.
	Version = 1

	// WordSize is the bus address and data width in bytes.
	WordSize = 4

	// headerSize is the packet header including padding.
	headerSize = 8

	// recordHeaderSize is the per-record header.
	recordHeaderSize = 4

	// PacketSize is the fixed wire size of a single-operation packet.
	PacketSize = headerSize + recordHeaderSize + 2*WordSize
)

// fullWordEnable selects all four byte lanes of the data word.
const fullWordEnable = 0x0F

// ErrProtocol indicates a structurally invalid packet: wrong magic or
// version, short datagram, or a record that does not carry the expected
// operation.
var ErrProtocol = errors.New("etherbone protocol error")

// Record is the single operation carried by a packet. WCount/RCount are
// operation counts; this implementation always uses exactly one of them
// set to 1. Base is the base (or return) address, Word the data word
// for writes and read replies, or the target address for read requests.
type Record struct {
	ByteEnable uint8
	WCount     uint8
	RCount     uint8
	Base       uint32
	Word       uint32
}

// Packet is one Etherbone packet holding a single record.
type Packet struct {
	Version  uint8
	AddrSize uint8
	PortSize uint8
	Record   Record
}

// NewReadRequest builds a packet requesting one register read.
// The word slot carries the address to read; the base slot is the
// return address, left zero as the LiteX tools do.
func NewReadRequest(addr uint32) Packet {
	return Packet{
		Version:  Version,
		AddrSize: WordSize,
		PortSize: WordSize,
		Record: Record{
			ByteEnable: fullWordEnable,
			RCount:     1,
			Word:       addr,
		},
	}
}

// NewWriteRequest builds a packet writing one full word.
func NewWriteRequest(addr, value uint32) Packet {
	return Packet{
		Version:  Version,
		AddrSize: WordSize,
		PortSize: WordSize,
		Record: Record{
			ByteEnable: fullWordEnable,
			WCount:     1,
			Base:       addr,
			Word:       value,
		},
	}
}

// NewReadReply builds the packet a target sends back for a read:
// one write of the register value towards the requester's return
// address. Exported for test doubles simulating a target.
func NewReadReply(value uint32) Packet {
	return Packet{
		Version:  Version,
		AddrSize: WordSize,
		PortSize: WordSize,
		Record: Record{
			ByteEnable: fullWordEnable,
			WCount:     1,
			Word:       value,
		},
	}
}

// Encode renders the packet into its fixed 20-byte wire form.
func (p Packet) Encode() []byte {
	buf := make([]byte, PacketSize)
	binary.BigEndian.PutUint16(buf[0:2], Magic)
	buf[2] = p.Version << 4
	buf[3] = p.AddrSize<<4 | p.PortSize&0x0F
	// buf[4:8] is header padding, left zero
	buf[8] = 0 // record flags unused for plain word access
	buf[9] = p.Record.ByteEnable
	buf[10] = p.Record.WCount
	buf[11] = p.Record.RCount
	binary.BigEndian.PutUint32(buf[12:16], p.Record.Base)
	binary.BigEndian.PutUint32(buf[16:20], p.Record.Word)
	return buf
}

// Decode parses and validates a datagram. It fails with an error
// wrapping ErrProtocol when the packet is too short, the magic or
// version is wrong, or the address/port widths are not 32 bit.
func Decode(data []byte) (Packet, error) {
	if len(data) < PacketSize {
		return Packet{}, fmt.Errorf("%w: short packet (%d bytes)", ErrProtocol, len(data))
	}
	if m := binary.BigEndian.Uint16(data[0:2]); m != Magic {
		return Packet{}, fmt.Errorf("%w: bad magic 0x%04x", ErrProtocol, m)
	}
	p := Packet{
		Version:  data[2] >> 4,
		AddrSize: data[3] >> 4,
		PortSize: data[3] & 0x0F,
	}
	if p.Version != Version {
		return Packet{}, fmt.Errorf("%w: unsupported version %d", ErrProtocol, p.Version)
	}
	if p.AddrSize != WordSize || p.PortSize != WordSize {
		return Packet{}, fmt.Errorf("%w: unsupported bus width addr=%d port=%d",
			ErrProtocol, p.AddrSize, p.PortSize)
	}
	p.Record = Record{
		ByteEnable: data[9],
		WCount:     data[10],
		RCount:     data[11],
		Base:       binary.BigEndian.Uint32(data[12:16]),
		Word:       binary.BigEndian.Uint32(data[16:20]),
	}
	return p, nil
}

// ReadReplyValue extracts the register value from a read reply. The
// reply must carry exactly one write operation.
func ReadReplyValue(p Packet) (uint32, error) {
	if p.Record.WCount != 1 {
		return 0, fmt.Errorf("%w: reply carries no data word (wcount=%d rcount=%d)",
			ErrProtocol, p.Record.WCount, p.Record.RCount)
	}
	return p.Record.Word, nil
}
