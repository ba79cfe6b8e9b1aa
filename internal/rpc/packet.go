// Package rpc implements the libvirt wire packet format and the
// request/response engine that multiplexes concurrent calls over one
// connection by serial number.
package rpc

import (
	"encoding/binary"
	"io"
)

// MsgType is the packet's `type` header field.
type MsgType uint32

const (
	MsgCall MsgType = iota
	MsgReply
	MsgMessage
	MsgStream
)

func (t MsgType) String() string {
	switch t {
	case MsgCall:
		return "Call"
	case MsgReply:
		return "Reply"
	case MsgMessage:
		return "Message"
	case MsgStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// Status is the packet's `status` header field.
type Status uint32

const (
	StatusOK Status = iota
	StatusError
	StatusContinue
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "Ok"
	case StatusError:
		return "Error"
	case StatusContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// HeaderLength is the fixed size in bytes of a packet header, which follows
// the 4-byte frame-length prefix and precedes the payload.
const HeaderLength = 24

// LengthPrefixLength is the size of the frame's own length prefix.
const LengthPrefixLength = 4

// MaxFrameLength is the largest total frame size (length prefix + header +
// payload) this engine will read or write. A peer that announces a longer
// frame is treated as having sent a malformed message.
const MaxFrameLength = 4 * 1024 * 1024

// Header is the 24-byte fixed header every libvirt RPC packet carries
// ahead of its payload.
type Header struct {
	Program   uint32
	Version   uint32
	Procedure uint32
	Type      MsgType
	Serial    int32
	Status    Status
}

// Packet is one complete wire unit: header plus an opaque payload already
// encoded (or awaiting decode) by the caller's codec.
type Packet struct {
	Header  Header
	Payload []byte
}

// EncodeHeader writes the 24-byte header in program/version/procedure/
// type/serial/status order, all big-endian.
func EncodeHeader(w io.Writer, h Header) error {
	var buf [HeaderLength]byte
	binary.BigEndian.PutUint32(buf[0:4], h.Program)
	binary.BigEndian.PutUint32(buf[4:8], h.Version)
	binary.BigEndian.PutUint32(buf[8:12], h.Procedure)
	binary.BigEndian.PutUint32(buf[12:16], uint32(h.Type))
	binary.BigEndian.PutUint32(buf[16:20], uint32(h.Serial))
	binary.BigEndian.PutUint32(buf[20:24], uint32(h.Status))
	_, err := w.Write(buf[:])
	return err
}

// DecodeHeader reads a 24-byte header from exactly those 24 bytes.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderLength {
		return Header{}, BadHeaderLength(len(buf))
	}
	h := Header{
		Program:   binary.BigEndian.Uint32(buf[0:4]),
		Version:   binary.BigEndian.Uint32(buf[4:8]),
		Procedure: binary.BigEndian.Uint32(buf[8:12]),
		Type:      MsgType(binary.BigEndian.Uint32(buf[12:16])),
		Serial:    int32(binary.BigEndian.Uint32(buf[16:20])),
		Status:    Status(binary.BigEndian.Uint32(buf[20:24])),
	}
	if h.Type > MsgStream {
		return Header{}, UnknownMsgType(uint32(h.Type))
	}
	if h.Status > StatusContinue {
		return Header{}, UnknownStatus(uint32(h.Status))
	}
	return h, nil
}

// EncodeFrame serializes a packet into one complete wire frame: the 4-byte
// big-endian total length (including itself), the 24-byte header, and the
// raw payload.
func EncodeFrame(p Packet) ([]byte, error) {
	total := LengthPrefixLength + HeaderLength + len(p.Payload)
	if total > MaxFrameLength {
		return nil, FrameTooLarge(total, MaxFrameLength)
	}

	buf := make([]byte, total)
	binary.BigEndian.PutUint32(buf[0:4], uint32(total))
	if err := EncodeHeader(sliceWriter{buf[4 : 4+HeaderLength]}, p.Header); err != nil {
		return nil, err
	}
	copy(buf[4+HeaderLength:], p.Payload)
	return buf, nil
}

// DecodeFrame parses a complete frame (as returned by a transport's Recv,
// length prefix included) into a Packet.
func DecodeFrame(frame []byte) (Packet, error) {
	if len(frame) < LengthPrefixLength+HeaderLength {
		return Packet{}, FrameTooShort(len(frame))
	}
	declared := binary.BigEndian.Uint32(frame[0:4])
	if int(declared) != len(frame) {
		return Packet{}, FrameLengthMismatch(int(declared), len(frame))
	}
	header, err := DecodeHeader(frame[4 : 4+HeaderLength])
	if err != nil {
		return Packet{}, err
	}
	payload := make([]byte, len(frame)-4-HeaderLength)
	copy(payload, frame[4+HeaderLength:])
	return Packet{Header: header, Payload: payload}, nil
}

// sliceWriter adapts a fixed-size byte slice to io.Writer without an extra
// allocation, for writing the header directly into a pre-sized frame buffer.
type sliceWriter struct {
	buf []byte
}

func (s sliceWriter) Write(p []byte) (int, error) {
	n := copy(s.buf, p)
	return n, nil
}
