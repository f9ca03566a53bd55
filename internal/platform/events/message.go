package events

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the length of a vendor frame header.
const HeaderSize = 4

var (
	// ErrShortFrame is returned when a frame is smaller than its header.
	ErrShortFrame = errors.New("events: frame shorter than header")

	// ErrLengthMismatch is returned when the header length disagrees with
	// the frame size.
	ErrLengthMismatch = errors.New("events: frame length mismatch")
)

// Header is the vendor frame header.
type Header struct {
	// Length is the total frame length in bytes, header included.
	Length uint16
	ID     uint8
	Info   uint8
}

// Message is one vendor driver notification.
type Message struct {
	Header Header
	Body   []byte
}

// NewMessage builds a message with a consistent Length.
func NewMessage(id uint8, body []byte) Message {
	return Message{
		Header: Header{Length: uint16(HeaderSize + len(body)), ID: id},
		Body:   body,
	}
}

// ParseMessage decodes a raw frame. Bytes past Header.Length are ignored.
func ParseMessage(raw []byte) (Message, error) {
	if len(raw) < HeaderSize {
		return Message{}, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(raw))
	}

	h := Header{
		Length: binary.LittleEndian.Uint16(raw[0:2]),
		ID:     raw[2],
		Info:   raw[3],
	}
	if int(h.Length) < HeaderSize || int(h.Length) > len(raw) {
		return Message{}, fmt.Errorf("%w: header says %d, frame has %d", ErrLengthMismatch, h.Length, len(raw))
	}

	body := make([]byte, int(h.Length)-HeaderSize)
	copy(body, raw[HeaderSize:h.Length])

	return Message{Header: h, Body: body}, nil
}

// SalvageMessage decodes what it can of a frame ParseMessage rejected.
// With a full header the ID and Info are kept and the body is whatever
// follows, up to the header length; Length is set to the bytes recovered.
// Without a full header it returns the zero Message, which has no header
// and always translates to Unrecognized.
func SalvageMessage(raw []byte) Message {
	if len(raw) < HeaderSize {
		return Message{}
	}

	end := int(binary.LittleEndian.Uint16(raw[0:2]))
	if end < HeaderSize || end > len(raw) {
		end = len(raw)
	}

	body := make([]byte, end-HeaderSize)
	copy(body, raw[HeaderSize:end])

	return Message{
		Header: Header{Length: uint16(end), ID: raw[2], Info: raw[3]},
		Body:   body,
	}
}

// HasHeader reports whether m carries a complete header.
func (m Message) HasHeader() bool {
	return int(m.Header.Length) >= HeaderSize
}

// Bytes encodes m back to its wire form.
func (m Message) Bytes() []byte {
	out := make([]byte, HeaderSize+len(m.Body))
	binary.LittleEndian.PutUint16(out[0:2], m.Header.Length)
	out[2] = m.Header.ID
	out[3] = m.Header.Info
	copy(out[HeaderSize:], m.Body)
	return out
}
