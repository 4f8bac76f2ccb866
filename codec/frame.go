// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package codec

import (
	"fmt"
	"io"

	"stratumv2/config"
	"stratumv2/log"
	"stratumv2/util"

	"github.com/duggavo/serializer"
)

// Serializable writes a message payload, fields in wire order.
type Serializable interface {
	Serialize(s *serializer.Serializer) error
}

// Deserializable reads a message payload. Implementations must leave the
// receiver untouched when they return an error.
type Deserializable interface {
	Deserialize(p *ByteParser) error
}

// Frameable is a message that knows its frame header.
type Frameable interface {
	Serializable
	MessageType() MessageType
	// ChannelMessage reports whether the message is addressed to a channel_id,
	// which sets CHANNEL_MSG_BIT in the extension type.
	ChannelMessage() bool
}

// Serialize returns the payload of m without a frame header.
func Serialize(m Serializable) ([]byte, error) {
	s := NewSerializer()
	if err := m.Serialize(s); err != nil {
		return nil, err
	}
	return s.Data, nil
}

// Deserialize decodes a complete payload into a new M. Every byte of b must
// be consumed.
func Deserialize[M any, P interface {
	*M
	Deserializable
}](b []byte) (M, error) {
	var m M
	p := NewByteParser(b)
	if err := P(&m).Deserialize(p); err != nil {
		var zero M
		return zero, err
	}
	if err := p.Finish(); err != nil {
		var zero M
		return zero, err
	}
	return m, nil
}

// DecodeAs is Deserialize returning the message as a Frameable, for dispatch
// tables keyed by message type.
func DecodeAs[M Frameable, P interface {
	*M
	Deserializable
}](payload []byte) (Frameable, error) {
	m, err := Deserialize[M, P](payload)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UnknownMessageTypeError reports a message type not registered for protocol.
func UnknownMessageTypeError(protocol Protocol, t MessageType) error {
	return fmt.Errorf("%w: 0x%02x is not a %s message", ErrUnknownMessageType, uint8(t), protocol)
}

type FrameHeader struct {
	ExtensionType uint16
	MsgType       MessageType
	MsgLength     uint32
}

func (h FrameHeader) ChannelMessage() bool {
	return h.ExtensionType&config.CHANNEL_MSG_BIT != 0
}

// Extension is the extension type without the channel bit.
func (h FrameHeader) Extension() uint16 {
	return h.ExtensionType &^ config.CHANNEL_MSG_BIT
}

func (h FrameHeader) Serialize(s *serializer.Serializer) {
	s.AddUint16(h.ExtensionType)
	s.AddUint8(uint8(h.MsgType))
	s.Data = util.AppendUint24LE(s.Data, h.MsgLength)
}

func (h FrameHeader) String() string {
	return fmt.Sprintf("ext=0x%04x type=%s len=%d", h.ExtensionType, h.MsgType, h.MsgLength)
}

// HeaderFor builds the header for m carrying a payload of length n.
func HeaderFor(m Frameable, n int) (FrameHeader, error) {
	if n > config.MAX_PAYLOAD_LENGTH {
		return FrameHeader{}, fmt.Errorf("%w: %d bytes does not fit a u24", ErrPayloadTooLarge, n)
	}
	h := FrameHeader{
		ExtensionType: config.NO_EXTENSION,
		MsgType:       m.MessageType(),
		MsgLength:     uint32(n),
	}
	if m.ChannelMessage() {
		h.ExtensionType |= config.CHANNEL_MSG_BIT
	}
	return h, nil
}

// Frame serializes m and prepends the 6 byte frame header.
func Frame(m Frameable) ([]byte, error) {
	payload, err := Serialize(m)
	if err != nil {
		return nil, err
	}
	h, err := HeaderFor(m, len(payload))
	if err != nil {
		return nil, err
	}

	s := NewSerializer()
	s.Data = make([]byte, 0, config.FRAME_HEADER_SIZE+len(payload))
	h.Serialize(s)
	s.AddFixedByteArray(payload, len(payload))

	log.Netf("framed %s: %x", h, s.Data)

	return s.Data, nil
}

// WriteFrame frames m and writes it to w in a single Write call.
func WriteFrame(w io.Writer, m Frameable) (int, error) {
	b, err := Frame(m)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

func DecodeFrameHeader(b []byte) (FrameHeader, error) {
	p := NewByteParser(b)
	return readFrameHeader(p)
}

func readFrameHeader(p *ByteParser) (FrameHeader, error) {
	ext, err := p.U16()
	if err != nil {
		return FrameHeader{}, err
	}
	t, err := p.U8()
	if err != nil {
		return FrameHeader{}, err
	}
	l, err := p.Next(3)
	if err != nil {
		return FrameHeader{}, err
	}
	return FrameHeader{
		ExtensionType: ext,
		MsgType:       MessageType(t),
		MsgLength:     util.Uint24LE(l),
	}, nil
}

// SplitFrame separates one buffered frame into its header and payload. b must
// hold exactly one frame: fewer bytes than the header announces is a
// truncation, more is a deserialization error.
func SplitFrame(b []byte) (FrameHeader, []byte, error) {
	p := NewByteParser(b)
	h, err := readFrameHeader(p)
	if err != nil {
		return FrameHeader{}, nil, err
	}
	payload, err := p.Next(int(h.MsgLength))
	if err != nil {
		return FrameHeader{}, nil, err
	}
	if err := p.Finish(); err != nil {
		return FrameHeader{}, nil, err
	}
	return h, payload, nil
}
