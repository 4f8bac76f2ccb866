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
	"bytes"
	"errors"
	"testing"

	"github.com/duggavo/serializer"
)

type rawMessage struct {
	t       MessageType
	channel bool
	payload []byte
}

func (m rawMessage) MessageType() MessageType { return m.t }
func (m rawMessage) ChannelMessage() bool     { return m.channel }

func (m rawMessage) Serialize(s *serializer.Serializer) error {
	s.AddFixedByteArray(m.payload, len(m.payload))
	return nil
}

func TestFrame(t *testing.T) {
	m := rawMessage{t: MessageTypeSetupConnectionError, payload: []byte{0xde, 0xad, 0xbe, 0xef}}

	b, err := Frame(m)
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x00, 0x00, 0x03, 0x04, 0x00, 0x00, 0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(b, expected) {
		t.Fatalf("expected %x, got %x", expected, b)
	}

	h, payload, err := SplitFrame(b)
	if err != nil {
		t.Fatal(err)
	}
	if h.ChannelMessage() || h.MsgType != MessageTypeSetupConnectionError || h.MsgLength != 4 {
		t.Fatalf("unexpected header %s", h)
	}
	if !bytes.Equal(payload, m.payload) {
		t.Fatalf("payload %x", payload)
	}
}

func TestFrameChannelBit(t *testing.T) {
	m := rawMessage{t: MessageTypeSetTarget, channel: true, payload: []byte{1}}
	b, err := Frame(m)
	if err != nil {
		t.Fatal(err)
	}
	if b[0] != 0x00 || b[1] != 0x80 || b[2] != 0x21 {
		t.Fatalf("header %x", b[:6])
	}

	h, err := DecodeFrameHeader(b)
	if err != nil {
		t.Fatal(err)
	}
	if !h.ChannelMessage() || h.Extension() != 0 {
		t.Fatalf("header %s", h)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	b, err := Frame(rawMessage{t: MessageTypeSetupConnectionSuccess})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte{0, 0, 1, 0, 0, 0}) {
		t.Fatalf("got %x", b)
	}
}

func TestHeaderForPayloadTooLarge(t *testing.T) {
	m := rawMessage{t: MessageTypeSetupConnection}
	if _, err := HeaderFor(m, 0xffffff); err != nil {
		t.Fatalf("largest payload rejected: %v", err)
	}
	_, err := HeaderFor(m, 0x1000000)
	if !errors.Is(err, ErrPayloadTooLarge) || !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected payload too large, got %v", err)
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	m := rawMessage{t: MessageTypeSetupConnection, payload: []byte{1, 2, 3}}
	n, err := WriteFrame(&buf, m)
	if err != nil {
		t.Fatal(err)
	}
	if n != 9 || buf.Len() != 9 {
		t.Fatalf("wrote %d bytes", n)
	}
	if buf.Bytes()[3] != 3 {
		t.Fatalf("length byte %x", buf.Bytes()[3])
	}
}

func TestSplitFrameErrors(t *testing.T) {
	b, err := Frame(rawMessage{t: MessageTypeSetupConnection, payload: []byte{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(b); i++ {
		if _, _, err := SplitFrame(b[:i]); !errors.Is(err, ErrUnexpectedEndOfInput) {
			t.Fatalf("prefix of %d bytes: %v", i, err)
		}
	}

	if _, _, err := SplitFrame(append(b, 0)); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("trailing byte: %v", err)
	}
}
