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

package mining

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"stratumv2/codec"
)

func testTarget(b byte) codec.U256 {
	var u codec.U256
	for i := range u {
		u[i] = b
	}
	return u
}

func TestOpenStandardMiningChannel(t *testing.T) {
	m, err := NewOpenStandardMiningChannel(7, "account.worker", 13.5e12, testTarget(0xff))
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Serialize(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 4+1+14+4+32 {
		t.Fatalf("length %d", len(b))
	}
	if b[0] != 7 || b[4] != 14 {
		t.Fatalf("got %x", b[:5])
	}

	d, err := codec.Deserialize[OpenStandardMiningChannel](b)
	if err != nil {
		t.Fatal(err)
	}
	if d != m {
		t.Fatalf("decoded %+v, want %+v", d, m)
	}

	for i := 0; i < len(b); i++ {
		if _, err := codec.Deserialize[OpenStandardMiningChannel](b[:i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("prefix %d: %v", i, err)
		}
	}
}

func TestOpenStandardMiningChannelHashRate(t *testing.T) {
	for _, rate := range []float32{float32(math.NaN()), float32(math.Inf(1)), -1} {
		if _, err := NewOpenStandardMiningChannel(1, "u", rate, codec.U256{}); !errors.Is(err, codec.ErrRequirement) {
			t.Fatalf("hash rate %v accepted: %v", rate, err)
		}
	}

	m, err := NewOpenStandardMiningChannel(1, "u", 0, codec.U256{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Serialize(m)
	if err != nil {
		t.Fatal(err)
	}
	// a peer may send any f32, including NaN and negative values
	for _, rate := range []float32{float32(math.NaN()), -2} {
		bits := math.Float32bits(rate)
		b[6], b[7], b[8], b[9] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
		d, err := codec.Deserialize[OpenStandardMiningChannel](b)
		if err != nil {
			t.Fatalf("hash rate %v not decoded: %v", rate, err)
		}
		if math.Float32bits(d.NominalHashRate) != bits {
			t.Fatalf("hash rate %v decoded as %v", rate, d.NominalHashRate)
		}
	}

	if _, err := NewOpenStandardMiningChannel(1, strings.Repeat("u", 256), 1, codec.U256{}); !errors.Is(err, codec.ErrBoundViolation) {
		t.Fatalf("long user identity: %v", err)
	}
}

func TestOpenStandardMiningChannelSuccess(t *testing.T) {
	m, err := NewOpenStandardMiningChannelSuccess(7, 42, testTarget(0x0f), []byte{0xde, 0xad}, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Serialize(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 4+4+32+1+2+4 {
		t.Fatalf("length %d", len(b))
	}
	if b[40] != 2 || b[41] != 0xde || b[43] != 3 {
		t.Fatalf("got %x", b[40:])
	}

	d, err := codec.Deserialize[OpenStandardMiningChannelSuccess](b)
	if err != nil {
		t.Fatal(err)
	}
	if d != m {
		t.Fatalf("decoded %+v, want %+v", d, m)
	}

	for i := 0; i < len(b); i++ {
		if _, err := codec.Deserialize[OpenStandardMiningChannelSuccess](b[:i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("prefix %d: %v", i, err)
		}
	}

	if _, err := NewOpenStandardMiningChannelSuccess(1, 1, codec.U256{}, make([]byte, 33), 0); !errors.Is(err, codec.ErrBoundViolation) {
		t.Fatalf("33 byte extranonce prefix: %v", err)
	}
}

func TestSetTarget(t *testing.T) {
	m := SetTarget{ChannelID: 0x01020304, MaximumTarget: testTarget(0x11)}
	b, err := codec.Frame(m)
	if err != nil {
		t.Fatal(err)
	}
	header := []byte{0x00, 0x80, 0x21, 36, 0x00, 0x00}
	if !bytes.Equal(b[:6], header) {
		t.Fatalf("header %x", b[:6])
	}
	if b[6] != 0x04 || b[9] != 0x01 {
		t.Fatalf("channel id %x", b[6:10])
	}

	d, err := codec.Deserialize[SetTarget](b[6:])
	if err != nil {
		t.Fatal(err)
	}
	if d != m {
		t.Fatalf("decoded %+v", d)
	}

	for i := 0; i < len(b)-6; i++ {
		if _, err := codec.Deserialize[SetTarget](b[6 : 6+i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("prefix %d: %v", i, err)
		}
	}
}

func TestOpenMiningChannelError(t *testing.T) {
	std, err := NewOpenStandardMiningChannelError(5, UnknownUser)
	if err != nil {
		t.Fatal(err)
	}
	ext, err := NewOpenExtendedMiningChannelError(5, UnknownUser)
	if err != nil {
		t.Fatal(err)
	}
	if std.MessageType() != codec.MessageTypeOpenStandardMiningChannelError || ext.MessageType() != codec.MessageTypeOpenExtendedMiningChannelError {
		t.Fatalf("types %s %s", std.MessageType(), ext.MessageType())
	}

	sb, err := codec.Serialize(std)
	if err != nil {
		t.Fatal(err)
	}
	eb, err := codec.Serialize(ext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sb, eb) {
		t.Fatal("standard and extended payloads differ")
	}
	expected := append([]byte{5, 0, 0, 0, 12}, "unknown-user"...)
	if !bytes.Equal(sb, expected) {
		t.Fatalf("expected %x, got %x", expected, sb)
	}

	sf, _ := codec.Frame(std)
	ef, _ := codec.Frame(ext)
	if sf[2] != 0x12 || ef[2] != 0x15 {
		t.Fatalf("frame types %x %x", sf[2], ef[2])
	}

	d, err := codec.Deserialize[OpenExtendedMiningChannelError](eb)
	if err != nil {
		t.Fatal(err)
	}
	if d != ext {
		t.Fatalf("decoded %s", d)
	}

	for i := 0; i < len(sb); i++ {
		if _, err := codec.Deserialize[OpenStandardMiningChannelError](sb[:i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("standard prefix %d: %v", i, err)
		}
		if _, err := codec.Deserialize[OpenExtendedMiningChannelError](eb[:i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("extended prefix %d: %v", i, err)
		}
	}

	bad := append([]byte{5, 0, 0, 0, 3}, "bad"...)
	if _, err := codec.Deserialize[OpenStandardMiningChannelError](bad); !errors.Is(err, codec.ErrUnknownErrorCode) {
		t.Fatalf("unknown code: %v", err)
	}
	if _, err := NewOpenStandardMiningChannelError(1, OpenMiningChannelErrorCode(7)); !errors.Is(err, codec.ErrUnknownErrorCode) {
		t.Fatalf("unknown variant: %v", err)
	}
}

func TestOpenMiningChannelErrorCodes(t *testing.T) {
	if err := OpenMiningChannelErrorCodes().Validate(32); err != nil {
		t.Fatal(err)
	}
	c, err := ParseOpenMiningChannelErrorCode("max-target-out-of-range")
	if err != nil {
		t.Fatal(err)
	}
	if c != MaxTargetOutOfRange {
		t.Fatalf("parsed %s", c)
	}
}
