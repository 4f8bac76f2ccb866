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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"stratumv2/config"

	"github.com/duggavo/serializer"
)

// NewSerializer returns a serializer using the protocol byte order.
func NewSerializer() *serializer.Serializer {
	return &serializer.Serializer{
		Endian: binary.LittleEndian,
	}
}

// U256 is a raw 32-byte value, usually a hash or a target. No length prefix.
type U256 [config.U256_LENGTH]byte

func (u U256) Serialize(s *serializer.Serializer) {
	s.AddFixedByteArray(u[:], config.U256_LENGTH)
}

func (u U256) String() string {
	return hex.EncodeToString(u[:])
}

func (u U256) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// STR0_32 is a UTF-8 string of at most 32 bytes, <1 byte length + bytes> on the wire.
type STR0_32 struct {
	value string
}

func NewSTR0_32(value string) (STR0_32, error) {
	if err := checkBound("STR0_32", len(value), config.MAX_LEN_0_32); err != nil {
		return STR0_32{}, err
	}
	return STR0_32{value}, nil
}

func DeserializeSTR0_32(p *ByteParser) (STR0_32, error) {
	s, err := readString(p)
	if err != nil {
		return STR0_32{}, err
	}
	return NewSTR0_32(s)
}

func (s STR0_32) String() string               { return s.value }
func (s STR0_32) Len() int                     { return len(s.value) }
func (s STR0_32) Equal(o STR0_32) bool         { return s.value == o.value }
func (s STR0_32) MarshalText() ([]byte, error) { return []byte(s.value), nil }

func (s STR0_32) Serialize(ser *serializer.Serializer) {
	addPrefixed(ser, s.value)
}

// STR0_255 is a UTF-8 string of at most 255 bytes, <1 byte length + bytes> on the wire.
type STR0_255 struct {
	value string
}

func NewSTR0_255(value string) (STR0_255, error) {
	if err := checkBound("STR0_255", len(value), config.MAX_LEN_0_255); err != nil {
		return STR0_255{}, err
	}
	return STR0_255{value}, nil
}

func DeserializeSTR0_255(p *ByteParser) (STR0_255, error) {
	s, err := readString(p)
	if err != nil {
		return STR0_255{}, err
	}
	return NewSTR0_255(s)
}

func (s STR0_255) String() string               { return s.value }
func (s STR0_255) Len() int                     { return len(s.value) }
func (s STR0_255) Equal(o STR0_255) bool        { return s.value == o.value }
func (s STR0_255) MarshalText() ([]byte, error) { return []byte(s.value), nil }

func (s STR0_255) Serialize(ser *serializer.Serializer) {
	addPrefixed(ser, s.value)
}

// B0_32 is an opaque byte buffer of at most 32 bytes, no UTF-8 requirement.
type B0_32 struct {
	value string
}

func NewB0_32(value []byte) (B0_32, error) {
	if err := checkBound("B0_32", len(value), config.MAX_LEN_0_32); err != nil {
		return B0_32{}, err
	}
	return B0_32{string(value)}, nil
}

func DeserializeB0_32(p *ByteParser) (B0_32, error) {
	b, err := readPrefixed(p)
	if err != nil {
		return B0_32{}, err
	}
	return NewB0_32(b)
}

func (b B0_32) Bytes() []byte                { return []byte(b.value) }
func (b B0_32) Len() int                     { return len(b.value) }
func (b B0_32) Equal(o B0_32) bool           { return b.value == o.value }
func (b B0_32) String() string               { return hex.EncodeToString([]byte(b.value)) }
func (b B0_32) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b B0_32) Serialize(ser *serializer.Serializer) {
	addPrefixed(ser, b.value)
}

// B0_255 is an opaque byte buffer of at most 255 bytes.
type B0_255 struct {
	value string
}

func NewB0_255(value []byte) (B0_255, error) {
	if err := checkBound("B0_255", len(value), config.MAX_LEN_0_255); err != nil {
		return B0_255{}, err
	}
	return B0_255{string(value)}, nil
}

func DeserializeB0_255(p *ByteParser) (B0_255, error) {
	b, err := readPrefixed(p)
	if err != nil {
		return B0_255{}, err
	}
	return NewB0_255(b)
}

func (b B0_255) Bytes() []byte                { return []byte(b.value) }
func (b B0_255) Len() int                     { return len(b.value) }
func (b B0_255) Equal(o B0_255) bool          { return b.value == o.value }
func (b B0_255) String() string               { return hex.EncodeToString([]byte(b.value)) }
func (b B0_255) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b B0_255) Serialize(ser *serializer.Serializer) {
	addPrefixed(ser, b.value)
}

func checkBound(name string, n, limit int) error {
	if n > limit {
		return fmt.Errorf("%w: %s cannot be longer than %d bytes, got %d", ErrBoundViolation, name, limit, n)
	}
	return nil
}

// callers have already checked len(v) <= 255
func addPrefixed(s *serializer.Serializer, v string) {
	s.AddUint8(uint8(len(v)))
	s.AddFixedByteArray([]byte(v), len(v))
}

func readPrefixed(p *ByteParser) ([]byte, error) {
	n, err := p.U8()
	if err != nil {
		return nil, err
	}
	return p.Next(int(n))
}

func readString(p *ByteParser) (string, error) {
	b, err := readPrefixed(p)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w at offset %d", ErrUtf8Decode, p.Offset()-len(b))
	}
	return string(b), nil
}
