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
	"fmt"
	"math"

	"stratumv2/config"

	"github.com/duggavo/serializer"
)

// ByteParser walks a payload front to back on top of a little endian
// serializer.Deserializer. A read that runs short fails on its own with
// ErrUnexpectedEndOfInput and consumes nothing.
type ByteParser struct {
	d    serializer.Deserializer
	size int
}

func NewByteParser(data []byte) *ByteParser {
	return &ByteParser{
		d: serializer.Deserializer{
			Data:   data,
			Endian: binary.LittleEndian,
		},
		size: len(data),
	}
}

// check turns the deserializer's error from a read of n bytes into
// ErrUnexpectedEndOfInput and clears it, so the parser stays usable.
func (p *ByteParser) check(n int) error {
	if p.d.Error == nil {
		return nil
	}
	p.d.Error = nil
	return p.short(n)
}

// Next returns the next n bytes and advances.
func (p *ByteParser) Next(n int) ([]byte, error) {
	if n < 0 || n > p.Remaining() {
		return nil, p.short(n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	b := p.d.ReadFixedByteArray(n)
	if err := p.check(n); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *ByteParser) Offset() int {
	return p.size - len(p.d.Data)
}

func (p *ByteParser) Remaining() int {
	return len(p.d.Data)
}

// Finish fails if any bytes were left unread.
func (p *ByteParser) Finish() error {
	if p.Remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrDeserialization, p.Remaining())
	}
	return nil
}

func (p *ByteParser) U8() (uint8, error) {
	if p.Remaining() < 1 {
		return 0, p.short(1)
	}
	v := p.d.ReadUint8()
	return v, p.check(1)
}

func (p *ByteParser) U16() (uint16, error) {
	if p.Remaining() < 2 {
		return 0, p.short(2)
	}
	v := p.d.ReadUint16()
	return v, p.check(2)
}

func (p *ByteParser) U32() (uint32, error) {
	if p.Remaining() < 4 {
		return 0, p.short(4)
	}
	v := p.d.ReadUint32()
	return v, p.check(4)
}

func (p *ByteParser) short(n int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEndOfInput,
		n, p.Offset(), p.Remaining())
}

func (p *ByteParser) F32() (float32, error) {
	n, err := p.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(n), nil
}

func (p *ByteParser) U256() (U256, error) {
	b, err := p.Next(config.U256_LENGTH)
	if err != nil {
		return U256{}, err
	}
	return U256(b), nil
}
