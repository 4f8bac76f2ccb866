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

package common

import (
	"fmt"

	"stratumv2/codec"

	"github.com/duggavo/serializer"
)

// SetupConnectionSuccess is sent by the server when it accepts a connection.
type SetupConnectionSuccess[F codec.Flag[F]] struct {
	// version picked by the server from the client's range, used for the
	// lifetime of the connection
	UsedVersion uint16

	// optional features the server supports
	Flags []F
}

func NewSetupConnectionSuccess[F codec.Flag[F]](usedVersion uint16, flags []F) (SetupConnectionSuccess[F], error) {
	canonical, err := codec.CanonicalFlags(flags)
	if err != nil {
		return SetupConnectionSuccess[F]{}, err
	}
	return SetupConnectionSuccess[F]{
		UsedVersion: usedVersion,
		Flags:       canonical,
	}, nil
}

func (SetupConnectionSuccess[F]) MessageType() codec.MessageType {
	return codec.MessageTypeSetupConnectionSuccess
}

func (SetupConnectionSuccess[F]) ChannelMessage() bool {
	return false
}

func (m SetupConnectionSuccess[F]) Serialize(s *serializer.Serializer) error {
	flags, err := codec.EncodeFlags(m.Flags)
	if err != nil {
		return err
	}
	s.AddUint16(m.UsedVersion)
	s.AddUint32(flags)
	return nil
}

func (m *SetupConnectionSuccess[F]) Deserialize(p *codec.ByteParser) error {
	usedVersion, err := p.U16()
	if err != nil {
		return err
	}
	mask, err := p.U32()
	if err != nil {
		return err
	}
	flags, err := codec.DecodeFlags[F](mask)
	if err != nil {
		return err
	}
	*m = SetupConnectionSuccess[F]{
		UsedVersion: usedVersion,
		Flags:       flags,
	}
	return nil
}

func (m SetupConnectionSuccess[F]) String() string {
	return fmt.Sprintf("SetupConnection.Success{version=%d flags=%s}", m.UsedVersion, codec.FormatFlags(m.Flags))
}
