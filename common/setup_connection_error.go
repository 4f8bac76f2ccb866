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

// SetupConnectionErrorCode is the reason carried by SetupConnection.Error.
type SetupConnectionErrorCode uint8

const (
	UnsupportedFeatureFlags SetupConnectionErrorCode = iota
	UnsupportedProtocol
	ProtocolVersionMismatch
)

var setupConnectionErrorCodes = codec.CodeTable[SetupConnectionErrorCode]{
	{Code: UnsupportedFeatureFlags, Text: "unsupported-feature-flags"},
	{Code: UnsupportedProtocol, Text: "unsupported-protocol"},
	{Code: ProtocolVersionMismatch, Text: "protocol-version-mismatch"},
}

func SetupConnectionErrorCodes() codec.CodeTable[SetupConnectionErrorCode] {
	return setupConnectionErrorCodes
}

func ParseSetupConnectionErrorCode(s string) (SetupConnectionErrorCode, error) {
	return setupConnectionErrorCodes.Parse(s)
}

func (c SetupConnectionErrorCode) String() string {
	s, err := setupConnectionErrorCodes.Text(c)
	if err != nil {
		return fmt.Sprintf("SetupConnectionErrorCode(%d)", uint8(c))
	}
	return s
}

func (c SetupConnectionErrorCode) MarshalText() ([]byte, error) {
	s, err := setupConnectionErrorCodes.Text(c)
	return []byte(s), err
}

func (c *SetupConnectionErrorCode) UnmarshalText(b []byte) error {
	v, err := setupConnectionErrorCodes.Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// SetupConnectionError is sent by the server when it rejects a connection,
// right before closing it. With UnsupportedFeatureFlags, Flags lists every
// requested feature the server does NOT support.
type SetupConnectionError[F codec.Flag[F]] struct {
	Flags     []F
	ErrorCode SetupConnectionErrorCode
}

func NewSetupConnectionError[F codec.Flag[F]](flags []F, errorCode SetupConnectionErrorCode) (SetupConnectionError[F], error) {
	if _, err := setupConnectionErrorCodes.Text(errorCode); err != nil {
		return SetupConnectionError[F]{}, err
	}
	canonical, err := codec.CanonicalFlags(flags)
	if err != nil {
		return SetupConnectionError[F]{}, err
	}
	if len(canonical) == 0 && errorCode == UnsupportedFeatureFlags {
		return SetupConnectionError[F]{}, fmt.Errorf("%w: a full set of unsupported flags MUST be returned to the client", codec.ErrUnsupportedFlagsRequirement)
	}
	return SetupConnectionError[F]{
		Flags:     canonical,
		ErrorCode: errorCode,
	}, nil
}

func (SetupConnectionError[F]) MessageType() codec.MessageType {
	return codec.MessageTypeSetupConnectionError
}

func (SetupConnectionError[F]) ChannelMessage() bool {
	return false
}

func (m SetupConnectionError[F]) Serialize(s *serializer.Serializer) error {
	flags, err := codec.EncodeFlags(m.Flags)
	if err != nil {
		return err
	}
	text, err := setupConnectionErrorCodes.Text(m.ErrorCode)
	if err != nil {
		return err
	}
	code, err := codec.NewSTR0_255(text)
	if err != nil {
		return err
	}

	s.AddUint32(flags)
	code.Serialize(s)
	return nil
}

func (m *SetupConnectionError[F]) Deserialize(p *codec.ByteParser) error {
	mask, err := p.U32()
	if err != nil {
		return err
	}
	code, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}

	flags, err := codec.DecodeFlags[F](mask)
	if err != nil {
		return err
	}
	errorCode, err := setupConnectionErrorCodes.Parse(code.String())
	if err != nil {
		return err
	}

	decoded, err := NewSetupConnectionError(flags, errorCode)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

func (m SetupConnectionError[F]) String() string {
	return fmt.Sprintf("SetupConnection.Error{code=%s flags=%s}", m.ErrorCode, codec.FormatFlags(m.Flags))
}
