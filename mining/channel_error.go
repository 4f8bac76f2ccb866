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
	"fmt"

	"stratumv2/codec"

	"github.com/duggavo/serializer"
)

// OpenMiningChannelErrorCode is the reason a channel could not be opened.
type OpenMiningChannelErrorCode uint8

const (
	UnknownUser OpenMiningChannelErrorCode = iota
	MaxTargetOutOfRange
)

var openMiningChannelErrorCodes = codec.CodeTable[OpenMiningChannelErrorCode]{
	{Code: UnknownUser, Text: "unknown-user"},
	{Code: MaxTargetOutOfRange, Text: "max-target-out-of-range"},
}

func OpenMiningChannelErrorCodes() codec.CodeTable[OpenMiningChannelErrorCode] {
	return openMiningChannelErrorCodes
}

func ParseOpenMiningChannelErrorCode(s string) (OpenMiningChannelErrorCode, error) {
	return openMiningChannelErrorCodes.Parse(s)
}

func (c OpenMiningChannelErrorCode) String() string {
	s, err := openMiningChannelErrorCodes.Text(c)
	if err != nil {
		return fmt.Sprintf("OpenMiningChannelErrorCode(%d)", uint8(c))
	}
	return s
}

func (c OpenMiningChannelErrorCode) MarshalText() ([]byte, error) {
	s, err := openMiningChannelErrorCodes.Text(c)
	return []byte(s), err
}

func (c *OpenMiningChannelErrorCode) UnmarshalText(b []byte) error {
	v, err := openMiningChannelErrorCodes.Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ChannelKind selects the message type of an OpenMiningChannelError.
type ChannelKind interface {
	ErrorMessageType() codec.MessageType
}

type StandardChannel struct{}

func (StandardChannel) ErrorMessageType() codec.MessageType {
	return codec.MessageTypeOpenStandardMiningChannelError
}

type ExtendedChannel struct{}

func (ExtendedChannel) ErrorMessageType() codec.MessageType {
	return codec.MessageTypeOpenExtendedMiningChannelError
}

// OpenMiningChannelError is the server's refusal to open a standard or
// extended channel. Both kinds share the payload layout and differ only by
// message type.
type OpenMiningChannelError[K ChannelKind] struct {
	RequestID uint32
	ErrorCode OpenMiningChannelErrorCode
}

type OpenStandardMiningChannelError = OpenMiningChannelError[StandardChannel]
type OpenExtendedMiningChannelError = OpenMiningChannelError[ExtendedChannel]

func NewOpenStandardMiningChannelError(requestID uint32, errorCode OpenMiningChannelErrorCode) (OpenStandardMiningChannelError, error) {
	return newOpenMiningChannelError[StandardChannel](requestID, errorCode)
}

func NewOpenExtendedMiningChannelError(requestID uint32, errorCode OpenMiningChannelErrorCode) (OpenExtendedMiningChannelError, error) {
	return newOpenMiningChannelError[ExtendedChannel](requestID, errorCode)
}

func newOpenMiningChannelError[K ChannelKind](requestID uint32, errorCode OpenMiningChannelErrorCode) (OpenMiningChannelError[K], error) {
	if _, err := openMiningChannelErrorCodes.Text(errorCode); err != nil {
		return OpenMiningChannelError[K]{}, err
	}
	return OpenMiningChannelError[K]{
		RequestID: requestID,
		ErrorCode: errorCode,
	}, nil
}

func (OpenMiningChannelError[K]) MessageType() codec.MessageType {
	var kind K
	return kind.ErrorMessageType()
}

func (OpenMiningChannelError[K]) ChannelMessage() bool {
	return false
}

func (m OpenMiningChannelError[K]) Serialize(s *serializer.Serializer) error {
	text, err := openMiningChannelErrorCodes.Text(m.ErrorCode)
	if err != nil {
		return err
	}
	code, err := codec.NewSTR0_32(text)
	if err != nil {
		return err
	}
	s.AddUint32(m.RequestID)
	code.Serialize(s)
	return nil
}

func (m *OpenMiningChannelError[K]) Deserialize(p *codec.ByteParser) error {
	requestID, err := p.U32()
	if err != nil {
		return err
	}
	code, err := codec.DeserializeSTR0_32(p)
	if err != nil {
		return err
	}
	errorCode, err := openMiningChannelErrorCodes.Parse(code.String())
	if err != nil {
		return err
	}
	*m = OpenMiningChannelError[K]{
		RequestID: requestID,
		ErrorCode: errorCode,
	}
	return nil
}

func (m OpenMiningChannelError[K]) String() string {
	return fmt.Sprintf("%s{request_id=%d code=%s}", m.MessageType(), m.RequestID, m.ErrorCode)
}
