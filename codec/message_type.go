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

import "fmt"

// MessageType is the msg_type byte of a frame header.
type MessageType uint8

const (
	MessageTypeSetupConnection        MessageType = 0x00
	MessageTypeSetupConnectionSuccess MessageType = 0x01
	// 0x02 is not assigned
	MessageTypeSetupConnectionError MessageType = 0x03

	MessageTypeOpenStandardMiningChannel        MessageType = 0x10
	MessageTypeOpenStandardMiningChannelSuccess MessageType = 0x11
	MessageTypeOpenStandardMiningChannelError   MessageType = 0x12
	MessageTypeOpenExtendedMiningChannelError   MessageType = 0x15
	MessageTypeSetTarget                        MessageType = 0x21

	// returned by lookups for bytes nobody registered, never encoded
	MessageTypeUnknown MessageType = 0xff
)

type messageTypeEntry struct {
	Type      MessageType
	Name      string
	Protocols []Protocol // nil means every sub protocol
}

var messageTypes = []messageTypeEntry{
	{MessageTypeSetupConnection, "SetupConnection", nil},
	{MessageTypeSetupConnectionSuccess, "SetupConnection.Success", nil},
	{MessageTypeSetupConnectionError, "SetupConnection.Error", nil},
	{MessageTypeOpenStandardMiningChannel, "OpenStandardMiningChannel", []Protocol{ProtocolMining}},
	{MessageTypeOpenStandardMiningChannelSuccess, "OpenStandardMiningChannel.Success", []Protocol{ProtocolMining}},
	{MessageTypeOpenStandardMiningChannelError, "OpenStandardMiningChannel.Error", []Protocol{ProtocolMining}},
	{MessageTypeOpenExtendedMiningChannelError, "OpenExtendedMiningChannel.Error", []Protocol{ProtocolMining}},
	{MessageTypeSetTarget, "SetTarget", []Protocol{ProtocolMining}},
}

func findMessageType(t MessageType) (messageTypeEntry, bool) {
	for _, e := range messageTypes {
		if e.Type == t {
			return e, true
		}
	}
	return messageTypeEntry{}, false
}

// LookupMessageType maps a byte to a MessageType registered for protocol.
// Unregistered bytes give MessageTypeUnknown, which is not an error.
func LookupMessageType(protocol Protocol, b uint8) MessageType {
	e, ok := findMessageType(MessageType(b))
	if !ok {
		return MessageTypeUnknown
	}
	if e.Protocols == nil {
		return e.Type
	}
	for _, p := range e.Protocols {
		if p == protocol {
			return e.Type
		}
	}
	return MessageTypeUnknown
}

// MessageTypes lists the types registered for protocol in byte order.
func MessageTypes(protocol Protocol) []MessageType {
	var out []MessageType
	for _, e := range messageTypes {
		if LookupMessageType(protocol, uint8(e.Type)) == e.Type {
			out = append(out, e.Type)
		}
	}
	return out
}

func (t MessageType) String() string {
	if e, ok := findMessageType(t); ok {
		return e.Name
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(t))
}

func (t MessageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
