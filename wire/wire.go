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

// Package wire turns whole frames into typed messages and back.
package wire

import (
	"fmt"

	"stratumv2/codec"
	"stratumv2/config"
	"stratumv2/jobdistribution"
	"stratumv2/jobnegotiation"
	"stratumv2/log"
	"stratumv2/mining"
	"stratumv2/templatedistribution"
)

type decoder func(t codec.MessageType, payload []byte) (codec.Frameable, error)

var decoders = map[codec.Protocol]decoder{
	codec.ProtocolMining:               mining.DecodeMessage,
	codec.ProtocolJobNegotiation:       jobnegotiation.DecodeMessage,
	codec.ProtocolTemplateDistribution: templatedistribution.DecodeMessage,
	codec.ProtocolJobDistribution:      jobdistribution.DecodeMessage,
}

// Decode parses one complete frame of the given sub protocol.
func Decode(protocol codec.Protocol, frame []byte) (codec.Frameable, error) {
	_, m, err := DecodeFrame(protocol, frame)
	return m, err
}

// DecodeFrame is Decode also returning the frame header.
func DecodeFrame(protocol codec.Protocol, frame []byte) (codec.FrameHeader, codec.Frameable, error) {
	h, payload, err := codec.SplitFrame(frame)
	if err != nil {
		return codec.FrameHeader{}, nil, err
	}
	log.Netf("received %s", h)

	if h.Extension() != config.NO_EXTENSION {
		return codec.FrameHeader{}, nil, fmt.Errorf("%w: extension type 0x%04x is not supported", codec.ErrDeserialization, h.Extension())
	}

	m, err := DecodePayload(protocol, uint8(h.MsgType), payload)
	if err != nil {
		return codec.FrameHeader{}, nil, err
	}
	if m.ChannelMessage() != h.ChannelMessage() {
		return codec.FrameHeader{}, nil, fmt.Errorf("%w: channel bit does not match %s", codec.ErrDeserialization, m.MessageType())
	}
	return h, m, nil
}

// DecodePayload parses a payload already split from its frame header.
func DecodePayload(protocol codec.Protocol, msgType uint8, payload []byte) (codec.Frameable, error) {
	dec, ok := decoders[protocol]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", codec.ErrUnknownProtocol, uint8(protocol))
	}

	t := codec.LookupMessageType(protocol, msgType)
	if t == codec.MessageTypeUnknown {
		return nil, codec.UnknownMessageTypeError(protocol, codec.MessageType(msgType))
	}

	m, err := dec(t, payload)
	if err != nil {
		log.Debugf("%s %s: %v", protocol, t, err)
		return nil, err
	}
	return m, nil
}

// Encode frames m.
func Encode(m codec.Frameable) ([]byte, error) {
	return codec.Frame(m)
}
