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
	"math"

	"stratumv2/codec"

	"github.com/duggavo/serializer"
)

// OpenStandardMiningChannel asks the server for a standard (header-only)
// mining channel. Sent after SetupConnection.Success.
type OpenStandardMiningChannel struct {
	// client-chosen id echoed back in the response
	RequestID uint32
	// usually "account.worker"
	UserIdentity codec.STR0_255
	// expected hash rate of the device in h/s
	NominalHashRate float32
	// highest target the client accepts
	MaxTarget codec.U256
}

func NewOpenStandardMiningChannel(requestID uint32, userIdentity string, nominalHashRate float32, maxTarget codec.U256) (OpenStandardMiningChannel, error) {
	if math.IsNaN(float64(nominalHashRate)) || math.IsInf(float64(nominalHashRate), 0) || nominalHashRate < 0 {
		return OpenStandardMiningChannel{}, fmt.Errorf("%w: nominal_hash_rate must be a finite non-negative number, got %v", codec.ErrRequirement, nominalHashRate)
	}
	user, err := codec.NewSTR0_255(userIdentity)
	if err != nil {
		return OpenStandardMiningChannel{}, fmt.Errorf("user_identity: %w", err)
	}
	return OpenStandardMiningChannel{
		RequestID:       requestID,
		UserIdentity:    user,
		NominalHashRate: nominalHashRate,
		MaxTarget:       maxTarget,
	}, nil
}

func (OpenStandardMiningChannel) MessageType() codec.MessageType {
	return codec.MessageTypeOpenStandardMiningChannel
}

func (OpenStandardMiningChannel) ChannelMessage() bool {
	return false
}

func (m OpenStandardMiningChannel) Serialize(s *serializer.Serializer) error {
	s.AddUint32(m.RequestID)
	m.UserIdentity.Serialize(s)
	s.AddUint32(math.Float32bits(m.NominalHashRate))
	m.MaxTarget.Serialize(s)
	return nil
}

func (m *OpenStandardMiningChannel) Deserialize(p *codec.ByteParser) error {
	requestID, err := p.U32()
	if err != nil {
		return err
	}
	user, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}
	hashRate, err := p.F32()
	if err != nil {
		return err
	}
	maxTarget, err := p.U256()
	if err != nil {
		return err
	}

	// any f32 is valid on the wire, the hash rate check is for local construction only
	*m = OpenStandardMiningChannel{
		RequestID:       requestID,
		UserIdentity:    user,
		NominalHashRate: hashRate,
		MaxTarget:       maxTarget,
	}
	return nil
}

// OpenStandardMiningChannelSuccess assigns the channel requested by
// OpenStandardMiningChannel.
type OpenStandardMiningChannelSuccess struct {
	RequestID        uint32
	ChannelID        uint32
	Target           codec.U256
	ExtranoncePrefix codec.B0_32
	// group channel the new channel was added to
	GroupChannelID uint32
}

func NewOpenStandardMiningChannelSuccess(requestID, channelID uint32, target codec.U256, extranoncePrefix []byte, groupChannelID uint32) (OpenStandardMiningChannelSuccess, error) {
	prefix, err := codec.NewB0_32(extranoncePrefix)
	if err != nil {
		return OpenStandardMiningChannelSuccess{}, fmt.Errorf("extranonce_prefix: %w", err)
	}
	return OpenStandardMiningChannelSuccess{
		RequestID:        requestID,
		ChannelID:        channelID,
		Target:           target,
		ExtranoncePrefix: prefix,
		GroupChannelID:   groupChannelID,
	}, nil
}

func (OpenStandardMiningChannelSuccess) MessageType() codec.MessageType {
	return codec.MessageTypeOpenStandardMiningChannelSuccess
}

func (OpenStandardMiningChannelSuccess) ChannelMessage() bool {
	return false
}

func (m OpenStandardMiningChannelSuccess) Serialize(s *serializer.Serializer) error {
	s.AddUint32(m.RequestID)
	s.AddUint32(m.ChannelID)
	m.Target.Serialize(s)
	m.ExtranoncePrefix.Serialize(s)
	s.AddUint32(m.GroupChannelID)
	return nil
}

func (m *OpenStandardMiningChannelSuccess) Deserialize(p *codec.ByteParser) error {
	requestID, err := p.U32()
	if err != nil {
		return err
	}
	channelID, err := p.U32()
	if err != nil {
		return err
	}
	target, err := p.U256()
	if err != nil {
		return err
	}
	prefix, err := codec.DeserializeB0_32(p)
	if err != nil {
		return err
	}
	groupChannelID, err := p.U32()
	if err != nil {
		return err
	}
	*m = OpenStandardMiningChannelSuccess{
		RequestID:        requestID,
		ChannelID:        channelID,
		Target:           target,
		ExtranoncePrefix: prefix,
		GroupChannelID:   groupChannelID,
	}
	return nil
}

// SetTarget changes the maximum target of a channel. It is addressed to a
// channel, so its frame carries the channel_msg bit.
type SetTarget struct {
	ChannelID     uint32
	MaximumTarget codec.U256
}

func (SetTarget) MessageType() codec.MessageType {
	return codec.MessageTypeSetTarget
}

func (SetTarget) ChannelMessage() bool {
	return true
}

func (m SetTarget) Serialize(s *serializer.Serializer) error {
	s.AddUint32(m.ChannelID)
	m.MaximumTarget.Serialize(s)
	return nil
}

func (m *SetTarget) Deserialize(p *codec.ByteParser) error {
	channelID, err := p.U32()
	if err != nil {
		return err
	}
	target, err := p.U256()
	if err != nil {
		return err
	}
	*m = SetTarget{
		ChannelID:     channelID,
		MaximumTarget: target,
	}
	return nil
}
