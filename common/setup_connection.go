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
	"stratumv2/config"

	"github.com/duggavo/serializer"
)

// SetupConnection is the first message sent by a client on a new connection.
type SetupConnection[F codec.Flag[F]] struct {
	// minimum and maximum protocol version the client supports
	MinVersion uint16
	MaxVersion uint16

	// optional features the client supports, in table order
	Flags []F

	// the host and port the client connected to, as seen by the client
	EndpointHost codec.STR0_255
	EndpointPort uint16

	// device information
	Vendor          codec.STR0_255
	HardwareVersion codec.STR0_255
	Firmware        codec.STR0_255
	DeviceID        codec.STR0_255
}

func NewSetupConnection[F codec.Flag[F]](
	minVersion, maxVersion uint16,
	flags []F,
	endpointHost string,
	endpointPort uint16,
	vendor, hardwareVersion, firmware, deviceID string,
) (SetupConnection[F], error) {
	if vendor == "" {
		return SetupConnection[F]{}, fmt.Errorf("%w: vendor field in SetupConnection MUST NOT be empty", codec.ErrRequiredFieldEmpty)
	}
	if firmware == "" {
		return SetupConnection[F]{}, fmt.Errorf("%w: firmware field in SetupConnection MUST NOT be empty", codec.ErrRequiredFieldEmpty)
	}
	if minVersion < config.MIN_VERSION {
		return SetupConnection[F]{}, fmt.Errorf("%w: min_version must be at least %d, got %d", codec.ErrVersion, config.MIN_VERSION, minVersion)
	}
	if maxVersion < config.MIN_VERSION {
		return SetupConnection[F]{}, fmt.Errorf("%w: max_version must be at least %d, got %d", codec.ErrVersion, config.MIN_VERSION, maxVersion)
	}

	canonical, err := codec.CanonicalFlags(flags)
	if err != nil {
		return SetupConnection[F]{}, err
	}

	m := SetupConnection[F]{
		MinVersion:   minVersion,
		MaxVersion:   maxVersion,
		Flags:        canonical,
		EndpointPort: endpointPort,
	}
	strs := []struct {
		dst   *codec.STR0_255
		value string
		name  string
	}{
		{&m.EndpointHost, endpointHost, "endpoint_host"},
		{&m.Vendor, vendor, "vendor"},
		{&m.HardwareVersion, hardwareVersion, "hardware_version"},
		{&m.Firmware, firmware, "firmware"},
		{&m.DeviceID, deviceID, "device_id"},
	}
	for _, v := range strs {
		*v.dst, err = codec.NewSTR0_255(v.value)
		if err != nil {
			return SetupConnection[F]{}, fmt.Errorf("%s: %w", v.name, err)
		}
	}

	return m, nil
}

// Protocol is the sub protocol of the flag enum F.
func (m SetupConnection[F]) Protocol() codec.Protocol {
	var zero F
	return zero.Table().Protocol
}

func (SetupConnection[F]) MessageType() codec.MessageType {
	return codec.MessageTypeSetupConnection
}

func (SetupConnection[F]) ChannelMessage() bool {
	return false
}

func (m SetupConnection[F]) Serialize(s *serializer.Serializer) error {
	flags, err := codec.EncodeFlags(m.Flags)
	if err != nil {
		return err
	}

	s.AddUint8(uint8(m.Protocol()))
	s.AddUint16(m.MinVersion)
	s.AddUint16(m.MaxVersion)
	s.AddUint32(flags)
	m.EndpointHost.Serialize(s)
	s.AddUint16(m.EndpointPort)
	m.Vendor.Serialize(s)
	m.HardwareVersion.Serialize(s)
	m.Firmware.Serialize(s)
	m.DeviceID.Serialize(s)

	return nil
}

// Deserialize reads the fields in wire order and then runs them through
// NewSetupConnection, so a peer cannot skip the constructor's checks.
func (m *SetupConnection[F]) Deserialize(p *codec.ByteParser) error {
	protocolByte, err := p.U8()
	if err != nil {
		return err
	}
	protocol := codec.ParseProtocol(protocolByte)
	if protocol == codec.ProtocolUnknown {
		return fmt.Errorf("%w: received unknown protocol byte 0x%02x in SetupConnection", codec.ErrUnknownProtocol, protocolByte)
	}
	if want := m.Protocol(); protocol != want {
		return fmt.Errorf("%w: SetupConnection is for %s, decoder expects %s", codec.ErrProtocolMismatch, protocol, want)
	}

	minVersion, err := p.U16()
	if err != nil {
		return err
	}
	maxVersion, err := p.U16()
	if err != nil {
		return err
	}
	mask, err := p.U32()
	if err != nil {
		return err
	}
	endpointHost, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}
	endpointPort, err := p.U16()
	if err != nil {
		return err
	}
	vendor, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}
	hardwareVersion, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}
	firmware, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}
	deviceID, err := codec.DeserializeSTR0_255(p)
	if err != nil {
		return err
	}

	flags, err := codec.DecodeFlags[F](mask)
	if err != nil {
		return err
	}

	decoded, err := NewSetupConnection(
		minVersion,
		maxVersion,
		flags,
		endpointHost.String(),
		endpointPort,
		vendor.String(),
		hardwareVersion.String(),
		firmware.String(),
		deviceID.String(),
	)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

func (m SetupConnection[F]) String() string {
	return fmt.Sprintf("SetupConnection{protocol=%s versions=%d..%d flags=%s endpoint=%s:%d vendor=%q hw=%q fw=%q device=%q}",
		m.Protocol(), m.MinVersion, m.MaxVersion, codec.FormatFlags(m.Flags), m.EndpointHost, m.EndpointPort,
		m.Vendor, m.HardwareVersion, m.Firmware, m.DeviceID)
}
