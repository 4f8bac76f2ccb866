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
	"reflect"
	"testing"

	"stratumv2/codec"
	"stratumv2/common"
)

var setupConnectionPayload = []byte{
	0x00,       // protocol
	0x02, 0x00, // min_version
	0x02, 0x00, // max_version
	0x01, 0x00, 0x00, 0x00, // flags
	0x07,                                     // length_endpoint_host
	0x30, 0x2e, 0x30, 0x2e, 0x30, 0x2e, 0x30, // endpoint_host
	0x61, 0x21, // endpoint_port
	0x07,                                     // length_vendor
	0x42, 0x69, 0x74, 0x6d, 0x61, 0x69, 0x6e, // vendor
	0x08,                                           // length_hardware_version
	0x53, 0x39, 0x69, 0x20, 0x31, 0x33, 0x2e, 0x35, // hardware_version
	0x1c, // length_firmware
	0x62, 0x72, 0x61, 0x69, 0x69, 0x6e, 0x73, 0x2d, 0x6f, 0x73, 0x2d, 0x32, 0x30, 0x31,
	0x38, 0x2d, 0x30, 0x39, 0x2d, 0x32, 0x32, 0x2d, 0x31, 0x2d, 0x68, 0x61, 0x73,
	0x68,                                                 // firmware
	0x09,                                                 // length_device_id
	0x73, 0x6f, 0x6d, 0x65, 0x2d, 0x75, 0x75, 0x69, 0x64, // device_id
}

func newSetupConnection(t *testing.T, flags ...SetupConnectionFlag) SetupConnection {
	m, err := NewSetupConnection(2, 2, flags, "0.0.0.0", 8545,
		"Bitmain", "S9i 13.5", "braiins-os-2018-09-22-1-hash", "some-uuid")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSerializeSetupConnection(t *testing.T) {
	b, err := codec.Serialize(newSetupConnection(t, RequiresStandardJobs))
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 75 {
		t.Fatalf("expected 75 bytes, got %d", len(b))
	}
	if !bytes.Equal(b, setupConnectionPayload) {
		t.Fatalf("expected %x\ngot      %x", setupConnectionPayload, b)
	}
}

func TestSetupConnectionFlagsByte(t *testing.T) {
	tests := []struct {
		flags []SetupConnectionFlag
		want  byte
	}{
		{nil, 0x00},
		{[]SetupConnectionFlag{RequiresStandardJobs, RequiresVersionRolling}, 0x05},
		{[]SetupConnectionFlag{RequiresVersionRolling, RequiresWorkSelection, RequiresStandardJobs}, 0x07},
	}
	for _, tt := range tests {
		b, err := codec.Serialize(newSetupConnection(t, tt.flags...))
		if err != nil {
			t.Fatal(err)
		}
		if len(b) != 75 || b[5] != tt.want {
			t.Fatalf("flags %v: length %d, flags byte %x", tt.flags, len(b), b[5])
		}
	}
}

func TestDeserializeSetupConnection(t *testing.T) {
	m, err := codec.Deserialize[SetupConnection](setupConnectionPayload)
	if err != nil {
		t.Fatal(err)
	}

	if m.MinVersion != 2 || m.MaxVersion != 2 {
		t.Fatalf("versions %d %d", m.MinVersion, m.MaxVersion)
	}
	if len(m.Flags) != 1 || m.Flags[0] != RequiresStandardJobs {
		t.Fatalf("flags %v", m.Flags)
	}
	if m.EndpointHost.String() != "0.0.0.0" || m.EndpointPort != 8545 {
		t.Fatalf("endpoint %s:%d", m.EndpointHost, m.EndpointPort)
	}
	if m.Vendor.String() != "Bitmain" || m.HardwareVersion.String() != "S9i 13.5" {
		t.Fatalf("device %s %s", m.Vendor, m.HardwareVersion)
	}
	if m.Firmware.String() != "braiins-os-2018-09-22-1-hash" || m.DeviceID.String() != "some-uuid" {
		t.Fatalf("firmware %s device %s", m.Firmware, m.DeviceID)
	}
	if !reflect.DeepEqual(m, newSetupConnection(t, RequiresStandardJobs)) {
		t.Fatal("decoded message differs from the constructed one")
	}
}

func TestDeserializeMalformedSetupConnection(t *testing.T) {
	if _, err := codec.Deserialize[SetupConnection](nil); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
		t.Fatalf("empty input: %v", err)
	}
	if _, err := codec.Deserialize[SetupConnection]([]byte{0xaf}); !errors.Is(err, codec.ErrUnknownProtocol) {
		t.Fatalf("unknown protocol: %v", err)
	}

	// every strict prefix is a truncation, only the full payload decodes
	for i := 0; i < len(setupConnectionPayload); i++ {
		if _, err := codec.Deserialize[SetupConnection](setupConnectionPayload[:i]); !errors.Is(err, codec.ErrUnexpectedEndOfInput) {
			t.Fatalf("prefix of %d bytes: %v", i, err)
		}
	}
	if _, err := codec.Deserialize[SetupConnection](setupConnectionPayload); err != nil {
		t.Fatal(err)
	}
}

func TestFrameSetupConnection(t *testing.T) {
	b, err := codec.Frame(newSetupConnection(t, RequiresStandardJobs))
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 81 {
		t.Fatalf("expected 81 bytes, got %d", len(b))
	}
	header := []byte{0x00, 0x00, 0x00, 0x4b, 0x00, 0x00}
	if !bytes.Equal(b[:6], header) {
		t.Fatalf("header %x", b[:6])
	}
	if !bytes.Equal(b[6:], setupConnectionPayload) {
		t.Fatal("payload differs from serialize")
	}
}

func TestSetupConnectionSuccess(t *testing.T) {
	m, err := NewSetupConnectionSuccess(2, []SetupConnectionSuccessFlag{RequiresExtendedChannels, RequiresFixedVersion})
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Frame(m)
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x00, 0x00, 0x01, 0x06, 0x00, 0x00, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00}
	if !bytes.Equal(b, expected) {
		t.Fatalf("expected %x, got %x", expected, b)
	}

	d, err := codec.Deserialize[SetupConnectionSuccess](b[6:])
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d, m) {
		t.Fatalf("decoded %s, want %s", d, m)
	}

	if _, err := codec.Deserialize[SetupConnectionSuccess]([]byte{2, 0, 4, 0, 0, 0}); !errors.Is(err, codec.ErrUnknownFlags) {
		t.Fatalf("unknown success flag: %v", err)
	}
}

func TestSetupConnectionError(t *testing.T) {
	m, err := NewSetupConnectionError([]SetupConnectionFlag{RequiresStandardJobs}, common.UnsupportedFeatureFlags)
	if err != nil {
		t.Fatal(err)
	}
	b, err := codec.Serialize(m)
	if err != nil {
		t.Fatal(err)
	}
	if b[0] != 0x01 || b[4] != 0x19 || string(b[5:]) != "unsupported-feature-flags" {
		t.Fatalf("got %x", b)
	}

	if _, err := NewSetupConnectionError(nil, common.UnsupportedFeatureFlags); !errors.Is(err, codec.ErrUnsupportedFlagsRequirement) {
		t.Fatalf("empty flags: %v", err)
	}

	m, err = NewSetupConnectionError(nil, common.UnsupportedProtocol)
	if err != nil {
		t.Fatal(err)
	}
	b, err = codec.Serialize(m)
	if err != nil {
		t.Fatal(err)
	}
	d, err := codec.Deserialize[SetupConnectionError](b)
	if err != nil {
		t.Fatal(err)
	}
	if d.ErrorCode != common.UnsupportedProtocol || len(d.Flags) != 0 {
		t.Fatalf("decoded %s", d)
	}
}

func TestFlagTables(t *testing.T) {
	if err := setupConnectionFlags.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := setupConnectionSuccessFlags.Validate(); err != nil {
		t.Fatal(err)
	}

	flags, err := codec.DecodeFlags[SetupConnectionFlag](2)
	if err != nil {
		t.Fatal(err)
	}
	if len(flags) != 1 || flags[0] != RequiresWorkSelection {
		t.Fatalf("2 decoded as %v", flags)
	}
	if _, err := codec.DecodeFlags[SetupConnectionFlag](8); !errors.Is(err, codec.ErrUnknownFlags) {
		t.Fatalf("8 decoded: %v", err)
	}
	if RequiresVersionRolling.String() != "RequiresVersionRolling" {
		t.Fatal(RequiresVersionRolling.String())
	}
}

func TestDecodeMessage(t *testing.T) {
	m, err := DecodeMessage(codec.MessageTypeSetupConnection, setupConnectionPayload)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(SetupConnection); !ok {
		t.Fatalf("decoded %T", m)
	}

	if _, err := DecodeMessage(codec.MessageType(0x02), nil); !errors.Is(err, codec.ErrUnknownMessageType) {
		t.Fatalf("0x02 decoded: %v", err)
	}
}
