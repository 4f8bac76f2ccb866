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

// Package templatedistribution is the Template Distribution sub protocol,
// which replaces getblocktemplate between a node and a pool or job negotiator.
package templatedistribution

import (
	"stratumv2/codec"
	"stratumv2/common"
)

// SetupConnectionFlag has no variants defined by the protocol.
type SetupConnectionFlag uint8

var setupConnectionFlags = &codec.FlagTable[SetupConnectionFlag]{
	Protocol: codec.ProtocolTemplateDistribution,
}

func (SetupConnectionFlag) Table() *codec.FlagTable[SetupConnectionFlag] {
	return setupConnectionFlags
}

func (f SetupConnectionFlag) String() string {
	return setupConnectionFlags.Name(f)
}

func (f SetupConnectionFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// SetupConnectionSuccessFlag has no variants defined by the protocol.
type SetupConnectionSuccessFlag uint8

var setupConnectionSuccessFlags = &codec.FlagTable[SetupConnectionSuccessFlag]{
	Protocol: codec.ProtocolTemplateDistribution,
}

func (SetupConnectionSuccessFlag) Table() *codec.FlagTable[SetupConnectionSuccessFlag] {
	return setupConnectionSuccessFlags
}

func (f SetupConnectionSuccessFlag) String() string {
	return setupConnectionSuccessFlags.Name(f)
}

func (f SetupConnectionSuccessFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

type SetupConnection = common.SetupConnection[SetupConnectionFlag]
type SetupConnectionSuccess = common.SetupConnectionSuccess[SetupConnectionSuccessFlag]
type SetupConnectionError = common.SetupConnectionError[SetupConnectionFlag]

func NewSetupConnection(
	minVersion, maxVersion uint16,
	endpointHost string,
	endpointPort uint16,
	vendor, hardwareVersion, firmware, deviceID string,
) (SetupConnection, error) {
	return common.NewSetupConnection[SetupConnectionFlag](minVersion, maxVersion, nil, endpointHost, endpointPort,
		vendor, hardwareVersion, firmware, deviceID)
}

func NewSetupConnectionSuccess(usedVersion uint16) (SetupConnectionSuccess, error) {
	return common.NewSetupConnectionSuccess[SetupConnectionSuccessFlag](usedVersion, nil)
}

// NewSetupConnectionError cannot carry UnsupportedFeatureFlags, there are no
// flags to list.
func NewSetupConnectionError(errorCode common.SetupConnectionErrorCode) (SetupConnectionError, error) {
	return common.NewSetupConnectionError[SetupConnectionFlag](nil, errorCode)
}

func DecodeMessage(t codec.MessageType, payload []byte) (codec.Frameable, error) {
	switch t {
	case codec.MessageTypeSetupConnection:
		return codec.DecodeAs[SetupConnection](payload)
	case codec.MessageTypeSetupConnectionSuccess:
		return codec.DecodeAs[SetupConnectionSuccess](payload)
	case codec.MessageTypeSetupConnectionError:
		return codec.DecodeAs[SetupConnectionError](payload)
	default:
		return nil, codec.UnknownMessageTypeError(codec.ProtocolTemplateDistribution, t)
	}
}
