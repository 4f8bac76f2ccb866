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

// Package mining is the Mining sub protocol: the connection setup messages
// instantiated with the mining feature flags, plus the channel opening
// messages a mining device exchanges right after the setup.
package mining

import (
	"stratumv2/codec"
	"stratumv2/common"
)

type SetupConnection = common.SetupConnection[SetupConnectionFlag]
type SetupConnectionSuccess = common.SetupConnectionSuccess[SetupConnectionSuccessFlag]
type SetupConnectionError = common.SetupConnectionError[SetupConnectionFlag]

func NewSetupConnection(
	minVersion, maxVersion uint16,
	flags []SetupConnectionFlag,
	endpointHost string,
	endpointPort uint16,
	vendor, hardwareVersion, firmware, deviceID string,
) (SetupConnection, error) {
	return common.NewSetupConnection(minVersion, maxVersion, flags, endpointHost, endpointPort,
		vendor, hardwareVersion, firmware, deviceID)
}

func NewSetupConnectionSuccess(usedVersion uint16, flags []SetupConnectionSuccessFlag) (SetupConnectionSuccess, error) {
	return common.NewSetupConnectionSuccess(usedVersion, flags)
}

func NewSetupConnectionError(flags []SetupConnectionFlag, errorCode common.SetupConnectionErrorCode) (SetupConnectionError, error) {
	return common.NewSetupConnectionError(flags, errorCode)
}

// DecodeMessage decodes a Mining payload of message type t.
func DecodeMessage(t codec.MessageType, payload []byte) (codec.Frameable, error) {
	switch t {
	case codec.MessageTypeSetupConnection:
		return codec.DecodeAs[SetupConnection](payload)
	case codec.MessageTypeSetupConnectionSuccess:
		return codec.DecodeAs[SetupConnectionSuccess](payload)
	case codec.MessageTypeSetupConnectionError:
		return codec.DecodeAs[SetupConnectionError](payload)
	case codec.MessageTypeOpenStandardMiningChannel:
		return codec.DecodeAs[OpenStandardMiningChannel](payload)
	case codec.MessageTypeOpenStandardMiningChannelSuccess:
		return codec.DecodeAs[OpenStandardMiningChannelSuccess](payload)
	case codec.MessageTypeOpenStandardMiningChannelError:
		return codec.DecodeAs[OpenStandardMiningChannelError](payload)
	case codec.MessageTypeOpenExtendedMiningChannelError:
		return codec.DecodeAs[OpenExtendedMiningChannelError](payload)
	case codec.MessageTypeSetTarget:
		return codec.DecodeAs[SetTarget](payload)
	default:
		return nil, codec.UnknownMessageTypeError(codec.ProtocolMining, t)
	}
}
