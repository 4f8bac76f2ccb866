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

// Package jobnegotiation is the Job Negotiation sub protocol, used by
// intermediate nodes to negotiate the block template of their jobs with the
// pool.
package jobnegotiation

import (
	"stratumv2/codec"
	"stratumv2/common"
)

type SetupConnectionFlag uint8

const (
	// the client mines on jobs before the pool has accepted them
	RequiresAsyncJobMining SetupConnectionFlag = iota
)

var setupConnectionFlags = &codec.FlagTable[SetupConnectionFlag]{
	Protocol: codec.ProtocolJobNegotiation,
	Entries: []codec.FlagEntry[SetupConnectionFlag]{
		{Flag: RequiresAsyncJobMining, Shift: 0, Name: "RequiresAsyncJobMining"},
	},
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

// SetupConnectionSuccessFlag has no variants yet; any bit set by a server is
// rejected.
type SetupConnectionSuccessFlag uint8

var setupConnectionSuccessFlags = &codec.FlagTable[SetupConnectionSuccessFlag]{
	Protocol: codec.ProtocolJobNegotiation,
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

func DecodeMessage(t codec.MessageType, payload []byte) (codec.Frameable, error) {
	switch t {
	case codec.MessageTypeSetupConnection:
		return codec.DecodeAs[SetupConnection](payload)
	case codec.MessageTypeSetupConnectionSuccess:
		return codec.DecodeAs[SetupConnectionSuccess](payload)
	case codec.MessageTypeSetupConnectionError:
		return codec.DecodeAs[SetupConnectionError](payload)
	default:
		return nil, codec.UnknownMessageTypeError(codec.ProtocolJobNegotiation, t)
	}
}
