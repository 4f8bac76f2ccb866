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

import "stratumv2/codec"

// SetupConnectionFlag is a feature a mining client asks for in SetupConnection.
// The same enum lists the rejected features in SetupConnection.Error.
type SetupConnectionFlag uint8

const (
	// the client does not understand group channels and extended jobs
	RequiresStandardJobs SetupConnectionFlag = iota
	// the client will send SetCustomMiningJob on this connection
	RequiresWorkSelection
	// the server MUST NOT send jobs which do not allow version rolling
	RequiresVersionRolling
)

var setupConnectionFlags = &codec.FlagTable[SetupConnectionFlag]{
	Protocol: codec.ProtocolMining,
	Entries: []codec.FlagEntry[SetupConnectionFlag]{
		{Flag: RequiresStandardJobs, Shift: 0, Name: "RequiresStandardJobs"},
		{Flag: RequiresWorkSelection, Shift: 1, Name: "RequiresWorkSelection"},
		{Flag: RequiresVersionRolling, Shift: 2, Name: "RequiresVersionRolling"},
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

// SetupConnectionSuccessFlag is a feature the server announces in
// SetupConnection.Success.
type SetupConnectionSuccessFlag uint8

const (
	// the server does not accept changes to the version field. MUST NOT be
	// set when the client sent RequiresVersionRolling.
	RequiresFixedVersion SetupConnectionSuccessFlag = iota
	// the server will not accept opening a standard channel
	RequiresExtendedChannels
)

var setupConnectionSuccessFlags = &codec.FlagTable[SetupConnectionSuccessFlag]{
	Protocol: codec.ProtocolMining,
	Entries: []codec.FlagEntry[SetupConnectionSuccessFlag]{
		{Flag: RequiresFixedVersion, Shift: 0, Name: "RequiresFixedVersion"},
		{Flag: RequiresExtendedChannels, Shift: 1, Name: "RequiresExtendedChannels"},
	},
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
