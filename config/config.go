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

package config

// lowest protocol version a SetupConnection may advertise
const MIN_VERSION = 2

// frame header: extension_type (2) + msg_type (1) + msg_length (3)
const FRAME_HEADER_SIZE = 6

// msg_length is a u24
const MAX_PAYLOAD_LENGTH = 1<<24 - 1

// extension_type 0x0000 is the core protocol
const NO_EXTENSION uint16 = 0x0000

// most significant bit of extension_type, set for messages addressed to a channel_id
const CHANNEL_MSG_BIT uint16 = 0x8000

// size classes of the length-prefixed types
const (
	MAX_LEN_0_32  = 32
	MAX_LEN_0_255 = 255
)

const U256_LENGTH = 32
