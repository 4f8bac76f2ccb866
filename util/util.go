// Copyright (C) 2024 duggavo
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

package util

import (
	"encoding/hex"
	"encoding/json"
	"strings"
)

// AppendUint24LE appends the low 24 bits of n
func AppendUint24LE(b []byte, n uint32) []byte {
	return append(b, byte(n), byte(n>>8), byte(n>>16))
}

func Uint24LE(b []byte) uint32 {
	_ = b[2]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// DecodeHex accepts hex with optional 0x prefix and any whitespace in between
func DecodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func DumpJson(d any) string {
	data, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		panic(err)
	}

	return string(data)
}
