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
	"math/big"

	"stratumv2/codec"
)

// targets are U256 integers in little endian order

var maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func targetToBig(t codec.U256) *big.Int {
	var be [32]byte
	for i := range t {
		be[31-i] = t[i]
	}
	return new(big.Int).SetBytes(be[:])
}

func bigToTarget(n *big.Int) codec.U256 {
	var be [32]byte
	n.FillBytes(be[:])
	var t codec.U256
	for i := range be {
		t[31-i] = be[i]
	}
	return t
}

// TargetFromDifficulty returns MAX_U256 / diff. A difficulty of 0 gives the
// zero target, which no hash meets.
func TargetFromDifficulty(diff uint64) codec.U256 {
	if diff == 0 {
		return codec.U256{}
	}
	return bigToTarget(new(big.Int).Div(maxTarget, new(big.Int).SetUint64(diff)))
}

// Difficulty is the inverse of TargetFromDifficulty, rounded down and capped
// at the largest uint64.
func Difficulty(target codec.U256) uint64 {
	t := targetToBig(target)
	if t.Sign() == 0 {
		return 0
	}
	d := new(big.Int).Div(maxTarget, t)
	if !d.IsUint64() {
		return ^uint64(0)
	}
	return d.Uint64()
}

// MeetsTarget reports whether hash, read as a little endian U256, is at or
// below target.
func MeetsTarget(hash, target codec.U256) bool {
	return targetToBig(hash).Cmp(targetToBig(target)) <= 0
}
