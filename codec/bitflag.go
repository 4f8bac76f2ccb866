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

package codec

import (
	"fmt"
	"strings"
)

// Flag is implemented by the feature flag enums of each message family.
// Table returns the static bit table of the family; it must not depend on the
// receiver's value so that it can be called on the zero value.
type Flag[F comparable] interface {
	comparable
	Table() *FlagTable[F]
}

type FlagEntry[F comparable] struct {
	Flag  F
	Shift uint8
	Name  string
}

// FlagTable binds every variant of a flag enum to a bit position. Entries
// are kept in ascending Shift order, which is the order Decode returns.
type FlagTable[F comparable] struct {
	Protocol Protocol
	Entries  []FlagEntry[F]
}

// Mask is the union of every known bit.
func (t *FlagTable[F]) Mask() uint32 {
	var m uint32
	for _, e := range t.Entries {
		m |= 1 << e.Shift
	}
	return m
}

func (t *FlagTable[F]) entry(f F) (FlagEntry[F], bool) {
	for _, e := range t.Entries {
		if e.Flag == f {
			return e, true
		}
	}
	return FlagEntry[F]{}, false
}

// Bit returns the single-bit mask of f.
func (t *FlagTable[F]) Bit(f F) (uint32, error) {
	e, ok := t.entry(f)
	if !ok {
		return 0, fmt.Errorf("%w: variant %d is not in the %s table", ErrUnknownFlags, any(f), t.Protocol)
	}
	return 1 << e.Shift, nil
}

func (t *FlagTable[F]) Name(f F) string {
	if e, ok := t.entry(f); ok {
		return e.Name
	}
	return fmt.Sprintf("UnknownFlag(%d)", any(f))
}

// Encode ORs the bits of flags together. Order and duplicates do not matter.
func (t *FlagTable[F]) Encode(flags []F) (uint32, error) {
	var mask uint32
	for _, f := range flags {
		bit, err := t.Bit(f)
		if err != nil {
			return 0, err
		}
		mask |= bit
	}
	return mask, nil
}

// Decode returns the variants set in mask in table order. Bits outside the
// table are an error.
func (t *FlagTable[F]) Decode(mask uint32) ([]F, error) {
	if extra := mask &^ t.Mask(); extra != 0 {
		return nil, fmt.Errorf("%w: bits 0x%08x are not defined for %s", ErrUnknownFlags, extra, t.Protocol)
	}
	return t.DecodeLenient(mask), nil
}

// DecodeLenient is Decode ignoring unknown bits.
func (t *FlagTable[F]) DecodeLenient(mask uint32) []F {
	out := make([]F, 0, len(t.Entries))
	for _, e := range t.Entries {
		if mask&(1<<e.Shift) != 0 {
			out = append(out, e.Flag)
		}
	}
	return out
}

// Canonical returns flags deduplicated and in table order.
func (t *FlagTable[F]) Canonical(flags []F) ([]F, error) {
	mask, err := t.Encode(flags)
	if err != nil {
		return nil, err
	}
	return t.DecodeLenient(mask), nil
}

// Validate checks that every shift fits a u32 and that no two variants
// share a bit or a variant.
func (t *FlagTable[F]) Validate() error {
	var seen uint32
	variants := make(map[F]struct{}, len(t.Entries))
	var last int = -1
	for _, e := range t.Entries {
		if e.Shift > 31 {
			return fmt.Errorf("flag %s: shift %d out of range", e.Name, e.Shift)
		}
		if seen&(1<<e.Shift) != 0 {
			return fmt.Errorf("flag %s: bit %d already used", e.Name, e.Shift)
		}
		if _, ok := variants[e.Flag]; ok {
			return fmt.Errorf("flag %s: variant listed twice", e.Name)
		}
		if int(e.Shift) < last {
			return fmt.Errorf("flag %s: entries not in ascending bit order", e.Name)
		}
		last = int(e.Shift)
		seen |= 1 << e.Shift
		variants[e.Flag] = struct{}{}
	}
	return nil
}

// FormatFlags renders flags as "A|B", or "none".
func FormatFlags[F Flag[F]](flags []F) string {
	if len(flags) == 0 {
		return "none"
	}
	var zero F
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = zero.Table().Name(f)
	}
	return strings.Join(names, "|")
}

// EncodeFlags looks up the table of F and encodes flags with it.
func EncodeFlags[F Flag[F]](flags []F) (uint32, error) {
	var zero F
	return zero.Table().Encode(flags)
}

// DecodeFlags looks up the table of F and strictly decodes mask.
func DecodeFlags[F Flag[F]](mask uint32) ([]F, error) {
	var zero F
	return zero.Table().Decode(mask)
}

// CanonicalFlags looks up the table of F and canonicalises flags.
func CanonicalFlags[F Flag[F]](flags []F) ([]F, error) {
	var zero F
	return zero.Table().Canonical(flags)
}
