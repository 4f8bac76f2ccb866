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

import "fmt"

type CodeEntry[C comparable] struct {
	Code C
	Text string
}

// CodeTable maps a closed error code enum to its canonical wire string.
type CodeTable[C comparable] []CodeEntry[C]

// Text returns the wire string of c. A value outside the table can only come
// from a conversion of an arbitrary integer, which is a programming error.
func (t CodeTable[C]) Text(c C) (string, error) {
	for _, e := range t {
		if e.Code == c {
			return e.Text, nil
		}
	}
	return "", fmt.Errorf("%w: value %d has no wire string", ErrUnknownErrorCode, any(c))
}

// Parse is the exact reverse of Text.
func (t CodeTable[C]) Parse(s string) (C, error) {
	for _, e := range t {
		if e.Text == s {
			return e.Code, nil
		}
	}
	var zero C
	return zero, fmt.Errorf("%w: %q", ErrUnknownErrorCode, s)
}

// Validate checks that the table is a bijection and that every string fits limit.
func (t CodeTable[C]) Validate(limit int) error {
	codes := make(map[C]struct{}, len(t))
	texts := make(map[string]struct{}, len(t))
	for _, e := range t {
		if _, ok := codes[e.Code]; ok {
			return fmt.Errorf("code %q: variant listed twice", e.Text)
		}
		if _, ok := texts[e.Text]; ok {
			return fmt.Errorf("code %q: string listed twice", e.Text)
		}
		if e.Text == "" || len(e.Text) > limit {
			return fmt.Errorf("code %q: length must be 1..%d", e.Text, limit)
		}
		codes[e.Code] = struct{}{}
		texts[e.Text] = struct{}{}
	}
	return nil
}
