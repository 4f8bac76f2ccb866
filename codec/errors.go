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
	"errors"
	"fmt"
)

// Base error kinds. Call sites wrap them with %w and a description, so
// callers match with errors.Is.
var (
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrRequirement          = errors.New("requirement error")
	ErrVersion              = errors.New("version error")
	ErrDeserialization      = errors.New("deserialization error")
	ErrProtocolMismatch     = errors.New("protocol mismatch")
	ErrUnknownEnum          = errors.New("unknown enum value")
	ErrEncoding             = errors.New("encoding error")
)

var (
	ErrBoundViolation              = fmt.Errorf("%w: bound violation", ErrRequirement)
	ErrRequiredFieldEmpty          = fmt.Errorf("%w: required field empty", ErrRequirement)
	ErrUnsupportedFlagsRequirement = fmt.Errorf("%w: unsupported flags must be listed", ErrRequirement)

	ErrUnknownProtocol    = fmt.Errorf("%w: %w: protocol", ErrDeserialization, ErrUnknownEnum)
	ErrUnknownMessageType = fmt.Errorf("%w: message type", ErrUnknownEnum)
	ErrUnknownErrorCode   = fmt.Errorf("%w: error code", ErrUnknownEnum)
	ErrUnknownFlags       = fmt.Errorf("%w: flags", ErrUnknownEnum)

	ErrUtf8Decode      = fmt.Errorf("%w: invalid utf-8", ErrEncoding)
	ErrPayloadTooLarge = fmt.Errorf("%w: payload too large", ErrEncoding)
)
