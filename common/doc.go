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

// Package common holds the messages every sub protocol shares: the
// SetupConnection request and its Success and Error responses. They are
// generic over the feature flag enum of the sub protocol; each sub protocol
// package instantiates them with its own flags.
//
// A client sends SetupConnection first. The server answers with
// SetupConnection.Success, after which the connection is established, or with
// SetupConnection.Error, after which it MUST close the connection. The codec
// does not track that sequence, callers do.
package common
