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

// Protocol is the sub protocol a connection is set up for. It is the first
// byte of every SetupConnection payload.
type Protocol uint8

const (
	ProtocolMining               Protocol = 0
	ProtocolJobNegotiation       Protocol = 1
	ProtocolTemplateDistribution Protocol = 2
	ProtocolJobDistribution      Protocol = 3

	// never sent on the wire
	ProtocolUnknown Protocol = 0xff
)

var protocolNames = map[Protocol]string{
	ProtocolMining:               "mining",
	ProtocolJobNegotiation:       "job-negotiation",
	ProtocolTemplateDistribution: "template-distribution",
	ProtocolJobDistribution:      "job-distribution",
}

// ParseProtocol maps a wire byte to a Protocol, ProtocolUnknown if it is not
// one of the four sub protocols.
func ParseProtocol(b uint8) Protocol {
	p := Protocol(b)
	if _, ok := protocolNames[p]; !ok {
		return ProtocolUnknown
	}
	return p
}

// ProtocolByName is the inverse of Protocol.String, for config files and flags.
func ProtocolByName(name string) Protocol {
	for p, n := range protocolNames {
		if n == name {
			return p
		}
	}
	return ProtocolUnknown
}

func (p Protocol) String() string {
	if n, ok := protocolNames[p]; ok {
		return n
	}
	return "unknown"
}

func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
