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

// sv2dump decodes hex encoded Stratum V2 frames given as arguments, or one
// per line on stdin, and prints them. With -encode it prints the frame of a
// reference mining SetupConnection instead.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"stratumv2/cfg"
	"stratumv2/codec"
	"stratumv2/config"
	"stratumv2/log"
	"stratumv2/mining"
	"stratumv2/util"
	"stratumv2/wire"
)

type dump struct {
	Header      codec.FrameHeader
	MessageType codec.MessageType
	Message     codec.Frameable
	Difficulty  uint64 `json:",omitempty"`
}

func main() {
	// stdout carries the dumps
	log.Stdout = os.Stderr

	configPath := flag.String("config", "", "path to a .json or .toml config file")
	protocol := flag.String("protocol", "", "sub protocol of the frames (mining, job-negotiation, template-distribution, job-distribution)")
	output := flag.String("output", "", "output format: json or text")
	verbose := flag.Bool("v", false, "enable debug logging")
	encode := flag.Bool("encode", false, "print the frame of a reference mining SetupConnection and exit")
	list := flag.Bool("list", false, "list the message types of the sub protocol and exit")
	flag.Parse()

	c := cfg.Default()
	if *configPath != "" {
		var err error
		c, err = cfg.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *protocol != "" {
		c.Protocol = *protocol
	}
	if *output != "" {
		c.Output = *output
	}
	if *verbose && c.LogLevel < log.LEVEL_DEBUG {
		c.LogLevel = log.LEVEL_DEBUG
	}
	if err := c.Validate(); err != nil {
		log.Fatal(err)
	}
	c.Apply()

	if *list {
		for _, t := range codec.MessageTypes(c.SubProtocol()) {
			fmt.Printf("0x%02x %s\n", uint8(t), t)
		}
		return
	}

	if *encode {
		b, err := referenceFrame()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(hex.EncodeToString(b))
		return
	}

	log.Debugf("decoding %s frames, output %s", c.SubProtocol(), c.Output)

	failed := 0
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if !dumpFrame(os.Stdout, c, arg) {
				failed++
			}
		}
	} else {
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 2*(config.FRAME_HEADER_SIZE+config.MAX_PAYLOAD_LENGTH)+2)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if !dumpFrame(os.Stdout, c, line) {
				failed++
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}

	if failed > 0 {
		log.Errf("%d frame(s) could not be decoded", failed)
		os.Exit(1)
	}
}

func dumpFrame(w io.Writer, c cfg.Config, s string) bool {
	b, err := util.DecodeHex(s)
	if err != nil {
		log.Err("invalid hex:", err)
		return false
	}

	h, m, err := wire.DecodeFrame(c.SubProtocol(), b)
	if err != nil {
		log.Errf("%s frame: %v", c.SubProtocol(), err)
		return false
	}
	log.Debugf("decoded %s (%d bytes)", m.MessageType(), len(b))

	d := dump{
		Header:      h,
		MessageType: m.MessageType(),
		Message:     m,
	}
	switch v := m.(type) {
	case mining.SetTarget:
		d.Difficulty = mining.Difficulty(v.MaximumTarget)
	case mining.OpenStandardMiningChannelSuccess:
		d.Difficulty = mining.Difficulty(v.Target)
	}

	switch c.Output {
	case cfg.OUTPUT_TEXT:
		fmt.Fprintf(w, "%s %v\n", h, m)
		if d.Difficulty != 0 {
			fmt.Fprintf(w, "  difficulty %d\n", d.Difficulty)
		}
	default:
		fmt.Fprintln(w, util.DumpJson(d))
	}
	return true
}

func referenceFrame() ([]byte, error) {
	m, err := mining.NewSetupConnection(2, 2,
		[]mining.SetupConnectionFlag{mining.RequiresStandardJobs},
		"0.0.0.0", 8545,
		"Bitmain", "S9i 13.5", "braiins-os-2018-09-22-1-hash", "some-uuid",
	)
	if err != nil {
		return nil, err
	}
	log.Debug("encoding", m)
	return wire.Encode(m)
}
