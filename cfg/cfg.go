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

package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stratumv2/codec"
	"stratumv2/log"

	"github.com/BurntSushi/toml"
)

var Cfg = Default()

type Config struct {
	LogLevel uint8  `json:"log_level" toml:"log_level"`
	Protocol string `json:"protocol" toml:"protocol"`
	Output   string `json:"output" toml:"output"`
	NoColor  bool   `json:"no_color" toml:"no_color"`
}

const (
	OUTPUT_JSON = "json"
	OUTPUT_TEXT = "text"
)

func Default() Config {
	return Config{
		LogLevel: log.LEVEL_INFO,
		Protocol: codec.ProtocolMining.String(),
		Output:   OUTPUT_JSON,
	}
}

// Load reads a .json or .toml file on top of the defaults, validates it and
// makes it the active configuration.
func Load(path string) (Config, error) {
	c := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return Config{}, fmt.Errorf("cfg: %s: %w", path, err)
		}
	case ".json":
		fd, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("cfg: %w", err)
		}
		if err := json.Unmarshal(fd, &c); err != nil {
			return Config{}, fmt.Errorf("cfg: %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("cfg: unsupported config format %q", filepath.Ext(path))
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	c.Apply()
	return c, nil
}

func (c Config) Validate() error {
	if c.LogLevel > log.LEVEL_DEV {
		return fmt.Errorf("cfg: log_level %d out of range 0-%d", c.LogLevel, log.LEVEL_DEV)
	}
	if c.SubProtocol() == codec.ProtocolUnknown {
		return fmt.Errorf("cfg: unknown protocol %q", c.Protocol)
	}
	if c.Output != OUTPUT_JSON && c.Output != OUTPUT_TEXT {
		return fmt.Errorf("cfg: output must be %q or %q, got %q", OUTPUT_JSON, OUTPUT_TEXT, c.Output)
	}
	return nil
}

func (c Config) SubProtocol() codec.Protocol {
	return codec.ProtocolByName(c.Protocol)
}

// Apply sets the global logger state and stores c in Cfg.
func (c Config) Apply() {
	Cfg = c
	log.LogLevel = c.LogLevel
	if c.NoColor {
		log.NoColor()
	}
}
