// Copyright (c) 2026 hkopenai and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the service configuration.  Values come from the
// defaults, an optional TOML file and HKMISC_* environment variables, in
// increasing order of precedence.  Command line flags are applied on top by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/rusq/osenv/v2"

	"github.com/hkopenai/hkmisc/internal/auction"
	"github.com/hkopenai/hkmisc/internal/chttp"
	"github.com/hkopenai/hkmisc/internal/network"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Environment variables.
const (
	EnvBaseURL           = "HKMISC_BASE_URL"
	EnvMaxListNo         = "HKMISC_MAX_LIST_NO"
	EnvTimeout           = "HKMISC_TIMEOUT"
	EnvUserAgent         = "HKMISC_USER_AGENT"
	EnvRequestsPerMinute = "HKMISC_REQUESTS_PER_MINUTE"
	EnvTransport         = "HKMISC_TRANSPORT"
	EnvListen            = "HKMISC_LISTEN"
)

// DefTimeout is the default timeout of a single list download.
const DefTimeout = 30 * time.Second

// Config is the service configuration.
type Config struct {
	// BaseURL is the directory holding the auctionList_*.csv files.
	BaseURL string `toml:"base_url" validate:"required,http_url"`
	// MaxListNo is the list number each year is probed from.
	MaxListNo int `toml:"max_list_no" validate:"min=1,max=99"`
	// Timeout applies to every list download.  Zero disables it.
	Timeout   time.Duration `toml:"timeout" validate:"gte=0"`
	UserAgent string        `toml:"user_agent"`
	// RequestsPerMinute throttles the downloads, zero disables throttling.
	RequestsPerMinute int  `toml:"requests_per_minute" validate:"gte=0"`
	Burst             uint `toml:"burst" validate:"min=1"`

	Transport string `toml:"transport" validate:"oneof=stdio http"`
	Listen    string `toml:"listen" validate:"hostname_port"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaseURL:           auction.DefBaseURL,
		MaxListNo:         auction.DefaultMaxListNo,
		Timeout:           DefTimeout,
		UserAgent:         chttp.DefUserAgent,
		RequestsPerMinute: network.DefRequestsPerMinute,
		Burst:             network.DefBurst,
		Transport:         TransportStdio,
		Listen:            "127.0.0.1:8483",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrConfigInvalid is returned if the configuration fails validation.
var ErrConfigInvalid = errors.New("config validation failed")

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var vErr validator.ValidationErrors
		if !errors.As(err, &vErr) {
			return err
		}
		msgs := make([]string, 0, len(vErr))
		for _, fe := range vErr {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value: %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

// Load reads the configuration file, if filename is not empty, applies the
// environment and validates the result.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename != "" {
		if err := cfg.decodeFile(filename); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(filename string) error {
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides the values for which an environment variable is set.
func (c *Config) ApplyEnv() error {
	c.BaseURL = osenv.Value(EnvBaseURL, c.BaseURL)
	c.UserAgent = osenv.Value(EnvUserAgent, c.UserAgent)
	c.Transport = osenv.Value(EnvTransport, c.Transport)
	c.Listen = osenv.Value(EnvListen, c.Listen)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	for env, p := range map[string]*int{EnvMaxListNo: &c.MaxListNo, EnvRequestsPerMinute: &c.RequestsPerMinute} {
		if v := os.Getenv(env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
			*p = n
		}
	}
	return nil
}

// Write writes the configuration as TOML.
func (c Config) Write(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
