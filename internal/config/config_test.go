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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "hkmisc.toml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestDefault_isValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"http transport", func(c *Config) { c.Transport = TransportHTTP }, false},
		{"no throttling", func(c *Config) { c.RequestsPerMinute = 0 }, false},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"not a url", func(c *Config) { c.BaseURL = "gld.gov.hk" }, true},
		{"zero max list", func(c *Config) { c.MaxListNo = 0 }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
		{"unknown transport", func(c *Config) { c.Transport = "grpc" }, true},
		{"bad listen address", func(c *Config) { c.Listen = "localhost" }, true},
		{"zero burst", func(c *Config) { c.Burst = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfigInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		got, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), got)
	})
	t.Run("file overrides defaults", func(t *testing.T) {
		name := writeFile(t, `
base_url = "http://mirror.example.test/gld"
max_list_no = 30
timeout = "5s"
transport = "http"
`)
		got, err := Load(name)
		require.NoError(t, err)
		assert.Equal(t, "http://mirror.example.test/gld", got.BaseURL)
		assert.Equal(t, 30, got.MaxListNo)
		assert.Equal(t, 5*time.Second, got.Timeout)
		assert.Equal(t, TransportHTTP, got.Transport)
		assert.Equal(t, Default().Listen, got.Listen)
	})
	t.Run("environment overrides file", func(t *testing.T) {
		name := writeFile(t, "max_list_no = 30\ntimeout = \"5s\"\n")
		t.Setenv(EnvMaxListNo, "12")
		t.Setenv(EnvTimeout, "1m")
		t.Setenv(EnvBaseURL, "http://env.example.test")
		got, err := Load(name)
		require.NoError(t, err)
		assert.Equal(t, 12, got.MaxListNo)
		assert.Equal(t, time.Minute, got.Timeout)
		assert.Equal(t, "http://env.example.test", got.BaseURL)
	})
	t.Run("unknown key", func(t *testing.T) {
		name := writeFile(t, "base_ulr = \"http://typo.example.test\"\n")
		_, err := Load(name)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_ulr")
	})
	t.Run("invalid value", func(t *testing.T) {
		name := writeFile(t, "transport = \"carrier-pigeon\"\n")
		_, err := Load(name)
		assert.ErrorIs(t, err, ErrConfigInvalid)
	})
	for env, val := range map[string]string{
		EnvRequestsPerMinute: "lots",
		EnvMaxListNo:         "twelve",
		EnvTimeout:           "soon",
	} {
		t.Run("bad environment "+env, func(t *testing.T) {
			t.Setenv(env, val)
			got, err := Load("")
			require.Error(t, err, "malformed value must not fall back to the default")
			assert.Contains(t, err.Error(), env)
			assert.Equal(t, Config{}, got)
		})
	}
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestConfig_Write(t *testing.T) {
	want := Default()
	want.Timeout = 90 * time.Second
	want.MaxListNo = 20
	name := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, want.Write(name))

	got, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
