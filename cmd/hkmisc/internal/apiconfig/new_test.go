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

package apiconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkopenai/hkmisc/internal/config"
)

func Test_maybeAppendExt(t *testing.T) {
	type args struct {
		filename string
		ext      string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			"appended",
			args{"filename", ".ext"},
			"filename.ext",
		},
		{
			"empty ext",
			args{"no_ext_here", ""},
			"no_ext_here",
		},
		{
			"dot is prepended to ext",
			args{"foo", "bar"},
			"foo.bar",
		},
		{
			"same ext",
			args{"foo.bar", ".bar"},
			"foo.bar",
		},
		{
			"already has an extension",
			args{"filename.xxx", ".ext"},
			"filename.xxx.ext",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maybeAppendExt(tt.args.filename, tt.args.ext))
		})
	}
}

func Test_maybeFixExt(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"already toml", "lol.toml", "lol.toml"},
		{"already tml", "lol.tml", "lol.tml"},
		{"no extension", "foo", "foo.toml"},
		{"different extension", "foo.bar", "foo.bar.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maybeFixExt(tt.filename))
		})
	}
}

func Test_runConfigNew(t *testing.T) {
	dir := t.TempDir()
	existingDir := filepath.Join(dir, "test.toml")
	require.NoError(t, os.MkdirAll(existingDir, 0o777))
	existingFile := filepath.Join(dir, "existing.toml")
	require.NoError(t, os.WriteFile(existingFile, []byte("# keep\n"), 0o644))

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		shouldExist string
	}{
		{"no arguments given", nil, true, ""},
		{"file is created", []string{filepath.Join(dir, "sample.tml")}, false, filepath.Join(dir, "sample.tml")},
		{"ext is appended", []string{filepath.Join(dir, "sample")}, false, filepath.Join(dir, "sample.toml")},
		{"directory is not overwritten", []string{existingDir}, true, ""},
		{"file is not overwritten without -y", []string{existingFile}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runConfigNew(t.Context(), CmdConfigNew, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.FileExists(t, tt.shouldExist)

			c, err := config.Load(tt.shouldExist)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), c)
		})
	}
	data, err := os.ReadFile(existingFile)
	require.NoError(t, err)
	assert.Equal(t, "# keep\n", string(data))
}

func Test_shouldOverwrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.toml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, shouldOverwrite(filepath.Join(dir, "missing.toml"), false))
	assert.False(t, shouldOverwrite(file, false))
	assert.True(t, shouldOverwrite(file, true))
	assert.False(t, shouldOverwrite(dir, true))
}
