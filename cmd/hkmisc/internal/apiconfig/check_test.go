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
)

const sampleConfig = `base_url = "https://example.com/supplies-mgmt"
max_list_no = 24
timeout = "10s"
requests_per_minute = 60
burst = 2
transport = "http"
listen = "127.0.0.1:9000"
`

func Test_runConfigCheck(t *testing.T) {
	type args struct {
		args []string
	}
	tests := []struct {
		name    string
		args    args
		content []byte
		wantErr bool
	}{
		{
			"arg set, file exists, contents valid",
			args{args: []string{filepath.Join(t.TempDir(), "test.toml")}},
			[]byte(sampleConfig),
			false,
		},
		{
			"arg not set",
			args{},
			nil,
			true,
		},
		{
			"arg set, file not exists",
			args{args: []string{"not_here$$$.$$$"}},
			nil,
			true,
		},
		{
			"arg set, file exists, contents invalid",
			args{args: []string{filepath.Join(t.TempDir(), "test1.toml")}},
			[]byte("transport = \"pigeon\"\n"),
			true,
		},
		{
			"arg set, file exists, unknown key",
			args{args: []string{filepath.Join(t.TempDir(), "test2.toml")}},
			[]byte("workers = 5\n"),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// if args and content is present, create this file.
			if len(tt.args.args) > 0 && len(tt.content) > 0 {
				if err := os.WriteFile(tt.args.args[0], tt.content, 0o666); err != nil {
					t.Fatal(err)
				}
			}
			if err := runConfigCheck(t.Context(), CmdConfigCheck, tt.args.args); (err != nil) != tt.wantErr {
				t.Errorf("runConfigCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
