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

package network

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestNewLimiter(t *testing.T) {
	type args struct {
		perMinute int
		burst     uint
	}
	tests := []struct {
		name       string
		args       args
		wantPerSec rate.Limit
		wantBurst  int
	}{
		{
			name:       "60 per minute",
			args:       args{perMinute: 60, burst: 10},
			wantPerSec: 1,
			wantBurst:  10,
		},
		{
			name:       "default",
			args:       args{perMinute: DefRequestsPerMinute, burst: DefBurst},
			wantPerSec: 4,
			wantBurst:  DefBurst,
		},
		{
			name:       "zero burst is raised to one",
			args:       args{perMinute: 120, burst: 0},
			wantPerSec: 2,
			wantBurst:  1,
		},
		{
			name:       "disabled",
			args:       args{perMinute: 0, burst: 1},
			wantPerSec: rate.Inf,
			wantBurst:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLimiter(tt.args.perMinute, tt.args.burst)
			if got.Limit() != tt.wantPerSec {
				t.Errorf("NewLimiter().Limit() = %v, want %v", got.Limit(), tt.wantPerSec)
			}
			if got.Burst() != tt.wantBurst {
				t.Errorf("NewLimiter().Burst() = %v, want %v", got.Burst(), tt.wantBurst)
			}
		})
	}
}
