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
	"time"

	"golang.org/x/time/rate"
)

// DefRequestsPerMinute is the default request rate towards the publisher.
// Every call to the tool probes up to 24 lists per year, most of which do not
// exist, so the rate is kept moderate.
const (
	DefRequestsPerMinute = 240
	DefBurst             = 4
)

// NewLimiter returns throttler with perMinute requests per minute and the
// given burst.  Zero or negative perMinute disables throttling.
func NewLimiter(perMinute int, burst uint) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, int(max(burst, 1)))
	}
	return rate.NewLimiter(rate.Every(every(perMinute)), int(max(burst, 1)))
}

func every(perMinute int) time.Duration {
	return time.Minute / time.Duration(perMinute)
}
