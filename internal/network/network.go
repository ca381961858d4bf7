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

// Package network throttles outgoing requests.
package network

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"
	"sync"

	"golang.org/x/time/rate"
)

var (
	lg = slog.Default()
	mu sync.RWMutex
)

// Do waits for the limiter and calls fn exactly once.  A nil limiter does not
// throttle.  There are no retries: the error returned by fn is returned as is.
func Do(ctx context.Context, lim *rate.Limiter, fn func() error) error {
	if lim != nil {
		var err error
		trace.WithRegion(ctx, "Do.wait", func() {
			err = lim.Wait(ctx)
		})
		if err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	var cbErr error
	trace.WithRegion(ctx, "Do.call", func() {
		cbErr = fn()
	})
	if cbErr != nil {
		tracelogf(ctx, "error", "Do: %[1]s (%[1]T)", cbErr)
	}
	return cbErr
}

func tracelogf(ctx context.Context, category string, format string, a ...any) {
	mu.RLock()
	defer mu.RUnlock()

	trace.Logf(ctx, category, format, a...)
	lg.DebugContext(ctx, fmt.Sprintf(format, a...), "category", category)
}

// SetLogger sets the package logger.  A nil logger resets it to the default.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	lg = l
}
