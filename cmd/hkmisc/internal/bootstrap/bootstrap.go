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

// Package bootstrap builds the auction service from the loaded configuration.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/hkopenai/hkmisc/cmd/hkmisc/internal/cfg"
	"github.com/hkopenai/hkmisc/internal/auction"
	"github.com/hkopenai/hkmisc/internal/chttp"
	"github.com/hkopenai/hkmisc/internal/config"
	"github.com/hkopenai/hkmisc/internal/network"
)

// Fetcher returns the HTTP fetcher configured from c.
func Fetcher(c config.Config, lg *slog.Logger) *auction.HTTPFetcher {
	return auction.NewHTTPFetcher(
		auction.WithHTTPClient(chttp.New(c.UserAgent, c.Timeout)),
		auction.WithBaseURL(c.BaseURL),
		auction.WithLimiter(network.NewLimiter(c.RequestsPerMinute, c.Burst)),
		auction.WithFetcherLogger(lg),
	)
}

// Service returns the auction service initialised from the current
// configuration.  If f is nil, the HTTP fetcher is used.
func Service(f auction.Fetcher) *auction.Service {
	if f == nil {
		f = Fetcher(cfg.Config, cfg.Log)
	}
	return auction.NewService(
		f,
		auction.WithMaxListNo(cfg.Config.MaxListNo),
		auction.WithLogger(cfg.Log),
	)
}

// progressFetcher advances the progress bar on every probe.
type progressFetcher struct {
	auction.Fetcher
	pb *progressbar.ProgressBar
}

func (p progressFetcher) Fetch(ctx context.Context, id auction.Identifier) ([]auction.Row, error) {
	rows, err := p.Fetcher.Fetch(ctx, id)
	_ = p.pb.Add(1)
	return rows, err
}

// WithProgress wraps f so that pb advances once per probe.
func WithProgress(f auction.Fetcher, pb *progressbar.ProgressBar) auction.Fetcher {
	return progressFetcher{Fetcher: f, pb: pb}
}

// ProgressBar returns the progress bar for max probes.  It is silent when
// debug logging is enabled, so that it does not interfere with log output.
func ProgressBar(ctx context.Context, lg *slog.Logger, max int, opts ...progressbar.Option) *progressbar.ProgressBar {
	if lg.Enabled(ctx, slog.LevelDebug) {
		return progressbar.DefaultSilent(int64(max))
	}
	fullopts := append([]progressbar.Option{
		progressbar.OptionSetDescription("probing lists"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	}, opts...)
	return progressbar.NewOptions(max, fullopts...)
}
