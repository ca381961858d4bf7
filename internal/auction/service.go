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

package auction

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service runs auction queries.  Queries are independent and may run
// concurrently; each query fetches its lists one at a time.
type Service struct {
	fetcher   Fetcher
	maxListNo int
	lg        *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithMaxListNo sets the list number traversal starts from in every year.
func WithMaxListNo(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxListNo = n
		}
	}
}

// WithLogger sets the logger.  A nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// NewService returns a Service that uses f to retrieve the lists.
func NewService(f Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:   f,
		maxListNo: DefaultMaxListNo,
		lg:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get validates the query and collects the matching records from every list
// between the end and the start year, newest list first.
//
// The returned error is non-nil only if the query is invalid, in which case
// it wraps ErrInvalidArgument and nothing is fetched.  A failed fetch is not
// an error: it is reported as the Result's error value, and the records
// collected before the failure are discarded.
func (s *Service) Get(ctx context.Context, q Query) (Result, error) {
	lang, dr, err := q.Validate()
	if err != nil {
		return Result{}, err
	}
	lg := s.lg.With("start", dr.Start.Format(time.DateOnly), "end", dr.End.Format(time.DateOnly), "lang", lang)
	lg.InfoContext(ctx, "fetching auction lists", "probes", NumProbes(q.StartYear, q.EndYear, s.maxListNo))

	var (
		records = []Record{}
		probes  int
		found   int
	)
	for id := range Traverse(q.StartYear, q.EndYear, s.maxListNo, lang) {
		if err := ctx.Err(); err != nil {
			lg.WarnContext(ctx, "cancelled", "at", id.String(), "error", err)
			return resultError(fmt.Errorf("%w: %w", ErrFetch, err)), nil
		}
		probes++
		rows, err := s.fetcher.Fetch(ctx, id)
		if err != nil {
			lg.ErrorContext(ctx, "fetch failed, discarding results", "list", id.String(), "error", err, "discarded", len(records))
			return resultError(err), nil
		}
		if len(rows) > 0 {
			found++
		}
		var kept int
		for _, row := range rows {
			if rec, ok := Normalize(row, dr); ok {
				records = append(records, rec)
				kept++
			}
		}
		lg.DebugContext(ctx, "list processed", "list", id.String(), "rows", len(rows), "kept", kept)
	}
	lg.InfoContext(ctx, "auction lists fetched", "probes", probes, "lists_found", found, "records", len(records))
	return Result{Records: records}, nil
}
